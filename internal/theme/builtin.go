package theme

import (
	"github.com/dshills/lexstorm/internal/style"
	"github.com/dshills/lexstorm/internal/token"
)

// StormTheme returns the house default dark theme.
func StormTheme() *Theme {
	comment := style.RGB(106, 153, 85)
	word := style.RGB(156, 220, 254)
	number := style.RGB(181, 206, 168)
	escape := style.RGB(215, 186, 125)
	assign := style.RGB(86, 156, 214)
	operator := style.RGB(212, 212, 212)
	paren := style.RGB(255, 215, 0)
	bracket := style.RGB(218, 112, 214)
	brace := style.RGB(135, 206, 250)
	angle := style.RGB(78, 201, 176)
	dquote := style.RGB(206, 145, 120)
	squote := style.RGB(209, 154, 102)
	backtick := style.RGB(152, 195, 121)

	return &Theme{
		Name:     "storm",
		Fallback: operator,
		Mismatch: style.RGB(244, 71, 71),
		Colors: map[token.Category]style.Color{
			token.Word:         word,
			token.Number:       number,
			token.Escape:       escape,
			token.CommentLine:  comment,
			token.CommentBlock: comment,
			token.Operator:     operator,
			token.Assigner:     assign,

			token.ParenOpen:    paren,
			token.ParenClose:   paren,
			token.BracketOpen:  bracket,
			token.BracketClose: bracket,
			token.BraceOpen:    brace,
			token.BraceClose:   brace,
			token.AngleOpen:    angle,
			token.AngleClose:   angle,

			token.DoubleQuoteOpen:  dquote,
			token.DoubleQuoteClose: dquote,
			token.SingleQuoteOpen:  squote,
			token.SingleQuoteClose: squote,
			token.BacktickOpen:     backtick,
			token.BacktickClose:    backtick,
		},
	}
}

// MonokaiTheme returns a Monokai-inspired theme.
func MonokaiTheme() *Theme {
	pink := style.RGB(249, 38, 114)
	green := style.RGB(166, 226, 46)
	orange := style.RGB(253, 151, 31)
	yellow := style.RGB(230, 219, 116)
	blue := style.RGB(102, 217, 239)
	purple := style.RGB(174, 129, 255)
	comment := style.RGB(117, 113, 94)
	white := style.RGB(248, 248, 242)

	return &Theme{
		Name:     "monokai",
		Fallback: white,
		Mismatch: style.RGB(255, 85, 85),
		Colors: map[token.Category]style.Color{
			token.Word:         white,
			token.Number:       purple,
			token.Escape:       purple,
			token.CommentLine:  comment,
			token.CommentBlock: comment,
			token.Operator:     pink,
			token.Assigner:     pink,

			token.ParenOpen:    white,
			token.ParenClose:   white,
			token.BracketOpen:  orange,
			token.BracketClose: orange,
			token.BraceOpen:    green,
			token.BraceClose:   green,
			token.AngleOpen:    blue,
			token.AngleClose:   blue,

			token.DoubleQuoteOpen:  yellow,
			token.DoubleQuoteClose: yellow,
			token.SingleQuoteOpen:  orange,
			token.SingleQuoteClose: orange,
			token.BacktickOpen:     green,
			token.BacktickClose:    green,
		},
	}
}

// DraculaTheme returns a Dracula-inspired theme.
func DraculaTheme() *Theme {
	pink := style.RGB(255, 121, 198)
	green := style.RGB(80, 250, 123)
	orange := style.RGB(255, 184, 108)
	yellow := style.RGB(241, 250, 140)
	purple := style.RGB(189, 147, 249)
	cyan := style.RGB(139, 233, 253)
	comment := style.RGB(98, 114, 164)
	white := style.RGB(248, 248, 242)

	return &Theme{
		Name:     "dracula",
		Fallback: white,
		Mismatch: style.RGB(255, 85, 85),
		Colors: map[token.Category]style.Color{
			token.Word:         white,
			token.Number:       purple,
			token.Escape:       pink,
			token.CommentLine:  comment,
			token.CommentBlock: comment,
			token.Operator:     pink,
			token.Assigner:     pink,

			token.ParenOpen:    cyan,
			token.ParenClose:   cyan,
			token.BracketOpen:  green,
			token.BracketClose: green,
			token.BraceOpen:    orange,
			token.BraceClose:   orange,
			token.AngleOpen:    purple,
			token.AngleClose:   purple,

			token.DoubleQuoteOpen:  yellow,
			token.DoubleQuoteClose: yellow,
			token.SingleQuoteOpen:  yellow,
			token.SingleQuoteClose: yellow,
			token.BacktickOpen:     green,
			token.BacktickClose:    green,
		},
	}
}

// SolarizedTheme returns a Solarized Dark theme.
func SolarizedTheme() *Theme {
	base01 := style.RGB(88, 110, 117)
	base0 := style.RGB(131, 148, 150)
	yellow := style.RGB(181, 137, 0)
	orange := style.RGB(203, 75, 22)
	red := style.RGB(220, 50, 47)
	magenta := style.RGB(211, 54, 130)
	violet := style.RGB(108, 113, 196)
	blue := style.RGB(38, 139, 210)
	cyan := style.RGB(42, 161, 152)
	green := style.RGB(133, 153, 0)

	return &Theme{
		Name:     "solarized",
		Fallback: base0,
		Mismatch: red,
		Colors: map[token.Category]style.Color{
			token.Word:         blue,
			token.Number:       magenta,
			token.Escape:       orange,
			token.CommentLine:  base01,
			token.CommentBlock: base01,
			token.Operator:     green,
			token.Assigner:     green,

			token.ParenOpen:    yellow,
			token.ParenClose:   yellow,
			token.BracketOpen:  violet,
			token.BracketClose: violet,
			token.BraceOpen:    orange,
			token.BraceClose:   orange,
			token.AngleOpen:    cyan,
			token.AngleClose:   cyan,

			token.DoubleQuoteOpen:  cyan,
			token.DoubleQuoteClose: cyan,
			token.SingleQuoteOpen:  cyan,
			token.SingleQuoteClose: cyan,
			token.BacktickOpen:     green,
			token.BacktickClose:    green,
		},
	}
}

// LightTheme returns a light-background theme.
func LightTheme() *Theme {
	comment := style.RGB(0, 128, 0)
	str := style.RGB(163, 21, 21)
	number := style.RGB(9, 134, 88)
	keyword := style.RGB(0, 0, 255)
	word := style.RGB(0, 16, 128)
	black := style.RGB(0, 0, 0)
	brown := style.RGB(121, 94, 38)
	cyan := style.RGB(38, 127, 153)
	purple := style.RGB(175, 0, 219)

	return &Theme{
		Name:     "light",
		Fallback: black,
		Mismatch: style.RGB(205, 49, 49),
		Colors: map[token.Category]style.Color{
			token.Word:         word,
			token.Number:       number,
			token.Escape:       style.RGB(205, 49, 49),
			token.CommentLine:  comment,
			token.CommentBlock: comment,
			token.Operator:     black,
			token.Assigner:     keyword,

			token.ParenOpen:    brown,
			token.ParenClose:   brown,
			token.BracketOpen:  purple,
			token.BracketClose: purple,
			token.BraceOpen:    cyan,
			token.BraceClose:   cyan,
			token.AngleOpen:    style.RGB(0, 112, 193),
			token.AngleClose:   style.RGB(0, 112, 193),

			token.DoubleQuoteOpen:  str,
			token.DoubleQuoteClose: str,
			token.SingleQuoteOpen:  str,
			token.SingleQuoteClose: str,
			token.BacktickOpen:     str,
			token.BacktickClose:    str,
		},
	}
}
