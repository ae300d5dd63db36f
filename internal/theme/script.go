package theme

import (
	"fmt"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/lexstorm/internal/style"
	"github.com/dshills/lexstorm/internal/token"
)

// LoadScript runs a Lua theme script on a sandboxed interpreter and
// builds a Theme from the table it returns. A minimal script:
//
//	return {
//	    name = "night",
//	    fallback = "#c0c0c0",
//	    mismatch = "#ff5555",
//	    colors = {
//	        ["word"] = "#9cdcfe",
//	        ["dquote-open"] = "#ce9178",
//	        ["dquote-close"] = "#ce9178",
//	    },
//	}
//
// Color table keys are category display names; values are hex colors.
func LoadScript(path string) (*Theme, error) {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true, // opened selectively below
	})
	defer L.Close()

	openSafeLibraries(L)

	if err := runScript(L, path); err != nil {
		return nil, fmt.Errorf("theme script %s: %w", filepath.Base(path), err)
	}

	ret := L.Get(-1)
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("theme script %s: must return a table, got %s",
			filepath.Base(path), ret.Type())
	}

	return themeFromTable(path, tbl)
}

// openSafeLibraries opens only the Lua standard libraries a theme
// script needs: base, table, string and math. io, os, debug and
// package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// runScript executes the file with panic recovery.
func runScript(L *lua.LState, path string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return L.DoFile(path)
}

// themeFromTable converts the script's returned table into a Theme.
func themeFromTable(path string, tbl *lua.LTable) (*Theme, error) {
	t := &Theme{
		Colors:   make(map[token.Category]style.Color),
		Fallback: style.ColorDefault,
	}

	if name, ok := tbl.RawGetString("name").(lua.LString); ok && name != "" {
		t.Name = string(name)
	} else {
		// The file name stands in when the script names nothing.
		base := filepath.Base(path)
		t.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if v := tbl.RawGetString("fallback"); v != lua.LNil {
		c, err := style.Hex(v.String())
		if err != nil {
			return nil, fmt.Errorf("theme %s: fallback: %w", t.Name, err)
		}
		t.Fallback = c
	}

	if v := tbl.RawGetString("mismatch"); v != lua.LNil {
		c, err := style.Hex(v.String())
		if err != nil {
			return nil, fmt.Errorf("theme %s: mismatch: %w", t.Name, err)
		}
		t.Mismatch = c
	}

	if colors, ok := tbl.RawGetString("colors").(*lua.LTable); ok {
		var convErr error
		colors.ForEach(func(k, v lua.LValue) {
			if convErr != nil {
				return
			}
			cat, ok := token.CategoryByName(k.String())
			if !ok {
				convErr = fmt.Errorf("unknown category %q", k.String())
				return
			}
			c, err := style.Hex(v.String())
			if err != nil {
				convErr = fmt.Errorf("category %q: %w", k.String(), err)
				return
			}
			t.Colors[cat] = c
		})
		if convErr != nil {
			return nil, fmt.Errorf("theme %s: %w", t.Name, convErr)
		}
	}

	return t, nil
}
