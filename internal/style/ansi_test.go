package style

import "testing"

func TestForegroundTrueColor(t *testing.T) {
	got := ModeTrueColor.Foreground(RGB(255, 128, 9))
	want := "\x1b[38;2;255;128;9m"
	if got != want {
		t.Errorf("Foreground = %q, want %q", got, want)
	}

	if got := ModeTrueColor.Foreground(ColorDefault); got != "\x1b[39m" {
		t.Errorf("Foreground(default) = %q, want ESC[39m", got)
	}
}

func TestForeground256(t *testing.T) {
	// Pure black sits in the color cube at index 16.
	got := Mode256.Foreground(RGB(0, 0, 0))
	want := "\x1b[38;5;16m"
	if got != want {
		t.Errorf("Foreground = %q, want %q", got, want)
	}
}

func TestBackground(t *testing.T) {
	got := ModeTrueColor.Background(RGB(10, 20, 30))
	want := "\x1b[48;2;10;20;30m"
	if got != want {
		t.Errorf("Background = %q, want %q", got, want)
	}

	if got := Mode256.Background(ColorDefault); got != "\x1b[49m" {
		t.Errorf("Background(default) = %q, want ESC[49m", got)
	}
}

func TestApply(t *testing.T) {
	s := NewStyle(RGB(255, 0, 0)).Bold()
	got := ModeTrueColor.Apply(s)
	want := "\x1b[1m\x1b[38;2;255;0;0m"
	if got != want {
		t.Errorf("Apply = %q, want %q", got, want)
	}

	// A fully default style emits nothing.
	if got := ModeTrueColor.Apply(DefaultStyle()); got != "" {
		t.Errorf("Apply(default) = %q, want empty", got)
	}
}

func TestRGBTo256(t *testing.T) {
	tests := []struct {
		c    Color
		want uint8
	}{
		{RGB(0, 0, 0), 16},        // cube origin
		{RGB(255, 255, 255), 231}, // cube top
		{RGB(95, 0, 0), 52},       // exact cube level
		{RGB(128, 128, 128), 244}, // grayscale ramp beats the cube
		{RGB(8, 8, 8), 232},       // darkest gray ramp entry
	}

	for _, tt := range tests {
		if got := rgbTo256(tt.c); got != tt.want {
			t.Errorf("rgbTo256(%v) = %d, want %d", tt.c, got, tt.want)
		}
	}
}

func TestDetectMode(t *testing.T) {
	t.Setenv("COLORTERM", "truecolor")
	if got := DetectMode(); got != ModeTrueColor {
		t.Errorf("DetectMode with COLORTERM=truecolor = %d, want ModeTrueColor", got)
	}

	t.Setenv("COLORTERM", "")
	t.Setenv("TERM", "xterm-256color")
	if got := DetectMode(); got != Mode256 {
		t.Errorf("DetectMode with TERM=xterm-256color = %d, want Mode256", got)
	}

	t.Setenv("TERM", "xterm-direct")
	if got := DetectMode(); got != ModeTrueColor {
		t.Errorf("DetectMode with TERM=xterm-direct = %d, want ModeTrueColor", got)
	}
}
