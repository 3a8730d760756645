package output

import (
	"testing"

	"github.com/fatih/color"

	"github.com/ledmatrix/onboard/internal/testutil"
)

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		input string
		want  ColorMode
	}{
		{"always", ColorAlways},
		{"never", ColorNever},
		{"auto", ColorAuto},
		{"", ColorAuto},        // default
		{"invalid", ColorAuto}, // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseColorMode(tt.input)
			testutil.AssertEqual(t, got, tt.want)
		})
	}
}

func TestNewColors_NeverMode(t *testing.T) {
	oldNoColor := color.NoColor
	defer func() { color.NoColor = oldNoColor }()
	color.NoColor = true

	c := NewColors(ColorNever)

	testutil.AssertEqual(t, c.Header("Stops"), "Stops")
	testutil.AssertEqual(t, c.Name("Parc de Mussonville"), "Parc de Mussonville")
	testutil.AssertEqual(t, c.Line("[B]"), "[B]")
	testutil.AssertEqual(t, c.ID("SA1"), "SA1")
	testutil.AssertEqual(t, c.Success("ok"), "ok")
	testutil.AssertEqual(t, c.Error("failed"), "failed")
	testutil.AssertEqual(t, c.Muted("+2"), "+2")
}

func TestNewColors_NeverModeFormats(t *testing.T) {
	c := NewColors(ColorNever)

	testutil.AssertEqual(t, c.Line("[%s]", "B"), "[B]")
	testutil.AssertEqual(t, c.Muted("+%d", 2), "+2")
}

func TestNewColors_AlwaysMode(t *testing.T) {
	oldNoColor := color.NoColor
	defer func() { color.NoColor = oldNoColor }()

	c := NewColors(ColorAlways)

	result := c.Header("Stops")
	testutil.AssertContains(t, result, "\033[")
	testutil.AssertContains(t, result, "Stops")

	result = c.Error("Error loading stops (404)")
	testutil.AssertContains(t, result, "\033[")
	testutil.AssertContains(t, result, "Error loading stops (404)")
}
