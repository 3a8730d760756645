package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// selectBox holds the open state and cursor of a single-select control.
type selectBox struct {
	open   bool
	cursor int
}

func (b *selectBox) show() {
	b.open = true
	b.cursor = 0
}

func (b *selectBox) hide() {
	b.open = false
}

// move shifts the cursor by delta within n options.
func (b *selectBox) move(delta, n int) {
	if n == 0 {
		b.cursor = 0
		return
	}
	b.cursor += delta
	if b.cursor < 0 {
		b.cursor = 0
	}
	if b.cursor >= n {
		b.cursor = n - 1
	}
}

// clamp keeps the cursor inside a list that may have shrunk.
func (b *selectBox) clamp(n int) {
	b.move(0, n)
}

// selectView is everything needed to draw one select control.
type selectView struct {
	title       string
	value       string // rendered current value, empty when unset
	placeholder string
	loading     bool
	disabled    bool
	focused     bool
	open        bool

	input     string   // rendered text input, shown when open
	options   []string // rendered options
	cursor    int
	noOptions string
}

// renderSelect draws a bordered select control of the given outer width.
func renderSelect(v selectView, spinnerView string, width, maxOptions int) string {
	innerWidth := width - 4
	if innerWidth < 10 {
		innerWidth = 10
	}

	var line string
	switch {
	case v.value != "":
		line = v.value
		if !v.disabled {
			line += "  " + styleReset.Render("Reset")
		}
	case v.loading:
		line = spinnerView + styleLoading.Render(v.placeholder)
	default:
		line = styleMuted.Render(v.placeholder)
	}

	var b strings.Builder
	b.WriteString(line)

	if v.open {
		b.WriteString("\n")
		b.WriteString(v.input)
		b.WriteString("\n")

		if len(v.options) == 0 {
			if v.loading {
				b.WriteString(spinnerView + styleLoading.Render(v.placeholder))
			} else {
				b.WriteString(styleMuted.Render(" " + v.noOptions))
			}
		} else {
			start, end := visibleRange(v.cursor, len(v.options), maxOptions)
			for i := start; i < end; i++ {
				if i == v.cursor {
					b.WriteString(styleSelected.Render(" > ") + v.options[i])
				} else {
					b.WriteString("   " + v.options[i])
				}
				if i < end-1 {
					b.WriteString("\n")
				}
			}
		}
	}

	border := stylePanelNormal
	switch {
	case v.disabled:
		border = stylePanelDisabled
	case v.focused:
		border = stylePanelFocused
	}

	title := styleHeader.Render(v.title)
	if v.disabled {
		title = styleMuted.Render(v.title)
	}

	box := border.Width(innerWidth).Render(b.String())
	return lipgloss.JoinVertical(lipgloss.Left, title, box)
}
