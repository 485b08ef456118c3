package host

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/blockpad/internal/config"
)

// StyleFor converts a style directive to a tcell style. Color names and
// "#rrggbb" values are resolved with tcell.GetColor; unknown names leave the
// default color.
func StyleFor(d config.StyleDirective) tcell.Style {
	style := tcell.StyleDefault
	if d.Fg != "" {
		style = style.Foreground(tcell.GetColor(d.Fg))
	}
	if d.Bg != "" {
		style = style.Background(tcell.GetColor(d.Bg))
	}
	if d.Bold {
		style = style.Bold(true)
	}
	if d.Italic {
		style = style.Italic(true)
	}
	if d.Underline {
		style = style.Underline(true)
	}
	if d.Strikethrough {
		style = style.StrikeThrough(true)
	}
	if d.Reverse {
		style = style.Reverse(true)
	}
	if d.Dim {
		style = style.Dim(true)
	}
	return style
}
