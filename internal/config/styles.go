package config

import (
	"fmt"
	"maps"
	"strings"

	"github.com/dshills/blockpad/internal/engine/document"
)

// StyleDirective describes how an inline style or block type is rendered.
type StyleDirective struct {
	Bold          bool   `toml:"bold" yaml:"bold"`
	Italic        bool   `toml:"italic" yaml:"italic"`
	Underline     bool   `toml:"underline" yaml:"underline"`
	Strikethrough bool   `toml:"strikethrough" yaml:"strikethrough"`
	Reverse       bool   `toml:"reverse" yaml:"reverse"`
	Dim           bool   `toml:"dim" yaml:"dim"`
	Fg            string `toml:"fg" yaml:"fg"`
	Bg            string `toml:"bg" yaml:"bg"`
}

// IsZero returns true if the directive changes nothing.
func (d StyleDirective) IsZero() bool {
	return d == StyleDirective{}
}

// Merge returns d with every attribute set in o applied on top.
func (d StyleDirective) Merge(o StyleDirective) StyleDirective {
	d.Bold = d.Bold || o.Bold
	d.Italic = d.Italic || o.Italic
	d.Underline = d.Underline || o.Underline
	d.Strikethrough = d.Strikethrough || o.Strikethrough
	d.Reverse = d.Reverse || o.Reverse
	d.Dim = d.Dim || o.Dim
	if o.Fg != "" {
		d.Fg = o.Fg
	}
	if o.Bg != "" {
		d.Bg = o.Bg
	}
	return d
}

// CSS returns the directive as CSS declarations.
func (d StyleDirective) CSS() string {
	var decls []string
	if d.Bold {
		decls = append(decls, "font-weight: bold")
	}
	if d.Italic {
		decls = append(decls, "font-style: italic")
	}
	var lines []string
	if d.Underline {
		lines = append(lines, "underline")
	}
	if d.Strikethrough {
		lines = append(lines, "line-through")
	}
	if len(lines) > 0 {
		decls = append(decls, "text-decoration: "+strings.Join(lines, " "))
	}
	if d.Dim {
		decls = append(decls, "opacity: 0.6")
	}
	fg, bg := d.Fg, d.Bg
	if d.Reverse {
		fg, bg = bg, fg
	}
	if fg != "" {
		decls = append(decls, "color: "+fg)
	}
	if bg != "" {
		decls = append(decls, "background-color: "+bg)
	}
	return strings.Join(decls, "; ")
}

// StyleMap maps inline style names and block types to directives.
type StyleMap map[string]StyleDirective

// DefaultStyles returns the built-in style map.
func DefaultStyles() StyleMap {
	return StyleMap{
		string(document.StyleBold):          {Bold: true},
		string(document.StyleItalic):        {Italic: true},
		string(document.StyleUnderline):     {Underline: true},
		string(document.StyleStrikethrough): {Strikethrough: true},
		string(document.StyleCode):          {Reverse: true},
		string(document.StyleColorRed):      {Fg: "red"},
		"unset":                             {},

		string(document.TypeHeaderOne):   {Bold: true, Underline: true},
		string(document.TypeHeaderTwo):   {Bold: true},
		string(document.TypeHeaderThree): {Bold: true},
		string(document.TypeBlockquote):  {Italic: true, Dim: true},
		string(document.TypeCodeBlock):   {Fg: "green"},
	}
}

// Merge returns a copy of m with the entries of o replacing its own.
func (m StyleMap) Merge(o StyleMap) StyleMap {
	out := make(StyleMap, len(m)+len(o))
	maps.Copy(out, m)
	maps.Copy(out, o)
	return out
}

// Lookup returns the directive for name.
func (m StyleMap) Lookup(name string) (StyleDirective, bool) {
	d, ok := m[name]
	return d, ok
}

// Resolve combines the directives of a block type and a set of inline
// styles. Inline styles are applied in set order over the block directive.
func (m StyleMap) Resolve(typ document.BlockType, styles document.StyleSet) StyleDirective {
	d := m[string(typ)]
	for _, s := range styles {
		d = d.Merge(m[string(s)])
	}
	return d
}

// CSS returns the CSS declarations of every inline style with a color or
// decoration, keyed by style name. Block types are skipped.
func (m StyleMap) CSS() map[document.Style]string {
	out := make(map[document.Style]string)
	for name, d := range m {
		if document.BlockType(name).IsKnown() {
			continue
		}
		if css := d.CSS(); css != "" {
			out[document.Style(name)] = css
		}
	}
	return out
}

// Validate checks that every entry has a name.
func (m StyleMap) Validate() error {
	for name := range m {
		if strings.TrimSpace(name) == "" {
			return &ValidationError{Path: "styles", Message: "empty style name", Value: fmt.Sprintf("%q", name)}
		}
	}
	return nil
}

func documentStyle(s string) document.Style {
	return document.Style(s)
}

func documentBlockType(s string) document.BlockType {
	return document.BlockType(s)
}
