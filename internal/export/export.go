// Package export renders documents as Markdown and HTML.
//
// Markdown is produced directly from the block model. HTML is produced by
// rendering that Markdown with goldmark, so both outputs always agree.
// Inline styles without a Markdown form (UNDERLINE, color styles and any
// host-defined style) are written as inline HTML spans.
package export

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/dshills/blockpad/internal/engine/document"
)

// Exporter renders documents.
type Exporter struct {
	css map[document.Style]string
	md  goldmark.Markdown
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithInlineCSS sets the CSS declarations used for styles rendered as spans,
// such as {"color-red": "color: red"}. Entries are merged over the defaults.
func WithInlineCSS(css map[document.Style]string) Option {
	return func(e *Exporter) {
		for k, v := range css {
			e.css[k] = v
		}
	}
}

// DefaultInlineCSS returns the CSS for the built-in span styles.
func DefaultInlineCSS() map[document.Style]string {
	return map[document.Style]string{
		document.StyleColorRed:  "color: red",
		document.StyleUnderline: "text-decoration: underline",
	}
}

// New creates an Exporter.
func New(opts ...Option) *Exporter {
	e := &Exporter{
		css: DefaultInlineCSS(),
		md: goldmark.New(
			goldmark.WithExtensions(extension.Strikethrough),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
				html.WithHardWraps(),
			),
		),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Markdown renders doc as Markdown.
func (e *Exporter) Markdown(doc *document.Document) string {
	var buf strings.Builder
	blocks := doc.Blocks()
	for i := 0; i < len(blocks); i++ {
		b := blocks[i]
		if i > 0 {
			buf.WriteString(separator(blocks[i-1].Type(), b.Type()))
		}

		if b.Type() == document.TypeCodeBlock {
			// Consecutive code blocks share one fence.
			j := i
			var lines []string
			for ; j < len(blocks) && blocks[j].Type() == document.TypeCodeBlock; j++ {
				lines = append(lines, blocks[j].Text())
			}
			fence := codeFence(lines)
			buf.WriteString(fence + "\n" + strings.Join(lines, "\n") + "\n" + fence)
			i = j - 1
			continue
		}

		buf.WriteString(e.blockMarkdown(b, orderedIndex(blocks, i)))
	}
	buf.WriteString("\n")
	return buf.String()
}

// HTML renders doc as HTML.
func (e *Exporter) HTML(doc *document.Document) (string, error) {
	var buf bytes.Buffer
	if err := e.WriteHTML(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteHTML renders doc as HTML to w.
func (e *Exporter) WriteHTML(w io.Writer, doc *document.Document) error {
	if err := e.md.Convert([]byte(e.Markdown(doc)), w); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func (e *Exporter) blockMarkdown(b document.Block, ordinal int) string {
	text := e.inlineMarkdown(b)
	switch b.Type() {
	case document.TypeBlockquote:
		return "> " + strings.ReplaceAll(text, "\n", "\n> ")
	case document.TypeUnorderedListItem:
		return "- " + strings.ReplaceAll(text, "\n", "\n  ")
	case document.TypeOrderedListItem:
		prefix := fmt.Sprintf("%d. ", ordinal)
		return prefix + strings.ReplaceAll(text, "\n", "\n"+strings.Repeat(" ", len(prefix)))
	}
	if level := b.Type().HeaderLevel(); level > 0 {
		return strings.Repeat("#", level) + " " + strings.ReplaceAll(text, "\n", " ")
	}
	if strings.HasPrefix(text, ">") || strings.HasPrefix(text, "- ") || strings.HasPrefix(text, "+ ") {
		return `\` + text
	}
	return text
}

// separator returns the text placed between two consecutive blocks.
func separator(prev, next document.BlockType) string {
	if prev == next && isListItem(prev) {
		return "\n"
	}
	return "\n\n"
}

func isListItem(t document.BlockType) bool {
	return t == document.TypeUnorderedListItem || t == document.TypeOrderedListItem
}

// orderedIndex returns the 1-based position of blocks[i] within its run of
// ordered list items.
func orderedIndex(blocks []document.Block, i int) int {
	n := 1
	for j := i - 1; j >= 0 && blocks[j].Type() == document.TypeOrderedListItem; j-- {
		n++
	}
	return n
}

// codeFence returns a backtick fence longer than any backtick run in lines.
func codeFence(lines []string) string {
	longest := 0
	for _, l := range lines {
		run := 0
		for _, r := range l {
			if r == '`' {
				run++
				longest = max(longest, run)
			} else {
				run = 0
			}
		}
	}
	return strings.Repeat("`", max(3, longest+1))
}

// markdownOrder is the nesting order for styles with Markdown delimiters.
var markdownOrder = []document.Style{
	document.StyleBold,
	document.StyleItalic,
	document.StyleStrikethrough,
}

var delimiters = map[document.Style]string{
	document.StyleBold:          "**",
	document.StyleItalic:        "_",
	document.StyleStrikethrough: "~~",
}

// inlineMarkdown renders the block text with style delimiters. Open styles
// are kept on a stack; when a style ends, everything opened after it is
// closed and reopened so delimiters always nest.
func (e *Exporter) inlineMarkdown(b document.Block) string {
	text := []rune(b.Text())
	if len(text) == 0 {
		return ""
	}

	var out strings.Builder
	var stack []document.Style
	start := 0
	for start < len(text) {
		set := b.StylesAt(start)
		end := start + 1
		for end < len(text) && b.StylesAt(end).Equal(set) {
			end++
		}

		keep := 0
		for keep < len(stack) && set.Has(stack[keep]) && !set.Has(document.StyleCode) {
			keep++
		}
		for i := len(stack) - 1; i >= keep; i-- {
			out.WriteString(e.closing(stack[i]))
		}
		stack = stack[:keep]

		if !set.Has(document.StyleCode) {
			for _, s := range e.ordered(set) {
				if !slices.Contains(stack, s) {
					out.WriteString(e.opening(s))
					stack = append(stack, s)
				}
			}
		}

		segment := string(text[start:end])
		if set.Has(document.StyleCode) {
			out.WriteString(codeSpan(segment))
		} else {
			out.WriteString(escape(segment))
		}
		start = end
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out.WriteString(e.closing(stack[i]))
	}
	return out.String()
}

// ordered returns the styles of set that render as delimiters or spans in
// nesting order: Markdown delimiters first, then spans by name.
func (e *Exporter) ordered(set document.StyleSet) []document.Style {
	var out []document.Style
	for _, s := range markdownOrder {
		if set.Has(s) {
			out = append(out, s)
		}
	}
	for _, s := range set {
		if _, ok := delimiters[s]; ok || s == document.StyleCode {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (e *Exporter) opening(s document.Style) string {
	if d, ok := delimiters[s]; ok {
		return d
	}
	if css, ok := e.css[s]; ok {
		return fmt.Sprintf(`<span style="%s">`, css)
	}
	return fmt.Sprintf(`<span class="%s">`, strings.ToLower(string(s)))
}

func (e *Exporter) closing(s document.Style) string {
	if d, ok := delimiters[s]; ok {
		return d
	}
	return "</span>"
}

func codeSpan(s string) string {
	if strings.Contains(s, "`") {
		return "`` " + s + " ``"
	}
	return "`" + s + "`"
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"~", `\~`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	"#", `\#`,
)

func escape(s string) string {
	return escaper.Replace(s)
}
