// Package trigger recognizes inline markdown-like trigger sequences.
//
// A Rule pairs a start-anchored text pattern with the formatting it produces:
// a block type, an inline style, or both. Rules are evaluated in declaration
// order against the active block's text plus the character about to be typed;
// the first match wins. Matching is kept separate from mutation so rules can
// be tested with plain fixture strings.
package trigger

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dshills/blockpad/internal/engine/document"
)

// Errors returned when building rules.
var (
	ErrEmptyPattern = errors.New("empty trigger pattern")
	ErrNoEffect     = errors.New("trigger rule has neither block type nor inline style")
)

// Rule is one trigger: when Pattern matches the start of the probe string,
// the matched text is erased and BlockType and/or InlineStyle are applied.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	BlockType   document.BlockType
	InlineStyle document.Style
}

// NewRule compiles pattern into a rule. Patterns are always anchored at the
// start of the probe; a leading "^" is added when missing. "." matches
// newlines.
func NewRule(name, pattern string, blockType document.BlockType, style document.Style) (Rule, error) {
	if pattern == "" {
		return Rule{}, fmt.Errorf("rule %q: %w", name, ErrEmptyPattern)
	}
	if blockType == "" && style == "" {
		return Rule{}, fmt.Errorf("rule %q: %w", name, ErrNoEffect)
	}

	expr := strings.TrimPrefix(pattern, "^")
	re, err := regexp.Compile(`(?s)^(?:` + expr + `)`)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: %w", name, err)
	}

	return Rule{
		Name:        name,
		Pattern:     re,
		BlockType:   blockType,
		InlineStyle: style,
	}, nil
}

// MustRule is like NewRule but panics on error.
func MustRule(name, pattern string, blockType document.BlockType, style document.Style) Rule {
	r, err := NewRule(name, pattern, blockType, style)
	if err != nil {
		panic(err)
	}
	return r
}

// Match describes a successful rule evaluation.
type Match struct {
	Rule Rule

	// Text is the matched prefix of the probe.
	Text string

	// End is the length of the match in characters.
	End int
}

// MatchString reports whether the rule matches the start of probe.
func (r Rule) MatchString(probe string) (Match, bool) {
	if r.Pattern == nil {
		return Match{}, false
	}
	loc := r.Pattern.FindStringIndex(probe)
	if loc == nil || loc[0] != 0 || loc[1] == 0 {
		return Match{}, false
	}
	text := probe[:loc[1]]
	return Match{
		Rule: r,
		Text: text,
		End:  utf8.RuneCountInString(text),
	}, true
}

// String returns the rule name and pattern.
func (r Rule) String() string {
	var effect []string
	if r.BlockType != "" {
		effect = append(effect, "block="+string(r.BlockType))
	}
	if r.InlineStyle != "" {
		effect = append(effect, "style="+string(r.InlineStyle))
	}
	pattern := ""
	if r.Pattern != nil {
		pattern = r.Pattern.String()
	}
	return fmt.Sprintf("%s(%s %s)", r.Name, pattern, strings.Join(effect, ","))
}

// Rules is an ordered rule list. Earlier rules take priority.
type Rules []Rule

// Match evaluates the rules in order and returns the first match.
func (rs Rules) Match(probe string) (Match, bool) {
	for _, r := range rs {
		if m, ok := r.MatchString(probe); ok {
			return m, true
		}
	}
	return Match{}, false
}

// Names returns the rule names in order.
func (rs Rules) Names() []string {
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.Name
	}
	return names
}

// DefaultRules returns the built-in triggers in priority order:
//
//	"# "   header-one
//	"* "   BOLD
//	"** "  color-red
//	"*** " UNDERLINE
//	"``` " code-block
func DefaultRules() Rules {
	return Rules{
		MustRule("header-one", `#\s`, document.TypeHeaderOne, ""),
		MustRule("bold", `\*\s`, "", document.StyleBold),
		MustRule("red", `\*{2}\s`, "", document.StyleColorRed),
		MustRule("underline", `\*{3}\s`, "", document.StyleUnderline),
		MustRule("code-block", "`{3}\\s", document.TypeCodeBlock, ""),
	}
}
