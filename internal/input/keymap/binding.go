package keymap

import (
	"github.com/dshills/blockpad/internal/input/key"
)

// Binding represents a single key-to-command mapping.
type Binding struct {
	// Keys is the key chord that triggers this binding.
	// Formats: "Enter", "Shift+Enter", "Ctrl+B", "<C-b>"
	Keys string

	// Command is the editing command to run.
	// Examples: "split-block", "bold", "undo"
	Command string

	// Description provides documentation for the binding.
	Description string

	// Category groups bindings for display purposes.
	Category string
}

// NewBinding creates a new binding with the given keys and command.
func NewBinding(keys, command string) Binding {
	return Binding{
		Keys:    keys,
		Command: command,
	}
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// WithCategory sets the category for this binding.
func (b Binding) WithCategory(category string) Binding {
	b.Category = category
	return b
}

// IsUnbind returns true if the binding removes its chord.
func (b Binding) IsUnbind() bool {
	return b.Command == ""
}

// ParsedBinding is a binding with its parsed key event.
type ParsedBinding struct {
	Binding
	Event key.Event
}

// Match checks if the binding's chord matches ev.
func (pb ParsedBinding) Match(ev key.Event) bool {
	return pb.Event.Matches(ev)
}

// BindingCategory represents a category of bindings for display.
type BindingCategory struct {
	Name     string
	Bindings []Binding
}

// GroupByCategory groups bindings by their category in first-seen order.
func GroupByCategory(bindings []Binding) []BindingCategory {
	categoryMap := make(map[string][]Binding)
	order := make([]string, 0)

	for _, b := range bindings {
		cat := b.Category
		if cat == "" {
			cat = "Other"
		}
		if _, exists := categoryMap[cat]; !exists {
			order = append(order, cat)
		}
		categoryMap[cat] = append(categoryMap[cat], b)
	}

	result := make([]BindingCategory, 0, len(order))
	for _, name := range order {
		result = append(result, BindingCategory{
			Name:     name,
			Bindings: categoryMap[name],
		})
	}
	return result
}
