package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// field is a minimal single-line text input. The screens hand the focused
// field every key that is not a navigation or submit key.
type field struct {
	label       string
	placeholder string
	value       string
	secret      bool
}

func (f *field) handleKey(k tea.KeyMsg) {
	switch k.Type {
	case tea.KeyBackspace:
		if len(f.value) > 0 {
			f.value = f.value[:len(f.value)-1]
		}
	case tea.KeySpace:
		f.value += " "
	case tea.KeyRunes:
		f.value += string(k.Runes)
	}
}

func (f *field) display() string {
	if f.value == "" {
		return f.placeholder
	}
	if f.secret {
		return strings.Repeat("*", len(f.value))
	}
	return f.value
}

func (f *field) reset() {
	f.value = ""
}
