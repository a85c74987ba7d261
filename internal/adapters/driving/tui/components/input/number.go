// Package input provides form input components for the TUI.
package input

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/custodia-labs/cgpa-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cgpa-cli/internal/core/domain"
)

// NumberInput wraps a bubbles textinput that accepts a non-negative
// decimal number and can be stepped like a spin box.
type NumberInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	step      decimal.Decimal
	limit     decimal.Decimal // zero means unbounded
}

// NewNumberInput creates a numeric input with a label and step size.
// A positive limit caps stepping and is enforced on Value.
func NewNumberInput(s *styles.Styles, label string, step, limit float64) *NumberInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "0"
	ti.CharLimit = 12
	ti.Width = 12

	n := &NumberInput{
		textinput: ti,
		styles:    s,
		label:     label,
	}
	n.SetStep(step, limit)
	return n
}

// Init initialises the input.
func (n *NumberInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages. Rune keys other than digits and
// a decimal point are dropped.
func (n *NumberInput) Update(msg tea.Msg) (*NumberInput, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyRunes {
		for _, r := range key.Runes {
			if (r < '0' || r > '9') && r != '.' {
				return n, nil
			}
		}
	}

	var cmd tea.Cmd
	n.textinput, cmd = n.textinput.Update(msg)
	return n, cmd
}

// View renders the label and the input box.
func (n *NumberInput) View() string {
	box := n.styles.InputField
	if n.textinput.Focused() {
		box = n.styles.FocusedInput
	}
	label := n.styles.Label.Render(n.label)
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, box.Render(n.textinput.View()))
}

// Value parses the input. An empty input reads as zero.
func (n *NumberInput) Value() (float64, error) {
	raw := strings.TrimSpace(n.textinput.Value())
	if raw == "" {
		return 0, nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q is not a number", domain.ErrInvalidInput, n.label, raw)
	}
	if n.limit.IsPositive() && decimal.NewFromFloat(f).GreaterThan(n.limit) {
		return 0, fmt.Errorf("%w: %s: %s is above %s", domain.ErrInvalidInput, n.label, raw, n.limit)
	}
	return f, nil
}

// Step moves the value by delta steps, clamped to zero and the limit.
// An unparsable value is treated as zero.
func (n *NumberInput) Step(delta int) {
	current, err := n.Value()
	if err != nil {
		current = 0
	}

	next := decimal.NewFromFloat(current).Add(n.step.Mul(decimal.NewFromInt(int64(delta))))
	if next.IsNegative() {
		next = decimal.Zero
	}
	if n.limit.IsPositive() && next.GreaterThan(n.limit) {
		next = n.limit
	}
	n.textinput.SetValue(next.StringFixed(Places(n.step.InexactFloat64())))
	n.textinput.CursorEnd()
}

// SetStep updates the step size and limit.
func (n *NumberInput) SetStep(step, limit float64) {
	n.step = decimal.NewFromFloat(step)
	n.limit = decimal.NewFromFloat(limit)
}

// SetLabel updates the label.
func (n *NumberInput) SetLabel(label string) {
	n.label = label
}

// Label returns the label.
func (n *NumberInput) Label() string {
	return n.label
}

// Text returns the raw input text.
func (n *NumberInput) Text() string {
	return n.textinput.Value()
}

// SetText sets the raw input text.
func (n *NumberInput) SetText(value string) {
	n.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (n *NumberInput) Focus() tea.Cmd {
	return n.textinput.Focus()
}

// Blur removes focus from the input.
func (n *NumberInput) Blur() {
	n.textinput.Blur()
}

// Focused returns whether the input is focused.
func (n *NumberInput) Focused() bool {
	return n.textinput.Focused()
}

// Reset clears the input.
func (n *NumberInput) Reset() {
	n.textinput.Reset()
}

// Places returns the number of decimal places a step size needs,
// e.g. 2 for 0.01 and 0 for 1.
func Places(step float64) int32 {
	exp := decimal.NewFromFloat(step).Exponent()
	if exp >= 0 {
		return 0
	}
	return -exp
}
