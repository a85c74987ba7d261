// Package calculator provides the GPA form view for the TUI.
package calculator

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/custodia-labs/cgpa-cli/internal/adapters/driving/report"
	"github.com/custodia-labs/cgpa-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/cgpa-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/cgpa-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/cgpa-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cgpa-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cgpa-cli/internal/core/domain"
	"github.com/custodia-labs/cgpa-cli/internal/core/ports/driving"
)

// Focus positions before the subject rows. Each row then takes two
// positions: its grade selector followed by its credit stepper.
const (
	focusPrevCGPA = iota
	focusPrevCredit
	focusCount
	focusRows
)

type subjectRow struct {
	grade   domain.GradeLabel
	credits float64
}

// View is the GPA calculator form.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	averager driving.GradeAverager
	settings driving.SettingsService

	bounds domain.FormBounds
	loaded bool

	prevCGPA   *input.NumberInput
	prevCredit *input.NumberInput
	rows       []subjectRow
	focus      int

	showGrades  bool
	result      *domain.Averages
	err         error
	calculating bool

	// generation increases on every form change so stale completions are dropped.
	generation int

	statusBar *status.Bar

	width  int
	height int
	ready  bool
}

// NewView creates a new calculator view.
func NewView(s *styles.Styles, averager driving.GradeAverager, settings driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()
	bounds := domain.DefaultFormBounds()

	v := &View{
		styles:     s,
		keymap:     km,
		averager:   averager,
		settings:   settings,
		bounds:     bounds,
		prevCGPA:   input.NewNumberInput(s, "Previous CGPA", bounds.PriorAverageStep, bounds.MaxPriorAverage),
		prevCredit: input.NewNumberInput(s, bounds.CreditLabel(), bounds.PriorCreditStep, 0),
		statusBar:  status.NewBar(s, km),
	}
	v.resizeRows(bounds.DefaultSubjects)
	v.prevCGPA.Focus()
	return v
}

// Init initialises the view and loads form bounds.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.prevCGPA.Init(), v.loadBounds())
}

// loadBounds returns a command that loads the current form bounds.
func (v *View) loadBounds() tea.Cmd {
	return func() tea.Msg {
		if v.settings == nil {
			return messages.BoundsLoaded{Bounds: domain.DefaultFormBounds()}
		}
		b, err := v.settings.Bounds()
		return messages.BoundsLoaded{Bounds: b, Err: err}
	}
}

// Update handles messages for the calculator view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.BoundsLoaded:
		if msg.Err != nil {
			v.setError(fmt.Errorf("failed to load form bounds: %w", msg.Err))
			return v, nil
		}
		v.applyBounds(msg.Bounds)
		return v, nil

	case messages.ConfigChanged:
		return v, v.loadBounds()

	case messages.CalculationCompleted:
		if msg.Generation != v.generation {
			return v, nil
		}
		v.calculating = false
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		avg := msg.Averages
		v.result = &avg
		v.err = nil
		v.statusBar.SetState(status.StateCalculated)
		v.statusBar.SetMessage("")
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

//nolint:gocyclo // one branch per binding
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	switch {
	case keymap.Matches(k, v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	case keymap.Matches(k, v.keymap.Help):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }
	case keymap.Matches(k, v.keymap.Calculate):
		return v, v.calculate()
	case keymap.Matches(k, v.keymap.Grades):
		v.showGrades = !v.showGrades
		return v, nil
	case keymap.Matches(k, v.keymap.Reset):
		v.Reset()
		return v, nil
	case keymap.Matches(k, v.keymap.Next):
		return v, v.moveFocus(1)
	case keymap.Matches(k, v.keymap.Prev):
		return v, v.moveFocus(-1)
	case keymap.Matches(k, v.keymap.Increase):
		v.adjust(1)
		return v, nil
	case keymap.Matches(k, v.keymap.Decrease):
		v.adjust(-1)
		return v, nil
	}

	if field := v.focusedInput(); field != nil {
		// Left and right move the text cursor inside inputs.
		before := field.Text()
		var cmd tea.Cmd
		_, cmd = field.Update(msg)
		if field.Text() != before {
			v.clearResult()
		}
		return v, cmd
	}

	switch {
	case keymap.Matches(k, v.keymap.Right):
		v.adjust(1)
	case keymap.Matches(k, v.keymap.Left):
		v.adjust(-1)
	}
	return v, nil
}

// adjust steps the focused control by delta.
func (v *View) adjust(delta int) {
	switch {
	case v.focus == focusPrevCGPA:
		v.prevCGPA.Step(delta)
	case v.focus == focusPrevCredit:
		v.prevCredit.Step(delta)
	case v.focus == focusCount:
		v.resizeRows(v.bounds.ClampSubjects(len(v.rows) + delta))
		v.focus = min(v.focus, v.fieldCount()-1)
	default:
		row, isCredit := v.rowAt(v.focus)
		if isCredit {
			step := decimal.NewFromFloat(v.bounds.CreditStep).Mul(decimal.NewFromInt(int64(delta)))
			next := decimal.NewFromFloat(v.rows[row].credits).Add(step).InexactFloat64()
			v.rows[row].credits = v.bounds.ClampCredit(next)
		} else if delta > 0 {
			v.rows[row].grade = v.rows[row].grade.Next()
		} else {
			v.rows[row].grade = v.rows[row].grade.Prev()
		}
	}
	v.clearResult()
}

// moveFocus moves focus by delta, wrapping around the form.
func (v *View) moveFocus(delta int) tea.Cmd {
	n := v.fieldCount()
	v.focus = ((v.focus+delta)%n + n) % n
	return v.syncFocus()
}

func (v *View) syncFocus() tea.Cmd {
	v.prevCGPA.Blur()
	v.prevCredit.Blur()
	if field := v.focusedInput(); field != nil {
		return field.Focus()
	}
	return nil
}

func (v *View) focusedInput() *input.NumberInput {
	switch v.focus {
	case focusPrevCGPA:
		return v.prevCGPA
	case focusPrevCredit:
		return v.prevCredit
	default:
		return nil
	}
}

func (v *View) fieldCount() int {
	return focusRows + 2*len(v.rows)
}

// rowAt maps a focus position at or after focusRows to a subject row.
func (v *View) rowAt(focus int) (row int, isCredit bool) {
	offset := focus - focusRows
	return offset / 2, offset%2 == 1
}

// resizeRows grows or shrinks the subject list, keeping existing rows.
func (v *View) resizeRows(n int) {
	if n <= len(v.rows) {
		v.rows = v.rows[:n]
		v.statusBar.SetSubjects(n)
		return
	}
	for len(v.rows) < n {
		v.rows = append(v.rows, subjectRow{grade: v.bounds.DefaultGrade, credits: v.bounds.DefaultCredit})
	}
	v.statusBar.SetSubjects(n)
}

// applyBounds adopts new form bounds. The first load resets the subject
// count to the default; later loads only clamp what is on the form.
func (v *View) applyBounds(b domain.FormBounds) {
	v.bounds = b
	v.prevCGPA.SetStep(b.PriorAverageStep, b.MaxPriorAverage)
	v.prevCredit.SetStep(b.PriorCreditStep, 0)
	v.prevCredit.SetLabel(b.CreditLabel())

	if !v.loaded {
		v.rows = nil
		v.resizeRows(b.DefaultSubjects)
		v.loaded = true
	} else {
		v.resizeRows(b.ClampSubjects(len(v.rows)))
		for i := range v.rows {
			v.rows[i].credits = b.ClampCredit(v.rows[i].credits)
		}
	}
	v.focus = min(v.focus, v.fieldCount()-1)
	v.clearResult()
}

// calculate validates the form and returns a command running the averager.
func (v *View) calculate() tea.Cmd {
	if v.calculating {
		return nil
	}

	prior, err := v.priorState()
	if err != nil {
		v.setError(err)
		return nil
	}
	if v.averager == nil {
		v.setError(errors.New("grade averager not available"))
		return nil
	}

	record := v.termRecord()
	v.calculating = true
	v.statusBar.SetState(status.StateCalculating)

	averager := v.averager
	gen := v.generation
	return func() tea.Msg {
		avg, err := averager.Compute(record, &prior)
		return messages.CalculationCompleted{Averages: avg, Subjects: record.Len(), Err: err, Generation: gen}
	}
}

func (v *View) priorState() (domain.PriorAcademicState, error) {
	cgpa, err := v.prevCGPA.Value()
	if err != nil {
		return domain.PriorAcademicState{}, err
	}
	credit, err := v.prevCredit.Value()
	if err != nil {
		return domain.PriorAcademicState{}, err
	}

	prior := domain.PriorAcademicState{CumulativeAverage: cgpa, CreditTotal: credit}
	if err := v.bounds.CheckPrior(prior); err != nil {
		return domain.PriorAcademicState{}, err
	}
	return prior, nil
}

func (v *View) termRecord() domain.TermRecord {
	entries := make([]domain.SubjectEntry, len(v.rows))
	for i, r := range v.rows {
		entries[i] = domain.SubjectEntry{Grade: r.grade, Credits: r.credits}
	}
	return domain.NewTermRecord(entries...)
}

func (v *View) setError(err error) {
	v.err = err
	v.result = nil
	v.statusBar.SetState(status.StateError)
	v.statusBar.SetMessage(err.Error())
}

// clearResult marks the form as changed, discarding any shown or pending result.
func (v *View) clearResult() {
	v.generation++
	if v.result == nil && v.err == nil && !v.calculating {
		return
	}
	v.result = nil
	v.err = nil
	v.calculating = false
	v.statusBar.Clear()
}

// View renders the calculator form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("CGPA Calculator"))
	b.WriteString("\n\n")

	b.WriteString(v.prevCGPA.View())
	b.WriteString("\n")
	b.WriteString(v.prevCredit.View())
	b.WriteString("\n\n")

	b.WriteString(v.styles.Label.Render("Number of subjects"))
	b.WriteString(v.control(focusCount, fmt.Sprintf("‹ %d ›", len(v.rows))))
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  (%d to %d)", v.bounds.MinSubjects, v.bounds.MaxSubjects)))
	b.WriteString("\n\n")

	places := input.Places(v.bounds.CreditStep)
	for i, r := range v.rows {
		focus := focusRows + 2*i
		b.WriteString(v.styles.Label.Render(fmt.Sprintf("Subject %d", i+1)))
		b.WriteString("Grade ")
		b.WriteString(v.control(focus, fmt.Sprintf("‹ %-2s ›", r.grade)))
		b.WriteString("   Credits ")
		b.WriteString(v.control(focus+1, fmt.Sprintf("‹ %s ›", decimal.NewFromFloat(r.credits).StringFixed(places))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.showGrades {
		b.WriteString(report.GradeTable(v.styles.TableHeader, v.styles.TableCell, v.styles.Border).String())
		b.WriteString("\n\n")
	} else {
		b.WriteString(v.styles.Muted.Render("Press g to show the grade table"))
		b.WriteString("\n\n")
	}

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n")
	case v.result != nil:
		b.WriteString(v.styles.Result.Render(report.TermLine(*v.result)))
		b.WriteString("\n")
		b.WriteString(v.styles.Result.Render(report.CumulativeLine(*v.result)))
		b.WriteString("\n")
	}

	v.statusBar.SetWidth(v.width)
	return lipgloss.JoinVertical(lipgloss.Left, b.String(), v.statusBar.View())
}

// control renders a stepper or selector, highlighted when focused.
func (v *View) control(focus int, text string) string {
	if v.focus == focus {
		return v.styles.Selected.Render(text)
	}
	return v.styles.Normal.Render(text)
}

// SetDimensions sets the terminal dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset restores the form to the current bounds' defaults.
func (v *View) Reset() {
	v.prevCGPA.Reset()
	v.prevCredit.Reset()
	v.rows = nil
	v.resizeRows(v.bounds.DefaultSubjects)
	v.focus = focusPrevCGPA
	v.syncFocus()
	v.showGrades = false
	v.result = nil
	v.err = nil
	v.calculating = false
	v.generation++
	v.statusBar.Clear()
}

// Subjects returns the number of subject rows on the form.
func (v *View) Subjects() int {
	return len(v.rows)
}

// Entries returns the current subject rows as domain entries.
func (v *View) Entries() []domain.SubjectEntry {
	return v.termRecord().Subjects
}

// Focus returns the focused form position.
func (v *View) Focus() int {
	return v.focus
}

// Bounds returns the form bounds in effect.
func (v *View) Bounds() domain.FormBounds {
	return v.bounds
}

// Result returns the last computed averages, or nil.
func (v *View) Result() *domain.Averages {
	return v.result
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// ShowGrades reports whether the grade table is visible.
func (v *View) ShowGrades() bool {
	return v.showGrades
}
