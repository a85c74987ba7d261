package calculator

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cgpa-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cgpa-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/cgpa-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/cgpa-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cgpa-cli/internal/core/domain"
	"github.com/custodia-labs/cgpa-cli/internal/core/services"
)

// MockAverager implements driving.GradeAverager for testing.
type MockAverager struct {
	mock.Mock
}

func (m *MockAverager) Compute(term domain.TermRecord, prior *domain.PriorAcademicState) (domain.Averages, error) {
	args := m.Called(term, prior)
	return args.Get(0).(domain.Averages), args.Error(1)
}

var specialKeys = map[string]tea.KeyType{
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"enter":     tea.KeyEnter,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"backspace": tea.KeyBackspace,
	"ctrl+r":    tea.KeyCtrlR,
}

func keyMsg(k string) tea.KeyMsg {
	if t, ok := specialKeys[k]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends keys to the view. Commands returned by the calculate keys
// are run and their message fed back; other commands are cursor blinks.
func press(v *View, keys ...string) {
	for _, k := range keys {
		_, cmd := v.Update(keyMsg(k))
		if cmd == nil || !keymap.Matches(k, v.keymap.Calculate) {
			continue
		}
		if msg, ok := cmd().(messages.CalculationCompleted); ok {
			v.Update(msg)
		}
	}
}

func typeText(v *View, s string) {
	for _, r := range s {
		press(v, string(r))
	}
}

func newLoadedView(t *testing.T, settings ...[2]string) *View {
	t.Helper()
	svc := services.NewSettingsService(memory.NewConfigStore())
	for _, kv := range settings {
		require.NoError(t, svc.Set(kv[0], kv[1]))
	}

	v := NewView(nil, services.NewGradeAverager(), svc)
	v.Update(v.loadBounds()())
	v.SetDimensions(120, 40)
	return v
}

func TestNewView(t *testing.T) {
	v := NewView(nil, services.NewGradeAverager(), nil)

	require.NotNil(t, v)
	assert.Equal(t, 7, v.Subjects())
	assert.Equal(t, focusPrevCGPA, v.Focus())
	assert.True(t, v.prevCGPA.Focused())
	for _, e := range v.Entries() {
		assert.Equal(t, domain.SubjectEntry{Grade: domain.GradeO, Credits: 4}, e)
	}
	assert.Nil(t, v.Result())
	assert.NoError(t, v.Err())
}

func TestView_Init(t *testing.T) {
	v := NewView(nil, services.NewGradeAverager(), nil)

	assert.NotNil(t, v.Init())
}

func TestView_LoadBoundsWithoutSettings(t *testing.T) {
	v := NewView(nil, services.NewGradeAverager(), nil)

	msg := v.loadBounds()()

	loaded, ok := msg.(messages.BoundsLoaded)
	require.True(t, ok)
	assert.NoError(t, loaded.Err)
	assert.Equal(t, domain.DefaultFormBounds(), loaded.Bounds)
}

func TestView_CalculateDefaults(t *testing.T) {
	v := newLoadedView(t)

	press(v, "enter")

	require.NotNil(t, v.Result())
	assert.Equal(t, 10.0, v.Result().Term)
	assert.Equal(t, 10.0, v.Result().Cumulative)
	assert.Contains(t, v.View(), "Your semester GPA is 10.00")
	assert.Contains(t, v.View(), "Your Cumulative GPA is 10.00")
}

func TestView_CalculateWithPrior(t *testing.T) {
	v := newLoadedView(t,
		[2]string{services.KeyMinSubjects, "1"},
		[2]string{services.KeyDefaultSubjects, "1"},
	)
	require.Equal(t, 1, v.Subjects())

	typeText(v, "8")
	press(v, "tab")
	typeText(v, "20")
	press(v, "tab", "tab")
	require.Equal(t, focusRows, v.Focus())
	press(v, "right", "right", "right", "right")
	require.Equal(t, domain.GradeB, v.Entries()[0].Grade)

	press(v, "enter")

	require.NoError(t, v.Err())
	require.NotNil(t, v.Result())
	view := v.View()
	assert.Contains(t, view, "Your semester GPA is 6.00")
	assert.Contains(t, view, "Your Cumulative GPA is 7.67")
}

func TestView_CalculateShortcutKey(t *testing.T) {
	v := newLoadedView(t)
	press(v, "tab", "tab")

	press(v, "c")

	assert.NotNil(t, v.Result())
}

func TestView_SubjectCountStepper(t *testing.T) {
	v := newLoadedView(t)
	press(v, "tab", "tab")
	require.Equal(t, focusCount, v.Focus())

	press(v, "+")
	assert.Equal(t, 8, v.Subjects())

	press(v, "right", "right", "right", "right")
	assert.Equal(t, 10, v.Subjects(), "clamped at max")

	for range 10 {
		press(v, "-")
	}
	assert.Equal(t, 5, v.Subjects(), "clamped at min")

	press(v, "right")
	assert.Equal(t, domain.SubjectEntry{Grade: domain.GradeO, Credits: 4}, v.Entries()[5])
}

func TestView_ShrinkingKeepsEarlierRows(t *testing.T) {
	v := newLoadedView(t)
	press(v, "tab", "tab", "tab", "left")
	require.Equal(t, domain.GradeC, v.Entries()[0].Grade)

	press(v, "shift+tab", "-", "-")

	assert.Equal(t, 5, v.Subjects())
	assert.Equal(t, domain.GradeC, v.Entries()[0].Grade)
}

func TestView_GradeSelectorWraps(t *testing.T) {
	v := newLoadedView(t)
	press(v, "tab", "tab", "tab")

	press(v, "left")
	assert.Equal(t, domain.GradeC, v.Entries()[0].Grade)

	press(v, "right")
	assert.Equal(t, domain.GradeO, v.Entries()[0].Grade)

	press(v, "+", "+")
	assert.Equal(t, domain.GradeA, v.Entries()[0].Grade)
}

func TestView_CreditStepper(t *testing.T) {
	v := newLoadedView(t)
	press(v, "tab", "tab", "tab", "tab")
	require.Equal(t, focusRows+1, v.Focus())

	press(v, "+")
	assert.Equal(t, 4.5, v.Entries()[0].Credits)

	for range 20 {
		press(v, "right")
	}
	assert.Equal(t, 10.0, v.Entries()[0].Credits)

	for range 30 {
		press(v, "left")
	}
	assert.Equal(t, 1.0, v.Entries()[0].Credits)
	assert.Contains(t, v.View(), "1.0")
}

func TestView_PriorInputStepping(t *testing.T) {
	v := newLoadedView(t)

	press(v, "+", "+")
	assert.Equal(t, "0.02", v.prevCGPA.Text())

	press(v, "tab", "+")
	assert.Equal(t, "0.5", v.prevCredit.Text())
}

func TestView_FocusWraps(t *testing.T) {
	v := newLoadedView(t)

	press(v, "shift+tab")
	assert.Equal(t, v.fieldCount()-1, v.Focus())
	assert.False(t, v.prevCGPA.Focused())

	press(v, "down")
	assert.Equal(t, focusPrevCGPA, v.Focus())
	assert.True(t, v.prevCGPA.Focused())

	press(v, "up")
	assert.Equal(t, v.fieldCount()-1, v.Focus())
}

func TestView_PriorAboveScale(t *testing.T) {
	v := newLoadedView(t)
	typeText(v, "11")

	_, cmd := v.Update(keyMsg("enter"))

	assert.Nil(t, cmd)
	require.Error(t, v.Err())
	assert.True(t, errors.Is(v.Err(), domain.ErrInvalidInput))
	assert.Nil(t, v.Result())
	assert.Contains(t, v.View(), "is above")
}

func TestView_MalformedPrior(t *testing.T) {
	v := newLoadedView(t)
	typeText(v, "8..1")

	press(v, "enter")

	assert.True(t, errors.Is(v.Err(), domain.ErrInvalidInput))
}

func TestView_LettersNeverReachInputs(t *testing.T) {
	v := newLoadedView(t)

	typeText(v, "8x")

	assert.Equal(t, "8", v.prevCGPA.Text())
}

func TestView_EditingClearsResult(t *testing.T) {
	v := newLoadedView(t)
	press(v, "enter")
	require.NotNil(t, v.Result())

	typeText(v, "9")

	assert.Nil(t, v.Result())
	assert.NotContains(t, v.View(), "Your semester GPA")
}

func TestView_ToggleGradeTable(t *testing.T) {
	v := newLoadedView(t)
	assert.NotContains(t, v.View(), "90-100")

	press(v, "g")
	assert.True(t, v.ShowGrades())
	assert.Contains(t, v.View(), "90-100")
	assert.Contains(t, v.View(), "Points")

	press(v, "g")
	assert.False(t, v.ShowGrades())
}

func TestView_CreditLabelFromBounds(t *testing.T) {
	v := newLoadedView(t)
	assert.Contains(t, v.View(), "Previous Credit (87 if AI-ML)")

	v2 := newLoadedView(t, [2]string{services.KeyPriorCreditHint, "0"})
	assert.NotContains(t, v2.View(), "AI-ML")
}

func TestView_ConfigChangedReloadsBounds(t *testing.T) {
	store := memory.NewConfigStore()
	svc := services.NewSettingsService(store)
	v := NewView(nil, services.NewGradeAverager(), svc)
	v.Update(v.loadBounds()())
	require.Equal(t, 7, v.Subjects())

	require.NoError(t, svc.Set(services.KeyDefaultSubjects, "5"))
	require.NoError(t, svc.Set(services.KeyMaxSubjects, "6"))
	require.NoError(t, svc.Set(services.KeyDefaultCredit, "2"))
	require.NoError(t, svc.Set(services.KeyMaxCredit, "3"))

	_, cmd := v.Update(messages.ConfigChanged{})
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.Equal(t, 6, v.Subjects(), "existing rows clamped, not reset")
	assert.Equal(t, 6, v.Bounds().MaxSubjects)
	for _, e := range v.Entries() {
		assert.Equal(t, 3.0, e.Credits)
	}
}

func TestView_EditDropsPendingCalculation(t *testing.T) {
	v := newLoadedView(t)

	_, cmd := v.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	pending := cmd()

	typeText(v, "5")
	v.Update(pending)

	assert.Nil(t, v.Result())
	assert.NoError(t, v.Err())
	assert.Equal(t, status.StateReady, v.statusBar.State())

	press(v, "enter")
	require.NotNil(t, v.Result(), "a fresh calculation still completes")
	assert.Equal(t, 10.0, v.Result().Term)
}

func TestView_ReloadDropsPendingCalculation(t *testing.T) {
	v := newLoadedView(t)

	_, cmd := v.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	pending := cmd()

	v.Update(messages.BoundsLoaded{Bounds: domain.DefaultFormBounds()})
	v.Update(pending)

	assert.Nil(t, v.Result())
	press(v, "enter")
	assert.NotNil(t, v.Result())
}

func TestView_BoundsLoadError(t *testing.T) {
	v := NewView(nil, services.NewGradeAverager(), nil)

	v.Update(messages.BoundsLoaded{Err: errors.New("disk on fire")})

	require.Error(t, v.Err())
	assert.Contains(t, v.Err().Error(), "disk on fire")
	assert.Equal(t, 7, v.Subjects())
}

func TestView_Reset(t *testing.T) {
	v := newLoadedView(t)
	typeText(v, "9")
	press(v, "tab", "tab", "+", "g", "enter")
	require.Equal(t, 8, v.Subjects())

	press(v, "ctrl+r")

	assert.Equal(t, 7, v.Subjects())
	assert.Equal(t, "", v.prevCGPA.Text())
	assert.Equal(t, focusPrevCGPA, v.Focus())
	assert.True(t, v.prevCGPA.Focused())
	assert.False(t, v.ShowGrades())
	assert.Nil(t, v.Result())
}

func TestView_QuitAndHelpKeys(t *testing.T) {
	v := newLoadedView(t)

	_, cmd := v.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.Quit{}, cmd())

	_, cmd = v.Update(keyMsg("?"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewHelp}, cmd())
}

func TestView_AveragerError(t *testing.T) {
	m := new(MockAverager)
	m.On("Compute", mock.Anything, mock.Anything).Return(domain.Averages{}, domain.ErrDivisionByZero)
	v := NewView(nil, m, nil)

	press(v, "enter")

	require.Error(t, v.Err())
	assert.True(t, errors.Is(v.Err(), domain.ErrDivisionByZero))
	m.AssertExpectations(t)
}

func TestView_PassesFormToAverager(t *testing.T) {
	m := new(MockAverager)
	m.On("Compute", mock.MatchedBy(func(r domain.TermRecord) bool {
		return r.Len() == 7
	}), &domain.PriorAcademicState{CumulativeAverage: 8.5, CreditTotal: 40}).
		Return(domain.Averages{Term: 10, Cumulative: 9}, nil)
	v := NewView(nil, m, nil)

	typeText(v, "8.5")
	press(v, "tab")
	typeText(v, "40")
	press(v, "enter")

	require.NoError(t, v.Err())
	assert.Equal(t, 9.0, v.Result().Cumulative)
	m.AssertExpectations(t)
}

func TestView_NilAverager(t *testing.T) {
	v := NewView(nil, nil, nil)

	press(v, "enter")

	require.Error(t, v.Err())
	assert.Contains(t, v.Err().Error(), "grade averager not available")
}

func TestView_WindowSize(t *testing.T) {
	v := NewView(nil, services.NewGradeAverager(), nil)

	v.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Equal(t, 100, v.width)
	assert.Equal(t, 30, v.height)
	assert.True(t, v.ready)
}
