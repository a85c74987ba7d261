package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cgpa-cli/internal/core/domain"
)

func TestFormatAverage(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{64.0 / 7.0, "9.14"},
		{184.0 / 24.0, "7.67"},
		{6, "6.00"},
		{10, "10.00"},
		{0, "0.00"},
		{8.125, "8.13"},
		{7.994, "7.99"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAverage(tt.in))
		})
	}
}

func TestFormatCredits(t *testing.T) {
	assert.Equal(t, "7", FormatCredits(7))
	assert.Equal(t, "4.5", FormatCredits(4.5))
	assert.Equal(t, "91.5", FormatCredits(91.5))
}

func TestLines(t *testing.T) {
	a := domain.Averages{Term: 6, Cumulative: 184.0 / 24.0}

	assert.Equal(t, "Your semester GPA is 6.00", TermLine(a))
	assert.Equal(t, "Your Cumulative GPA is 7.67", CumulativeLine(a))
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	a := domain.Averages{Term: 64.0 / 7.0, Cumulative: 64.0 / 7.0}

	require.NoError(t, WriteText(&buf, a))

	assert.Equal(t, "Your semester GPA is 9.14\nYour Cumulative GPA is 9.14\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	a := domain.Averages{Term: 6, Cumulative: 184.0 / 24.0, TermCredits: 4, TotalCredits: 24}

	require.NoError(t, WriteJSON(&buf, a, 1))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 6.0, got["term_gpa"])
	assert.Equal(t, 7.67, got["cumulative_gpa"])
	assert.Equal(t, 4.0, got["term_credits"])
	assert.Equal(t, 24.0, got["total_credits"])
	assert.Equal(t, 1.0, got["subjects"])
	assert.Contains(t, buf.String(), `"term_gpa": 6.00`)
}
