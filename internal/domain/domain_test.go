package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	cases := map[Status]string{
		StatusPending:  "pending",
		StatusUp:       "up",
		StatusDown:     "down",
		StatusAbnormal: "abnormal",
		Status(42):     "status(42)",
	}
	for s, want := range cases {
		assert.Equal(t, want, s.String())
	}
}

func TestOutcome_Up(t *testing.T) {
	assert.True(t, Outcome{Target: "1.1.1.1", Status: StatusUp}.Up())
	assert.False(t, Outcome{Target: "1.1.1.1", Status: StatusDown, Reason: errors.New("x")}.Up())
	assert.False(t, Outcome{Target: "1.1.1.1", Status: StatusAbnormal}.Up())
}

func TestParseMode(t *testing.T) {
	cases := []struct {
		in   string
		want Mode
	}{
		{"", ModeConcurrent},
		{"concurrent", ModeConcurrent},
		{" Sequential ", ModeSequential},
	}
	for _, c := range cases {
		got, err := ParseMode(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got)
	}

	_, err := ParseMode("parallel")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parallel")
}
