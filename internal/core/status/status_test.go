package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var t0 = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return t0.Add(time.Duration(minutes) * time.Minute)
}

func TestParseState(t *testing.T) {
	for _, s := range []string{"pending", "SUCCESS", " error ", "Failure"} {
		_, err := ParseState(s)
		assert.NoError(t, err, s)
	}

	_, err := ParseState("done")
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = ParseState("")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCurrent_LatestPostWins(t *testing.T) {
	statuses := []Status{
		{Context: "docs", State: StateSuccess, UpdatedAt: at(5)},
		{Context: "docker-testbot", State: StatePending, UpdatedAt: at(1)},
		{Context: "docs", State: StatePending, UpdatedAt: at(0)},
		{Context: "docker-testbot", State: StateFailure, UpdatedAt: at(9)},
	}

	state, ok := Current(statuses, "docs")
	require.True(t, ok)
	assert.Equal(t, StateSuccess, state)

	state, ok = Current(statuses, "docker-testbot")
	require.True(t, ok)
	assert.Equal(t, StateFailure, state)

	_, ok = Current(statuses, "coverage")
	assert.False(t, ok)
}

func TestCombined(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     State
		wantOK   bool
	}{
		{name: "no_statuses"},
		{
			name:     "all_success",
			statuses: []Status{{Context: "a", State: StateSuccess}, {Context: "b", State: StateSuccess}},
			want:     StateSuccess,
			wantOK:   true,
		},
		{
			name: "pending_beats_error",
			statuses: []Status{
				{Context: "a", State: StateError},
				{Context: "b", State: StatePending},
				{Context: "c", State: StateFailure},
			},
			want:   StatePending,
			wantOK: true,
		},
		{
			name: "error_beats_failure",
			statuses: []Status{
				{Context: "a", State: StateFailure},
				{Context: "b", State: StateError},
			},
			want:   StateError,
			wantOK: true,
		},
		{
			name: "superseded_pending_is_ignored",
			statuses: []Status{
				{Context: "a", State: StatePending, UpdatedAt: at(0)},
				{Context: "a", State: StateSuccess, UpdatedAt: at(1)},
			},
			want:   StateSuccess,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Combined(tt.statuses)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLatest_OrderIndependent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(t, "n")
		statuses := make([]Status, n)
		for i := range statuses {
			statuses[i] = Status{
				Context:   rapid.SampledFrom([]string{"docs", "tests", "lint"}).Draw(t, "context"),
				State:     rapid.SampledFrom(combinedOrder).Draw(t, "state"),
				UpdatedAt: at(i),
			}
		}
		shuffled := rapid.Permutation(statuses).Draw(t, "shuffled")

		assert.Equal(t, Latest(statuses), Latest(shuffled))
	})
}
