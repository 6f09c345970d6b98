package session

import (
	"testing"

	"bundledit/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession() *Session {
	return New(2, types.Row{
		Index:       "2",
		FileType:    "dialogue",
		Source:      "Hello",
		Translation: "Привет",
	})
}

func TestNew(t *testing.T) {
	s := newTestSession()

	assert.Equal(t, 2, s.Position())
	assert.Equal(t, "Hello", s.Source())
	assert.Equal(t, "Привет", s.Working())
	assert.Equal(t, Open, s.State())
}

func TestCommit(t *testing.T) {
	s := newTestSession()

	require.NoError(t, s.SetWorking("Здравствуйте"))
	text, err := s.Commit()
	require.NoError(t, err)
	assert.Equal(t, "Здравствуйте", text)
	assert.Equal(t, Committed, s.State())
}

func TestDiscard(t *testing.T) {
	s := newTestSession()

	require.NoError(t, s.SetWorking("scratch"))
	require.NoError(t, s.Discard())
	assert.Equal(t, Discarded, s.State())
}

func TestCloneAndClear(t *testing.T) {
	s := newTestSession()

	require.NoError(t, s.Clone())
	assert.Equal(t, "Hello", s.Working())

	require.NoError(t, s.Clear())
	assert.Equal(t, "", s.Working())

	// The source snapshot never moves.
	assert.Equal(t, "Hello", s.Source())
}

func TestTerminalStatesRejectEverything(t *testing.T) {
	tests := []struct {
		name      string
		terminate func(*Session)
	}{
		{
			name:      "committed",
			terminate: func(s *Session) { _, _ = s.Commit() },
		},
		{
			name:      "discarded",
			terminate: func(s *Session) { _ = s.Discard() },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession()
			tt.terminate(s)

			assert.Error(t, s.SetWorking("x"))
			assert.Error(t, s.Clone())
			assert.Error(t, s.Clear())
			_, err := s.Commit()
			assert.Error(t, err)
			assert.Error(t, s.Discard())
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "open", Open.String())
	assert.Equal(t, "committed", Committed.String())
	assert.Equal(t, "discarded", Discarded.String())
	assert.Equal(t, "unknown", State(42).String())
}
