package command

import (
	"context"
	"errors"
	"testing"

	"github.com/okravets/sytobook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_ExactMatchIsFixedPoint(t *testing.T) {
	for _, set := range [][]domain.Command{domain.ContactCommands(), domain.NoteCommands()} {
		for _, c := range set {
			got, err := Resolve(string(c), set)
			require.NoError(t, err)
			assert.Equal(t, c, got)
		}
	}
}

func TestResolve_SingleTypo(t *testing.T) {
	tests := []struct {
		input string
		want  domain.Command
	}{
		{"serch", domain.CmdSearch},
		{"ad", domain.CmdAdd},
		{"dadd", domain.CmdAdd},
		{"delte", domain.CmdDelete},
		{"phon", domain.CmdPhone},
	}
	for _, tt := range tests {
		got, err := Resolve(tt.input, domain.ContactCommands())
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestResolve_CaseInsensitive(t *testing.T) {
	got, err := Resolve("  SEARCH ", domain.ContactCommands())
	require.NoError(t, err)
	assert.Equal(t, domain.CmdSearch, got)
}

func TestResolve_BeyondThreshold(t *testing.T) {
	for _, input := range []string{"xyzzyplugh", "daddy", ""} {
		_, err := Resolve(input, domain.ContactCommands())
		assert.ErrorIs(t, err, ErrNoMatch, "input %q", input)
	}
}

func TestResolve_TieBreakLexicographic(t *testing.T) {
	// "ald" is distance 1 from both "add" and "all".
	got, err := Resolve("ald", []domain.Command{domain.CmdAll, domain.CmdAdd})
	require.NoError(t, err)
	assert.Equal(t, domain.CmdAdd, got)
}

func TestResolve_ThresholdScalesWithLength(t *testing.T) {
	// Transposed letters cost two edits, within max(1, 6/3) = 2.
	got, err := Resolve("saerch", domain.ContactCommands())
	require.NoError(t, err)
	assert.Equal(t, domain.CmdSearch, got)
}

type stubCompleter struct {
	answer string
	err    error
	called bool
}

func (s *stubCompleter) Complete(_ context.Context, _ string) (string, error) {
	s.called = true
	return s.answer, s.err
}

func TestResolver_LocalPassWinsWithoutBackend(t *testing.T) {
	stub := &stubCompleter{answer: "delete"}
	r := NewResolver(stub)

	got, err := r.Resolve(context.Background(), "serch", domain.ContactCommands())
	require.NoError(t, err)
	assert.Equal(t, domain.CmdSearch, got)
	assert.False(t, stub.called, "completer must not run when edit distance decides")
}

func TestResolver_BackendGuessAccepted(t *testing.T) {
	r := NewResolver(&stubCompleter{answer: "search"})

	got, err := r.Resolve(context.Background(), "find", domain.ContactCommands())
	require.NoError(t, err)
	assert.Equal(t, domain.CmdSearch, got)
}

func TestResolver_BackendGuessQuoted(t *testing.T) {
	r := NewResolver(&stubCompleter{answer: " \"search\" "})

	got, err := r.Resolve(context.Background(), "find", domain.ContactCommands())
	require.NoError(t, err)
	assert.Equal(t, domain.CmdSearch, got)
}

func TestResolver_InvalidGuessRejected(t *testing.T) {
	r := NewResolver(&stubCompleter{answer: "frobnicate"})

	_, err := r.Resolve(context.Background(), "find", domain.ContactCommands())
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestResolver_BackendFailureDegrades(t *testing.T) {
	r := NewResolver(&stubCompleter{err: errors.New("timeout")})

	_, err := r.Resolve(context.Background(), "find", domain.ContactCommands())
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestResolver_NilCompleter(t *testing.T) {
	r := NewResolver(nil)

	_, err := r.Resolve(context.Background(), "find", domain.ContactCommands())
	assert.ErrorIs(t, err, ErrNoMatch)
}
