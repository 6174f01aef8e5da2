package command

import (
	"context"
	"errors"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/okravets/sytobook/internal/domain"
)

// ErrNoMatch means the input is not close enough to any valid command.
var ErrNoMatch = errors.New("no matching command")

// Resolve maps a raw user-typed token to one of the valid commands.
// An exact match wins immediately. Otherwise the candidate with the
// smallest Levenshtein distance is accepted when the distance is within
// max(1, len(raw)/3); ties go to the lexicographically smallest name.
func Resolve(raw string, valid []domain.Command) (domain.Command, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return "", ErrNoMatch
	}

	for _, c := range valid {
		if string(c) == raw {
			return c, nil
		}
	}

	var best domain.Command
	bestDist := -1
	for _, c := range valid {
		d := levenshtein.ComputeDistance(raw, string(c))
		if bestDist < 0 || d < bestDist || (d == bestDist && c < best) {
			best, bestDist = c, d
		}
	}

	if bestDist < 0 || bestDist > maxDistance(raw) {
		return "", ErrNoMatch
	}
	return best, nil
}

// maxDistance bounds accepted corrections relative to input length.
func maxDistance(raw string) int {
	if d := len(raw) / 3; d > 1 {
		return d
	}
	return 1
}

// Completer produces a best-effort text completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Resolver resolves typed tokens, optionally consulting a language
// model when edit distance alone cannot decide. A nil completer keeps
// resolution fully local.
type Resolver struct {
	completer Completer
}

// NewResolver creates a Resolver; completer may be nil
func NewResolver(completer Completer) *Resolver {
	return &Resolver{completer: completer}
}

// Resolve runs the local edit-distance pass first and only then asks
// the completer for a guess. A guess is accepted only if it names a
// valid command; completion failures degrade to ErrNoMatch.
func (r *Resolver) Resolve(ctx context.Context, raw string, valid []domain.Command) (domain.Command, error) {
	cmd, err := Resolve(raw, valid)
	if err == nil {
		return cmd, nil
	}
	if r == nil || r.completer == nil {
		return "", err
	}

	guess, cerr := r.completer.Complete(ctx, correctionPrompt(raw, valid))
	if cerr != nil {
		return "", ErrNoMatch
	}
	guess = strings.Trim(strings.TrimSpace(guess), "\"'")
	for _, c := range valid {
		if string(c) == guess {
			return c, nil
		}
	}
	return "", ErrNoMatch
}

func correctionPrompt(raw string, valid []domain.Command) string {
	var sb strings.Builder
	sb.WriteString("You are a CLI assistant that fixes mistyped commands. ")
	sb.WriteString("The user may write with typos.\n\n")
	sb.WriteString("Supported commands:\n")
	for _, c := range valid {
		sb.WriteString(string(c))
		sb.WriteString("\n")
	}
	sb.WriteString("\nMistyped input: ")
	sb.WriteString(raw)
	sb.WriteString("\n\nReturn ONLY the canonical command name, or an empty string if none fits.")
	return sb.String()
}
