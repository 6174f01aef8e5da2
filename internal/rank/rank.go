package rank

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/okravets/sytobook/internal/domain"
)

// Embedder generates a vector embedding for a piece of text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Document is the flattened view of a record the ranker scores.
// Fields carries the individual values literal matching compares
// against; Text is the combined form semantic matching embeds.
type Document struct {
	Key    string
	Text   string
	Fields []string
}

// Literal match scores.
const (
	exactScore     = 1.0
	substringScore = 0.6
)

// Rank orders documents against a query, best first. With a non-nil
// embedder it scores by cosine similarity of embeddings, normalized to
// [0,1]; any embedding failure falls back to literal matching for this
// call only. Ties keep the documents' input order, so identical inputs
// always produce identical output.
func Rank(ctx context.Context, query string, docs []Document, embedder Embedder) []domain.MatchCandidate {
	query = strings.TrimSpace(query)
	if query == "" || len(docs) == 0 {
		return nil
	}

	if embedder != nil {
		if out, err := rankSemantic(ctx, query, docs, embedder); err == nil {
			return out
		}
	}
	return rankLiteral(query, docs)
}

func rankSemantic(ctx context.Context, query string, docs []Document, embedder Embedder) ([]domain.MatchCandidate, error) {
	qv, err := embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make([]domain.MatchCandidate, 0, len(docs))
	for _, doc := range docs {
		dv, err := embedder.Embed(ctx, doc.Text)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.MatchCandidate{
			Key:      doc.Key,
			Score:    (Cosine(qv, dv) + 1) / 2,
			Strategy: domain.StrategySemantic,
		})
	}

	sortByScore(out)
	return out, nil
}

func rankLiteral(query string, docs []Document) []domain.MatchCandidate {
	q := strings.ToLower(query)

	var out []domain.MatchCandidate
	for _, doc := range docs {
		score, strategy := literalScore(q, doc.Fields)
		if score == 0 {
			continue
		}
		out = append(out, domain.MatchCandidate{Key: doc.Key, Score: score, Strategy: strategy})
	}

	sortByScore(out)
	return out
}

// literalScore compares a lowercased query against each field: exact
// equality scores 1.0, substring containment 0.6.
func literalScore(q string, fields []string) (float64, domain.Strategy) {
	best, strategy := 0.0, domain.StrategySubstring
	for _, f := range fields {
		f = strings.ToLower(f)
		switch {
		case f == q:
			return exactScore, domain.StrategyExact
		case strings.Contains(f, q):
			best = substringScore
		}
	}
	return best, strategy
}

func sortByScore(cands []domain.MatchCandidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Score > cands[j].Score
	})
}

// Cosine computes cosine similarity between two vectors, in [-1,1].
// Mismatched or zero vectors score 0.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
