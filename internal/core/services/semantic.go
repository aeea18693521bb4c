package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driven"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/logger"
)

const (
	// minRankableChars is the fewest non-whitespace characters a text needs to be embedded.
	minRankableChars = 5

	// maxEmbedChars truncates each text before embedding.
	maxEmbedChars = 2000
)

// SemanticRanker orders files by embedding similarity to the query.
type SemanticRanker struct {
	embedder driven.EmbeddingService
}

// NewSemanticRanker creates a semantic ranker. embedder may be nil, in
// which case Rank only filters.
func NewSemanticRanker(embedder driven.EmbeddingService) *SemanticRanker {
	return &SemanticRanker{embedder: embedder}
}

// Rank scores files against the query and returns them best first,
// truncated to topK when topK > 0.
//
// Each file is represented by its extracted text, falling back to its name;
// files with no usable text are dropped. When embedding fails every usable
// file is returned in its incoming order without scores and topK is not
// applied.
func (r *SemanticRanker) Rank(ctx context.Context, query string, files []domain.File, topK int) []domain.File {
	logger.Section("Semantic Ranking")

	inputs := make([]string, 0, len(files))
	kept := make([]domain.File, 0, len(files))
	for _, f := range files {
		text := rankableText(f)
		if text == "" {
			logger.Debug("Skipping %q: no usable text", f.Name)
			continue
		}
		inputs = append(inputs, truncateRunes(text, maxEmbedChars))
		kept = append(kept, f)
	}

	if len(kept) == 0 {
		logger.Debug("No rankable files")
		return []domain.File{}
	}
	if r.embedder == nil {
		logger.Debug("No embedding service, keeping order")
		return kept
	}

	scores, err := r.score(ctx, query, inputs)
	if err != nil {
		logger.Warn("Semantic ranking skipped: %v", err)
		return kept
	}

	for i := range kept {
		kept[i].SetScore(scores[i])
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return *kept[i].Score > *kept[j].Score
	})

	logger.Debug("Ranked %d files", len(kept))
	return limit(kept, topK)
}

func (r *SemanticRanker) score(ctx context.Context, query string, inputs []string) ([]float64, error) {
	queryVec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %w", domain.ErrEmbeddingUnavailable, err)
	}

	vectors, err := r.embedder.EmbedBatch(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("%w: batch: %w", domain.ErrEmbeddingUnavailable, err)
	}
	if len(vectors) != len(inputs) {
		return nil, fmt.Errorf("%w: got %d vectors for %d inputs",
			domain.ErrEmbeddingUnavailable, len(vectors), len(inputs))
	}

	scores := make([]float64, len(vectors))
	for i, v := range vectors {
		sim, err := CosineSimilarity(queryVec, v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
		}
		scores[i] = sim
	}
	return scores, nil
}

// CosineSimilarity returns the cosine of the angle between two vectors,
// in [-1, 1]. A zero vector scores 0.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector dimension mismatch: %d != %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("empty vectors")
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return math.Max(-1, math.Min(1, sim)), nil
}

// rankableText picks the extracted text or the name, whichever first has
// enough content. Returns empty when neither does.
func rankableText(f domain.File) string {
	for _, candidate := range []string{f.ExtractedText, f.Name} {
		if countNonSpace(candidate) >= minRankableChars {
			return candidate
		}
	}
	return ""
}

func countNonSpace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.ToValidUTF8(string(runes[:n]), "")
}

func limit(files []domain.File, topK int) []domain.File {
	if topK > 0 && len(files) > topK {
		return files[:topK]
	}
	return files
}
