package services

import (
	"context"
	"sort"
	"strings"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/logger"
)

// TextFunc returns the text content of a file.
type TextFunc func(ctx context.Context, file domain.File) (string, error)

// LexicalRanker orders candidates into coarse buckets by how many core
// terms and whether the year occur in their text. It never calls the
// embedding service.
type LexicalRanker struct{}

// NewLexicalRanker creates a lexical pre-ranker.
func NewLexicalRanker() *LexicalRanker {
	return &LexicalRanker{}
}

// Rank extracts the text of every file and returns the files stably sorted
// by bucket, best first. Extracted text is kept on the returned files for
// the semantic stage. A file whose text cannot be extracted lands in
// domain.BucketUnscoreable.
func (r *LexicalRanker) Rank(
	ctx context.Context, files []domain.File, year string, coreTerms []string, textOf TextFunc,
) []domain.File {
	logger.Section("Lexical Ranking")

	terms := make([]string, 0, len(coreTerms))
	for _, t := range coreTerms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			terms = append(terms, t)
		}
	}

	type scored struct {
		bucket domain.LexicalBucket
		file   domain.File
	}
	ranked := make([]scored, 0, len(files))
	for _, f := range files {
		text, err := textOf(ctx, f)
		if err != nil {
			logger.Debug("No text for %q: %v", f.Name, err)
			ranked = append(ranked, scored{bucket: domain.BucketUnscoreable, file: f})
			continue
		}
		f.ExtractedText = text
		bucket := Bucket(text, year, terms)
		logger.Debug("%q -> %s", f.Name, bucket)
		ranked = append(ranked, scored{bucket: bucket, file: f})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].bucket < ranked[j].bucket
	})

	out := make([]domain.File, len(ranked))
	for i, s := range ranked {
		out[i] = s.file
	}
	return out
}

// Bucket scores text against lower-cased terms and a year.
// An empty term list counts as every term matched.
func Bucket(text, year string, terms []string) domain.LexicalBucket {
	lower := strings.ToLower(text)

	matched := 0
	for _, t := range terms {
		if strings.Contains(lower, strings.ToLower(t)) {
			matched++
		}
	}
	hasYear := year != "" && strings.Contains(lower, year)
	allTerms := matched == len(terms)

	switch {
	case allTerms && hasYear:
		return domain.BucketAllTermsAndYear
	case allTerms:
		return domain.BucketAllTerms
	case matched > 1 && hasYear:
		return domain.BucketSomeTermsAndYear
	case hasYear:
		return domain.BucketYearOnly
	default:
		return domain.BucketNoMatch
	}
}
