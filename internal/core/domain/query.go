package domain

// QueryPlan is a user query split into its parts.
// It is immutable once produced.
type QueryPlan struct {
	// Year is the first 1900-2099 year token, or empty when absent.
	Year string

	// CoreIntent is the query with the year token removed.
	CoreIntent string

	// Variants are progressively narrower rephrasings of CoreIntent,
	// deduplicated, in the order they should be tried.
	Variants []string
}

// HasYear returns true if a year token was found.
func (p QueryPlan) HasYear() bool {
	return p.Year != ""
}

// LexicalBucket is the coarse relevance score of the lexical pre-ranker.
// Lower is better.
type LexicalBucket int

// Lexical buckets, best first.
const (
	// BucketAllTermsAndYear means every core term and the year matched.
	BucketAllTermsAndYear LexicalBucket = iota

	// BucketAllTerms means every core term matched but not the year.
	BucketAllTerms

	// BucketSomeTermsAndYear means more than one term and the year matched.
	BucketSomeTermsAndYear

	// BucketYearOnly means only the year matched.
	BucketYearOnly

	// BucketNoMatch means nothing useful matched.
	BucketNoMatch

	// BucketUnscoreable means the text could not be extracted.
	BucketUnscoreable
)

// String returns a short label for the bucket.
func (b LexicalBucket) String() string {
	switch b {
	case BucketAllTermsAndYear:
		return "all-terms+year"
	case BucketAllTerms:
		return "all-terms"
	case BucketSomeTermsAndYear:
		return "some-terms+year"
	case BucketYearOnly:
		return "year-only"
	case BucketNoMatch:
		return "no-match"
	case BucketUnscoreable:
		return "unscoreable"
	default:
		return unknownDescription
	}
}
