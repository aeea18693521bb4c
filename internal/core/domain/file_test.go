package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnlyFiles_DropsFolders(t *testing.T) {
	items := []File{
		{ID: "1", Name: "policy.docx"},
		{ID: "2", Name: "HR", IsFolder: true},
		{ID: "3", Name: "handbook.pdf"},
	}

	files := OnlyFiles(items)

	require.Len(t, files, 2)
	assert.Equal(t, "1", files[0].ID)
	assert.Equal(t, "3", files[1].ID)
}

func TestOnlyFiles_Empty(t *testing.T) {
	assert.Empty(t, OnlyFiles(nil))
}

func TestTagOrigin(t *testing.T) {
	items := []File{{ID: "a"}, {ID: "b", Origin: "other"}}

	tagged := TagOrigin(items, "site-1")

	for _, f := range tagged {
		assert.Equal(t, "site-1", f.Origin)
	}
}

func TestFile_IsPersonal(t *testing.T) {
	assert.True(t, (&File{Origin: OriginPersonal}).IsPersonal())
	assert.True(t, (&File{}).IsPersonal())
	assert.False(t, (&File{Origin: "site-1"}).IsPersonal())
}

func TestFile_SetScore(t *testing.T) {
	f := File{}
	assert.Nil(t, f.Score)

	f.SetScore(0.75)

	require.NotNil(t, f.Score)
	assert.InDelta(t, 0.75, *f.Score, 1e-9)
}

func TestSession_Renew(t *testing.T) {
	s := NewSession("acct", "old")
	assert.Equal(t, "Bearer old", s.AuthorizationHeader())

	s.Renew("new")

	assert.Equal(t, "new", s.Token())
	assert.Equal(t, "Bearer new", s.AuthorizationHeader())
	assert.Equal(t, "acct", s.AccountID)
}

func TestLexicalBucket_Ordering(t *testing.T) {
	assert.Less(t, int(BucketAllTermsAndYear), int(BucketAllTerms))
	assert.Less(t, int(BucketAllTerms), int(BucketSomeTermsAndYear))
	assert.Less(t, int(BucketSomeTermsAndYear), int(BucketYearOnly))
	assert.Less(t, int(BucketYearOnly), int(BucketNoMatch))
	assert.Less(t, int(BucketNoMatch), int(BucketUnscoreable))
	assert.Equal(t, 5, int(BucketUnscoreable))
	assert.Equal(t, "year-only", BucketYearOnly.String())
	assert.Equal(t, unknownDescription, LexicalBucket(42).String())
}

func TestIntentKind_IsValid(t *testing.T) {
	assert.True(t, IntentFileSearch.IsValid())
	assert.True(t, IntentGeneralResponse.IsValid())
	assert.False(t, IntentKind("chat").IsValid())
	assert.Equal(t, IntentGeneralResponse, GeneralIntent().Kind)
}
