package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVectorRoundtrip(t *testing.T) {
	v := []float32{0.1, -2.5, 3.75, 0}
	require.Equal(t, v, decodeVector(encodeVector(v)))
	require.Empty(t, decodeVector(nil))
}

func TestCosineSimilarity(t *testing.T) {
	require.InDelta(t, 1.0, cosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-9)
	require.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	require.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	require.Zero(t, cosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}), "mismatched dims")
	require.Zero(t, cosineSimilarity(nil, nil))
}

func TestSearchOrdering(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	texts := []string{
		"the quick brown fox",
		"completely unrelated zebra text",
		"the quick brown fox jumps",
	}
	require.NoError(t, db.AddTexts(ctx, texts, nil))

	results, err := db.Search(ctx, "the quick brown fox", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.True(t, results[0].Score >= results[1].Score, "results must come best first")
	require.True(t, results[0].HasScore)

	count, err := db.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestAddTextsEmpty(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.AddTexts(context.Background(), nil, nil))
	count, err := db.Count(context.Background())
	require.NoError(t, err)
	require.Zero(t, count)
}
