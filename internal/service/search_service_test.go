package service

import (
	"encoding/json"
	"testing"

	"github.com/meilisearch/meilisearch-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHits(t *testing.T) {
	raw := []meilisearch.Hit{
		{
			"id":         json.RawMessage(`"thr_1"`),
			"title":      json.RawMessage(`"مراقبت از بیمار"`),
			"view_count": json.RawMessage(`42`),
		},
		{
			"id":     json.RawMessage(`"thr_2"`),
			"broken": json.RawMessage(`{not json`),
		},
	}

	hits := decodeHits(raw)
	require.Len(t, hits, 2)

	assert.Equal(t, "thr_1", hits[0]["id"])
	assert.Equal(t, "مراقبت از بیمار", hits[0]["title"])
	assert.Equal(t, float64(42), hits[0]["view_count"])

	// undecodable fields are dropped, the hit itself survives
	assert.Equal(t, "thr_2", hits[1]["id"])
	assert.NotContains(t, hits[1], "broken")
}

func TestSearchThreadsWithoutClient(t *testing.T) {
	svc := NewSearchService(nil)

	hits, err := svc.SearchThreads("پرستار", "", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
