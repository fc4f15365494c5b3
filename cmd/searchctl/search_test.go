package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/notion-blog/internal/domain/search"
	"github.com/khoahotran/notion-blog/pkg/searchclient"
)

func TestRunSearch_RepeatUsesMemoizedResults(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, searchclient.DefaultPath, r.URL.Path)
		res := search.EmptySearchResults()
		res.Results = append(res.Results, search.SearchResult{
			ID:        "page-1",
			Score:     2,
			Highlight: search.Highlight{Text: "hello <gzkNfoUU>world</gzkNfoUU>"},
		})
		res.Total = 1
		_ = json.NewEncoder(w).Encode(res)
	}))
	defer srv.Close()

	var out bytes.Buffer
	client := searchclient.NewForBaseURL(srv.URL)
	err := runSearch(context.Background(), &out, client, searchclient.SearchParams{Query: "hello"}, 3, false)

	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
	assert.Contains(t, out.String(), "page-1")
	assert.Contains(t, out.String(), "run 3 took")
}

func TestRunSearch_JSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(search.EmptySearchResults())
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := runSearch(context.Background(), &out, searchclient.NewForBaseURL(srv.URL), searchclient.SearchParams{Query: "x"}, 1, true)
	require.NoError(t, err)

	var got search.SearchResults
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 0, got.Total)
}

func TestRunSearch_PropagatesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Notion authentication failed"}`))
	}))
	defer srv.Close()

	err := runSearch(context.Background(), &bytes.Buffer{}, searchclient.NewForBaseURL(srv.URL), searchclient.SearchParams{Query: "x"}, 1, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Notion authentication failed")
}
