package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/ecommerce_backend/internal/models"
)

type esRequest struct {
	Method string
	Path   string
	Body   string
}

func newFakeES(t *testing.T, handle func(w http.ResponseWriter, r *http.Request)) (*ES, *[]esRequest) {
	t.Helper()

	var (
		mu   sync.Mutex
		reqs []esRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, esRequest{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		mu.Unlock()

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handle(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := NewES(Config{URL: srv.URL, Index: "products"})
	require.NoError(t, err)
	return es, &reqs
}

func TestCalculate(t *testing.T) {
	from, limit := Calculate(0, 0)
	assert.Equal(t, 0, from)
	assert.Equal(t, 10, limit)

	from, limit = Calculate(3, 20)
	assert.Equal(t, 40, from)
	assert.Equal(t, 20, limit)

	_, limit = Calculate(1, 500)
	assert.Equal(t, 10, limit)
}

func TestES_IndexAndDelete(t *testing.T) {
	es, reqs := newFakeES(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"result":"not_found"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	ctx := context.Background()
	require.NoError(t, es.IndexProduct(ctx, models.Product{ProductID: 7, Name: "Striped Blouse", Category: "women"}))
	require.NoError(t, es.DeleteProduct(ctx, 7))

	require.Len(t, *reqs, 2)
	assert.Equal(t, "/products/_doc/7", (*reqs)[0].Path)
	assert.Contains(t, (*reqs)[0].Body, `"name":"Striped Blouse"`)
	assert.Equal(t, http.MethodDelete, (*reqs)[1].Method)
	assert.Equal(t, "/products/_doc/7", (*reqs)[1].Path)
}

func TestES_Search(t *testing.T) {
	es, reqs := newFakeES(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hits":{"total":{"value":1},"hits":[{"_source":{"id":3,"name":"Blouse","category":"women"}}]}}`))
	})

	total, items, err := es.Search(context.Background(), "blouse", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].ProductID)
	assert.Equal(t, "Blouse", items[0].Name)

	require.Len(t, *reqs, 1)
	assert.True(t, strings.HasSuffix((*reqs)[0].Path, "/_search"))

	var q map[string]any
	require.NoError(t, json.Unmarshal([]byte((*reqs)[0].Body), &q))
	assert.EqualValues(t, 10, q["size"])
}

func TestES_SearchEmptyQuery(t *testing.T) {
	es, reqs := newFakeES(t, func(w http.ResponseWriter, r *http.Request) {})

	total, items, err := es.Search(context.Background(), "   ", 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
	assert.Empty(t, *reqs)
}

func TestES_ErrorStatus(t *testing.T) {
	es, _ := newFakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	})

	err := es.IndexProduct(context.Background(), models.Product{ProductID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestNoop(t *testing.T) {
	var idx Index = Noop{}
	require.NoError(t, idx.IndexProduct(context.Background(), models.Product{}))
	require.NoError(t, idx.DeleteProduct(context.Background(), 1))
	total, items, err := idx.Search(context.Background(), "x", 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, items)
}
