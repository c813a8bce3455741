package elasticsearch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Novip1906/join/internal/models"
	"github.com/Novip1906/join/pkg/logging"
)

type fakeCluster struct {
	mu          sync.Mutex
	indexExists bool
	requests    []string
	bodies      map[string]string
	hits        []int64
}

func (f *fakeCluster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	body, _ := io.ReadAll(r.Body)
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.bodies[r.Method+" "+r.URL.Path] = string(body)

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodHead && r.URL.Path == "/tasks":
		if !f.indexExists {
			w.WriteHeader(http.StatusNotFound)
		}
	case r.Method == http.MethodPut && r.URL.Path == "/tasks":
		f.indexExists = true
		_, _ = w.Write([]byte(`{"acknowledged":true}`))
	case r.URL.Path == "/tasks/_search":
		type hit struct {
			Source map[string]int64 `json:"_source"`
		}
		hits := []hit{}
		for _, id := range f.hits {
			hits = append(hits, hit{Source: map[string]int64{"id": id}})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"hits": map[string]any{"hits": hits}})
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	default:
		_, _ = w.Write([]byte(`{"result":"created"}`))
	}
}

func newTestClient(t *testing.T, cluster *fakeCluster) *Client {
	t.Helper()
	cluster.bodies = map[string]string{}
	srv := httptest.NewServer(cluster)
	t.Cleanup(srv.Close)

	c, err := NewClient([]string{srv.URL}, "tasks", logging.Discard())
	require.NoError(t, err)
	return c
}

func TestNewClientCreatesIndex(t *testing.T) {
	cluster := &fakeCluster{}
	newTestClient(t, cluster)

	assert.Equal(t, []string{"HEAD /tasks", "PUT /tasks"}, cluster.requests)
	assert.Contains(t, cluster.bodies["PUT /tasks"], `"epoch_millis"`)
	assert.Contains(t, cluster.bodies["PUT /tasks"], `"raw"`)
}

func TestNewClientKeepsExistingIndex(t *testing.T) {
	cluster := &fakeCluster{indexExists: true}
	newTestClient(t, cluster)

	assert.Equal(t, []string{"HEAD /tasks"}, cluster.requests)
}

func TestIndexAndSearch(t *testing.T) {
	cluster := &fakeCluster{hits: []int64{7, 3}}
	c := newTestClient(t, cluster)
	ctx := context.Background()

	task := &models.Task{Id: 7, Title: `Quote "me"`, Status: models.StatusDone, Prio: models.PriorityLow, Timestamp: 7}
	require.NoError(t, c.IndexTask(ctx, task))

	var doc taskDocument
	require.NoError(t, json.Unmarshal([]byte(cluster.bodies["PUT /tasks/_doc/7"]), &doc))
	assert.Equal(t, `Quote "me"`, doc.Title)
	assert.Equal(t, "done", doc.Status)

	ids, err := c.Search(ctx, " uo*")
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 3}, ids)

	var query struct {
		Query struct {
			Bool struct {
				Should []map[string]map[string]struct {
					Value           string `json:"value"`
					CaseInsensitive bool   `json:"case_insensitive"`
				} `json:"should"`
			} `json:"bool"`
		} `json:"query"`
	}
	require.NoError(t, json.Unmarshal([]byte(cluster.bodies["POST /tasks/_search"]), &query))
	require.Len(t, query.Query.Bool.Should, 2)
	title := query.Query.Bool.Should[0]["wildcard"]["title.raw"]
	assert.Equal(t, `*uo\**`, title.Value)
	assert.True(t, title.CaseInsensitive)
	assert.Contains(t, query.Query.Bool.Should[1]["wildcard"], "description.raw")

	assert.NoError(t, c.DeleteTask(ctx, 99))
}
