package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"replog/workout-app/internal/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.CatalogConfig{
		BaseURL:   baseURL,
		Timeout:   2 * time.Second,
		PageLimit: 10,
	})
}

func TestFetchByMuscleNormalizesUpstreamFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/muscles/chest/exercises", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"success": true,
			"data": [
				{"name": "Bench Press", "bodyParts": ["chest"], "targetMuscles": ["pectorals"], "gifUrl": "https://cdn.example/bench.gif"},
				{"name": "Cable Fly", "targetMuscles": ["pectorals"]},
				{"name": "Mystery Move"}
			]
		}`)
	}))
	defer server.Close()

	page, err := newTestClient(server.URL).FetchByMuscle(context.Background(), "chest")
	require.NoError(t, err)
	require.Len(t, page.Exercises, 3)

	// bodyParts wins, then targetMuscles, then the queried tag.
	assert.Equal(t, "chest", page.Exercises[0].MuscleGroup)
	assert.Equal(t, "https://cdn.example/bench.gif", page.Exercises[0].GifURL)
	assert.Equal(t, "pectorals", page.Exercises[1].MuscleGroup)
	assert.Equal(t, "", page.Exercises[1].GifURL)
	assert.Equal(t, "chest", page.Exercises[2].MuscleGroup)

	assert.Empty(t, page.NextPage)
}

func TestFetchByMuscleUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, `{"success": false, "error": "upstream exploded"}`)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchByMuscle(context.Background(), "back")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream exploded")
}

func TestFetchByMuscleRejectsUnsuccessfulBody(t *testing.T) {
	// 200 with success=false still counts as an upstream failure.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": false, "data": []}`)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchByMuscle(context.Background(), "back")
	assert.Error(t, err)
}

func TestFetchAllPagesFollowsNextPageLinks(t *testing.T) {
	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/muscles/legs/exercises", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"success": true,
			"data": [{"name": "Squat", "targetMuscles": ["quads"]}],
			"metadata": {"nextPage": "%s/page2"}
		}`, server.URL)
	})
	mux.HandleFunc("/page2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"success": true,
			"data": [{"name": "Lunge", "targetMuscles": ["quads"]}],
			"metadata": {"nextPage": "%s/page3"}
		}`, server.URL)
	})
	mux.HandleFunc("/page3", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": true, "data": [{"name": "Leg Press"}]}`)
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	exercises, err := newTestClient(server.URL).FetchAllPages(context.Background(), "legs", 10)
	require.NoError(t, err)
	require.Len(t, exercises, 3)
	assert.Equal(t, "Squat", exercises[0].Name)
	assert.Equal(t, "Lunge", exercises[1].Name)
	// Last page carries no muscle hints; the queried tag fills in.
	assert.Equal(t, "legs", exercises[2].MuscleGroup)
}

func TestFetchAllPagesStopsAtMaxPages(t *testing.T) {
	var server *httptest.Server
	var hits int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprintf(w, `{
			"success": true,
			"data": [{"name": "Curl %d"}],
			"metadata": {"nextPage": "%s/more"}
		}`, hits, server.URL)
	})
	server = httptest.NewServer(handler)
	defer server.Close()

	exercises, err := newTestClient(server.URL).FetchAllPages(context.Background(), "biceps", 3)
	require.NoError(t, err)
	assert.Len(t, exercises, 3)
	assert.Equal(t, 3, hits, "pagination must stop at maxPages even with more links")
}
