package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"replog/workout-app/internal/catalog"
	"replog/workout-app/internal/config"
)

func newCatalogServiceForTest(baseURL string) CatalogService {
	return NewCatalogService(catalog.NewClient(config.CatalogConfig{
		BaseURL:   baseURL,
		Timeout:   2 * time.Second,
		PageLimit: 100,
	}))
}

func TestSearchByMuscleGroupLowercasesTag(t *testing.T) {
	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		fmt.Fprint(w, `{"success": true, "data": [{"name": "Bench Press", "bodyParts": ["chest"]}]}`)
	}))
	defer server.Close()

	svc := newCatalogServiceForTest(server.URL)
	exercises, err := svc.SearchByMuscleGroup(context.Background(), "  Chest ")
	require.NoError(t, err)
	assert.Equal(t, "/muscles/chest/exercises", requestedPath)
	require.Len(t, exercises, 1)
	assert.Equal(t, "Bench Press", exercises[0].Name)
}

func TestSearchByMuscleGroupEmptyTag(t *testing.T) {
	svc := newCatalogServiceForTest("http://unused.invalid")

	_, err := svc.SearchByMuscleGroup(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrMissingMuscleGroup)
}

func TestSearchByMuscleGroupWrapsUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success": false, "error": "db offline"}`)
	}))
	defer server.Close()

	svc := newCatalogServiceForTest(server.URL)
	_, err := svc.SearchByMuscleGroup(context.Background(), "back")
	assert.ErrorIs(t, err, ErrCatalogUpstream)
}

func TestSearchByMuscleGroupEmptyResultIsNotNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": true, "data": []}`)
	}))
	defer server.Close()

	svc := newCatalogServiceForTest(server.URL)
	exercises, err := svc.SearchByMuscleGroup(context.Background(), "calves")
	require.NoError(t, err)
	assert.NotNil(t, exercises)
	assert.Empty(t, exercises)
}
