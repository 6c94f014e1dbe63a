// Package catalog is a thin client for the remote exercise database.
// It is a pass-through/normalization adapter: no caching, no retries;
// upstream failures surface directly to the caller.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"replog/workout-app/internal/config"
	"replog/workout-app/internal/domain"
)

// Page is one page of normalized catalog results. NextPage is the
// opaque upstream URL for the following page, empty when exhausted.
type Page struct {
	Exercises []domain.CatalogExercise
	NextPage  string
}

// upstreamExercise mirrors the fields we read from the remote API.
// The muscle classification arrives under different names depending on
// the endpoint ("bodyParts" vs "targetMuscles"); normalization picks
// one canonical value.
type upstreamExercise struct {
	Name          string   `json:"name"`
	BodyParts     []string `json:"bodyParts"`
	TargetMuscles []string `json:"targetMuscles"`
	GifURL        string   `json:"gifUrl"`
}

type upstreamResponse struct {
	Success  bool               `json:"success"`
	Data     []upstreamExercise `json:"data"`
	Error    string             `json:"error"`
	Metadata struct {
		NextPage string `json:"nextPage"`
	} `json:"metadata"`
}

// Client queries the remote exercise catalog by muscle group.
type Client struct {
	httpClient *http.Client
	baseURL    string
	pageLimit  int
}

// NewClient creates a catalog client from configuration.
func NewClient(cfg config.CatalogConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		pageLimit:  cfg.PageLimit,
	}
}

// FetchByMuscle retrieves the first page of exercises for a muscle
// group tag.
func (c *Client) FetchByMuscle(ctx context.Context, muscle string) (Page, error) {
	pageURL := fmt.Sprintf("%s/muscles/%s/exercises?offset=0&limit=%d",
		c.baseURL, url.PathEscape(muscle), c.pageLimit)
	return c.fetch(ctx, pageURL, muscle)
}

// FetchPage follows an upstream-provided nextPage URL.
func (c *Client) FetchPage(ctx context.Context, pageURL, muscle string) (Page, error) {
	return c.fetch(ctx, pageURL, muscle)
}

// FetchAllPages walks nextPage links starting from the first page for
// the muscle group, up to maxPages pages, and returns the combined
// normalized results.
func (c *Client) FetchAllPages(ctx context.Context, muscle string, maxPages int) ([]domain.CatalogExercise, error) {
	var all []domain.CatalogExercise

	page, err := c.FetchByMuscle(ctx, muscle)
	if err != nil {
		return nil, err
	}
	all = append(all, page.Exercises...)

	for fetched := 1; page.NextPage != "" && fetched < maxPages; fetched++ {
		page, err = c.FetchPage(ctx, page.NextPage, muscle)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Exercises...)
	}
	return all, nil
}

func (c *Client) fetch(ctx context.Context, pageURL, muscle string) (Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Page{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded upstreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Page{}, fmt.Errorf("catalog response decode failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !decoded.Success {
		if decoded.Error != "" {
			return Page{}, fmt.Errorf("catalog returned status %d: %s", resp.StatusCode, decoded.Error)
		}
		return Page{}, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	page := Page{NextPage: decoded.Metadata.NextPage}
	for _, ex := range decoded.Data {
		page.Exercises = append(page.Exercises, normalize(ex, muscle))
	}
	return page, nil
}

// normalize maps the heterogeneous upstream muscle fields to one
// canonical muscle_group: first bodyPart, else first targetMuscle,
// else the tag that was queried.
func normalize(ex upstreamExercise, muscle string) domain.CatalogExercise {
	group := muscle
	if len(ex.BodyParts) > 0 {
		group = ex.BodyParts[0]
	} else if len(ex.TargetMuscles) > 0 {
		group = ex.TargetMuscles[0]
	}
	return domain.CatalogExercise{
		Name:        ex.Name,
		MuscleGroup: group,
		GifURL:      ex.GifURL,
	}
}
