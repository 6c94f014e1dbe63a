package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"replog/workout-app/internal/catalog"
	"replog/workout-app/internal/domain"
)

// --- Error Definitions ---
var (
	ErrMissingMuscleGroup = errors.New("muscle group is required")
	ErrCatalogUpstream    = errors.New("failed to fetch exercises from catalog")
)

// --- Service Interface ---

// CatalogService exposes the remote exercise catalog to the API.
type CatalogService interface {
	// SearchByMuscleGroup returns the first page of normalized
	// exercises for a muscle group tag.
	SearchByMuscleGroup(ctx context.Context, muscleGroup string) ([]domain.CatalogExercise, error)
	// BrowseMuscleGroup walks all result pages, up to maxPages.
	BrowseMuscleGroup(ctx context.Context, muscleGroup string, maxPages int) ([]domain.CatalogExercise, error)
}

// --- Service Implementation ---

type catalogService struct {
	client *catalog.Client
}

// NewCatalogService creates a new instance of catalogService.
func NewCatalogService(client *catalog.Client) CatalogService {
	return &catalogService{client: client}
}

func (s *catalogService) SearchByMuscleGroup(ctx context.Context, muscleGroup string) ([]domain.CatalogExercise, error) {
	muscle := strings.ToLower(strings.TrimSpace(muscleGroup))
	if muscle == "" {
		return nil, ErrMissingMuscleGroup
	}

	page, err := s.client.FetchByMuscle(ctx, muscle)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUpstream, err)
	}
	if page.Exercises == nil {
		return []domain.CatalogExercise{}, nil
	}
	return page.Exercises, nil
}

func (s *catalogService) BrowseMuscleGroup(ctx context.Context, muscleGroup string, maxPages int) ([]domain.CatalogExercise, error) {
	muscle := strings.ToLower(strings.TrimSpace(muscleGroup))
	if muscle == "" {
		return nil, ErrMissingMuscleGroup
	}
	if maxPages <= 0 {
		maxPages = 1
	}

	exercises, err := s.client.FetchAllPages(ctx, muscle, maxPages)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUpstream, err)
	}
	if exercises == nil {
		return []domain.CatalogExercise{}, nil
	}
	return exercises, nil
}
