package api

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"

	"replog/workout-app/internal/domain"
	"replog/workout-app/internal/service"
	"replog/workout-app/internal/session"
)

const testJWTSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Service fakes ---

type fakeAuthService struct {
	token string
	user  *domain.User
	err   error
}

func (f *fakeAuthService) AuthCodeURL(state string) string {
	return "https://accounts.example/consent?state=" + state
}

func (f *fakeAuthService) HandleCallback(ctx context.Context, code string) (string, *domain.User, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	return f.token, f.user, nil
}

func (f *fakeAuthService) GetJWTSecret() string { return testJWTSecret }

type fakeCatalogService struct {
	exercises []domain.CatalogExercise
	err       error
	lastQuery string
}

func (f *fakeCatalogService) SearchByMuscleGroup(ctx context.Context, muscleGroup string) ([]domain.CatalogExercise, error) {
	f.lastQuery = muscleGroup
	if f.err != nil {
		return nil, f.err
	}
	return f.exercises, nil
}

func (f *fakeCatalogService) BrowseMuscleGroup(ctx context.Context, muscleGroup string, maxPages int) ([]domain.CatalogExercise, error) {
	return f.SearchByMuscleGroup(ctx, muscleGroup)
}

type fakeWorkoutService struct {
	saveWorkout *domain.Workout
	saveWarning string
	saveErr     error
	lastInput   service.SaveWorkoutInput

	listResult []domain.WorkoutWithExercises
	listErr    error
	lastLimit  int
	lastOffset int
}

func (f *fakeWorkoutService) Save(ctx context.Context, input service.SaveWorkoutInput) (*domain.Workout, string, error) {
	f.lastInput = input
	if f.saveErr != nil {
		return nil, "", f.saveErr
	}
	return f.saveWorkout, f.saveWarning, nil
}

func (f *fakeWorkoutService) List(ctx context.Context, userID string, limit, offset int) ([]domain.WorkoutWithExercises, int, error) {
	f.lastLimit, f.lastOffset = limit, offset
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.listResult, len(f.listResult), nil
}

// --- Router + request helpers ---

// newTestRouter wires the real routes with fake services. The session
// service is the real implementation on top of the fake workout
// service, so session endpoint tests drive the actual state machine.
func newTestRouter(auth *fakeAuthService, cat *fakeCatalogService, workouts *fakeWorkoutService) *gin.Engine {
	router := gin.New()
	sessions := service.NewSessionService(session.NewManager(), workouts)
	SetupRoutes(router, testJWTSecret, auth, cat, workouts, sessions)
	return router
}

func newToken(t *testing.T, authID string) string {
	t.Helper()
	claims := jwtClaims{
		AuthID: authID,
		Email:  authID + "@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func performRequest(router *gin.Engine, method, path, token string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}
