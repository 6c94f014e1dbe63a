package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"replog/workout-app/internal/config"
	"replog/workout-app/internal/domain"
	"replog/workout-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrOAuthExchange   = errors.New("failed to exchange authorization code")
	ErrIdentityFetch   = errors.New("failed to fetch identity claims from provider")
	ErrTokenGeneration = errors.New("failed to generate authentication token")
)

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// --- Service Interface ---

// AuthService delegates identity to the external OAuth provider and
// mints API tokens for authenticated users.
type AuthService interface {
	// AuthCodeURL returns the provider consent URL for the given
	// anti-forgery state.
	AuthCodeURL(state string) string
	// HandleCallback exchanges the authorization code, mirrors the
	// provider's identity claims into the user store and returns an API
	// token plus the user profile.
	HandleCallback(ctx context.Context, code string) (token string, user *domain.User, err error)
	GetJWTSecret() string
}

// identityClaims is the subset of the provider's userinfo payload we
// care about.
type identityClaims struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// --- Service Implementation ---

type authService struct {
	userRepo      repository.UserRepository
	oauthConfig   *oauth2.Config
	userinfoURL   string
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, googleCfg config.GoogleConfig, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 24 * time.Hour
	}
	return &authService{
		userRepo: userRepo,
		oauthConfig: &oauth2.Config{
			ClientID:     googleCfg.ClientID,
			ClientSecret: googleCfg.ClientSecret,
			RedirectURL:  googleCfg.RedirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		},
		userinfoURL:   googleUserinfoURL,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (s *authService) AuthCodeURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state)
}

// HandleCallback completes the sign-in flow. A failed user upsert is
// logged and swallowed: the store being down must never block sign-in.
func (s *authService) HandleCallback(ctx context.Context, code string) (string, *domain.User, error) {
	oauthToken, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrOAuthExchange, err)
	}

	claims, err := s.fetchIdentity(ctx, oauthToken)
	if err != nil {
		return "", nil, err
	}

	user := &domain.User{
		AuthID: claims.Sub,
		Email:  claims.Email,
		Name:   claims.Name,
		Image:  claims.Picture,
	}

	saved, err := s.userRepo.Upsert(ctx, user)
	if err != nil {
		log.Printf("ERROR: Failed to upsert user %s after sign-in: %v", user.AuthID, err)
		// Continue with the claims-built profile; sign-in still succeeds.
	} else {
		user = saved
	}

	apiToken, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}
	return apiToken, user, nil
}

func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}

// fetchIdentity retrieves the provider's identity claims using the
// freshly exchanged OAuth token.
func (s *authService) fetchIdentity(ctx context.Context, token *oauth2.Token) (*identityClaims, error) {
	client := s.oauthConfig.Client(ctx, token)
	resp, err := client.Get(s.userinfoURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdentityFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: provider returned status %d", ErrIdentityFetch, resp.StatusCode)
	}

	var claims identityClaims
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdentityFetch, err)
	}
	if claims.Sub == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrIdentityFetch)
	}
	return &claims, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	AuthID string `json:"uid"` // Identity provider subject id
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		AuthID: user.AuthID,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
