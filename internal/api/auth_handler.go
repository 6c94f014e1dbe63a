package api

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"replog/workout-app/internal/domain"
	"replog/workout-app/internal/service"
)

const oauthStateCookie = "oauth_state"

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Response Structs ---

// UserResponse is the public profile shape.
type UserResponse struct {
	ID        string    `json:"id"`
	AuthID    string    `json:"authId"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// MapUserToResponse converts a domain.User to the response DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        user.ID.Hex(),
		AuthID:    user.AuthID,
		Email:     user.Email,
		Name:      user.Name,
		Image:     user.Image,
		CreatedAt: user.CreatedAt,
	}
}

// --- Handler Methods ---

// GoogleLogin redirects the browser to the provider's consent page. A
// random state value is set as a short-lived cookie and verified on the
// callback to block forged redirects.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to start sign-in")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, int((10 * time.Minute).Seconds()), "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.authService.AuthCodeURL(state))
}

// GoogleCallback completes the OAuth flow: it verifies the state,
// exchanges the code and returns an API token plus the user profile.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		abortWithError(c, http.StatusUnauthorized, "Invalid OAuth state")
		return
	}
	// The state cookie is single-use.
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		abortWithError(c, http.StatusBadRequest, "Missing authorization code")
		return
	}

	token, user, err := h.authService.HandleCallback(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrOAuthExchange) || errors.Is(err, service.ErrIdentityFetch) {
			abortWithError(c, http.StatusUnauthorized, "Sign-in failed: "+err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during sign-in")
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  MapUserToResponse(user),
	})
}

// Me returns the identity claims of the presented token.
func (h *AuthHandler) Me(c *gin.Context) {
	authID, err := getAuthIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authId": authID,
		"email":  c.GetString(ContextUserEmailKey),
		"name":   c.GetString(ContextUserNameKey),
	})
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
