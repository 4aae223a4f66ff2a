package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"nutrition-app/internal/domain/plans"
	"nutrition-app/internal/domain/users"
)

const (
	googleIssuer    = "https://accounts.google.com"
	stateCookieName = "oauth_state"
)

type GoogleConfig struct {
	ClientID         string
	ClientSecret     string
	RedirectURL      string
	FrontendRedirect string
}

// IDTokenVerifier checks a raw Google ID token and returns its claims.
type IDTokenVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*GoogleClaims, error)
}

type GoogleClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

type GoogleHandler struct {
	*Handler
	oauth    *oauth2.Config
	verifier IDTokenVerifier
	redirect string
}

func NewGoogleHandler(h *Handler, cfg GoogleConfig) *GoogleHandler {
	return &GoogleHandler{
		Handler: h,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		verifier: &oidcVerifier{clientID: cfg.ClientID},
		redirect: cfg.FrontendRedirect,
	}
}

// oidcVerifier discovers Google's keys on first successful use.
type oidcVerifier struct {
	clientID string
	mu       sync.Mutex
	verifier *oidc.IDTokenVerifier
}

func (v *oidcVerifier) get(ctx context.Context) (*oidc.IDTokenVerifier, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.verifier != nil {
		return v.verifier, nil
	}
	provider, err := oidc.NewProvider(context.WithoutCancel(ctx), googleIssuer)
	if err != nil {
		return nil, err
	}
	v.verifier = provider.Verifier(&oidc.Config{ClientID: v.clientID})
	return v.verifier, nil
}

func (v *oidcVerifier) Verify(ctx context.Context, rawIDToken string) (*GoogleClaims, error) {
	verifier, err := v.get(ctx)
	if err != nil {
		return nil, errors.New("failed to init google oidc provider")
	}

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.New("invalid id_token")
	}

	var claims GoogleClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.New("failed to decode token claims")
	}
	if claims.Email == "" || claims.Sub == "" {
		return nil, errors.New("token missing required claims")
	}
	return &claims, nil
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GET /auth/google
func (g *GoogleHandler) Start(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate state"})
		return
	}

	c.SetCookie(stateCookieName, state, 300, "/", "", c.Request.TLS != nil, true)
	c.Redirect(http.StatusFound, g.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline))
}

// GET /auth/google/callback
func (g *GoogleHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()

	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code/state"})
		return
	}

	cookieState, err := c.Cookie(stateCookieName)
	if err != nil || cookieState != state {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state"})
		return
	}

	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "failed to exchange code"})
		return
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing id_token"})
		return
	}

	claims, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	user, err := g.findOrCreateGoogleUser(ctx, claims)
	if err != nil {
		g.logger.ErrorContext(ctx, "google sign-in failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	tokenString, err := g.issue(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create token"})
		return
	}

	if g.redirect == "" {
		c.JSON(http.StatusOK, gin.H{"token": tokenString})
		return
	}
	c.Redirect(http.StatusFound, g.redirect+"?token="+tokenString)
}

func (g *GoogleHandler) findOrCreateGoogleUser(ctx context.Context, gc *GoogleClaims) (*users.User, error) {
	if gc.Sub != "" {
		u, err := g.users.FindByGoogleSub(ctx, gc.Sub)
		if err == nil {
			return u, nil
		}
		if !errors.Is(err, users.ErrNotFound) {
			return nil, err
		}
	}

	email := normalizeEmail(gc.Email)
	u, err := g.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if u.GoogleSub == nil {
			if err := g.users.LinkGoogleSub(ctx, u.ID, gc.Sub); err != nil {
				return nil, err
			}
			sub := gc.Sub
			u.GoogleSub = &sub
		}
		return u, nil
	case !errors.Is(err, users.ErrNotFound):
		return nil, err
	}

	sub := gc.Sub
	u = &users.User{
		Name:               firstNonEmpty(gc.Name, gc.GivenName),
		Email:              email,
		AuthProvider:       "google",
		GoogleSub:          &sub,
		Role:               users.RoleUser,
		SubscriptionStatus: plans.TierFree,
	}
	if err := g.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
