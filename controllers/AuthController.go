package controllers

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ichramsyah/bebasblog-backend/helper"
	"github.com/ichramsyah/bebasblog-backend/models"
	"github.com/ichramsyah/bebasblog-backend/services"
)

const (
	stateCookie       = "oauth_state"
	stateCookieMaxAge = 10 * 60
)

// IdentityProvider is the authorization code flow of an external login provider.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (models.ExternalProfile, error)
}

type AuthController struct {
	auth      *services.AuthService
	google    IdentityProvider
	clientURL string
	secure    bool
}

// NewAuthController wires the auth handlers. google may be nil when federated
// login is not configured.
func NewAuthController(auth *services.AuthService, google IdentityProvider, clientURL, publicURL string) *AuthController {
	return &AuthController{
		auth:      auth,
		google:    google,
		clientURL: strings.TrimSuffix(clientURL, "/"),
		secure:    strings.HasPrefix(publicURL, "https://"),
	}
}

func (a *AuthController) Register(c *gin.Context) {
	var in services.RegisterInput
	if err := bind(c, &in); err != nil {
		helper.RespondError(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := a.auth.Register(ctx, in)
	if err != nil {
		helper.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (a *AuthController) Login(c *gin.Context) {
	var in services.LoginInput
	if err := bind(c, &in); err != nil {
		helper.RespondError(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := a.auth.Login(ctx, in)
	if err != nil {
		helper.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GoogleLogin redirects to Google's consent screen with a fresh state value.
func (a *AuthController) GoogleLogin(c *gin.Context) {
	if a.google == nil {
		helper.RespondError(c, helper.NotFound("google login is not configured"))
		return
	}
	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, stateCookieMaxAge, "/api/auth/google", "", a.secure, true)
	c.Redirect(http.StatusFound, a.google.AuthCodeURL(state))
}

// GoogleCallback finishes the flow and hands the token to the client app.
func (a *AuthController) GoogleCallback(c *gin.Context) {
	if a.google == nil {
		helper.RespondError(c, helper.NotFound("google login is not configured"))
		return
	}

	state, err := c.Cookie(stateCookie)
	c.SetCookie(stateCookie, "", -1, "/api/auth/google", "", a.secure, true)
	if err != nil || state == "" || state != c.Query("state") {
		a.failLogin(c, "invalid_state")
		return
	}
	if reason := c.Query("error"); reason != "" {
		a.failLogin(c, reason)
		return
	}
	code := c.Query("code")
	if code == "" {
		a.failLogin(c, "missing_code")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := a.google.Exchange(ctx, code)
	if err != nil {
		log.Printf("google exchange: %v", err)
		a.failLogin(c, "google_auth_failed")
		return
	}
	resp, err := a.auth.FederatedLogin(ctx, profile)
	if err != nil {
		if helper.StatusOf(err) >= http.StatusInternalServerError {
			log.Printf("google login: %v", err)
		}
		a.failLogin(c, "login_failed")
		return
	}
	c.Redirect(http.StatusFound, a.clientURL+"/auth/success?token="+url.QueryEscape(resp.Token))
}

func (a *AuthController) failLogin(c *gin.Context, reason string) {
	c.Redirect(http.StatusFound, a.clientURL+"/login?error="+url.QueryEscape(reason))
}
