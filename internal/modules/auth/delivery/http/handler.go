package http

import (
	"net/http"

	auth "github.com/frostlabs-io/avaxboard/internal/modules/auth/service"
	"github.com/frostlabs-io/avaxboard/pkg/apperror"
	"github.com/frostlabs-io/avaxboard/pkg/response"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService auth.DiscordAuthService
}

func NewAuthHandler(authService auth.DiscordAuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// DiscordLogin redirects the browser into the Discord OAuth flow. The wallet
// address to link is carried in the signed state parameter.
func (h *AuthHandler) DiscordLogin(c *gin.Context) {
	walletAddress := c.Query("walletAddress")
	if walletAddress == "" {
		response.Error(c, apperror.New(http.StatusBadRequest, "walletAddress query parameter is required", apperror.ErrInvalidInput))
		return
	}

	url, err := h.authService.LoginURL(walletAddress)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, url)
}

func (h *AuthHandler) DiscordCallback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		response.Error(c, apperror.New(http.StatusBadRequest, "missing code or state", apperror.ErrInvalidInput))
		return
	}

	result, err := h.authService.HandleCallback(c.Request.Context(), code, state)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
