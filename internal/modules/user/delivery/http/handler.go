package http

import (
	"net/http"

	user "github.com/frostlabs-io/avaxboard/internal/modules/user/service"
	"github.com/frostlabs-io/avaxboard/pkg/response"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetStats(c *gin.Context) {
	stats, err := h.userService.GetStats(c.Request.Context(), c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *UserHandler) GetDiscordStatus(c *gin.Context) {
	status, err := h.userService.GetDiscordStatus(c.Request.Context(), c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
