package http

import (
	"net/http"
	"strconv"

	leaderboard "github.com/frostlabs-io/avaxboard/internal/modules/leaderboard/service"
	"github.com/frostlabs-io/avaxboard/pkg/response"
	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	leaderboardService leaderboard.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService leaderboard.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))

	board, err := h.leaderboardService.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, board)
}
