package http

import (
	"net/http"

	voteDto "github.com/frostlabs-io/avaxboard/internal/modules/vote/dto"
	vote "github.com/frostlabs-io/avaxboard/internal/modules/vote/service"
	"github.com/frostlabs-io/avaxboard/pkg/apperror"
	"github.com/frostlabs-io/avaxboard/pkg/response"
	"github.com/frostlabs-io/avaxboard/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VoteHandler struct {
	voteService vote.VoteService
}

func NewVoteHandler(voteService vote.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// CastVote handles POST /projects/:projectId/vote. 201 for a fresh vote,
// 200 for an in-window flip. The response is never cacheable.
func (h *VoteHandler) CastVote(c *gin.Context) {
	response.NoStore(c)

	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		response.Error(c, apperror.New(http.StatusNotFound, "project not found", apperror.ErrNotFound))
		return
	}

	var req voteDto.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.voteService.CastVote(c.Request.Context(), req.WalletAddress, projectID, req.Type)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusOK
	if res.Status == "recorded" {
		status = http.StatusCreated
	}
	c.JSON(status, res)
}

func (h *VoteHandler) GetStatus(c *gin.Context) {
	response.NoStore(c)

	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		response.Error(c, apperror.New(http.StatusNotFound, "project not found", apperror.ErrNotFound))
		return
	}

	res, err := h.voteService.GetStatus(c.Request.Context(), c.Query("walletAddress"), projectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *VoteHandler) GetHistory(c *gin.Context) {
	res, err := h.voteService.GetHistory(c.Request.Context(), c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *VoteHandler) GetStreak(c *gin.Context) {
	res, err := h.voteService.GetStreak(c.Request.Context(), c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
