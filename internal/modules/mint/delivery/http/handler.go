package http

import (
	"net/http"

	mint "github.com/frostlabs-io/avaxboard/internal/modules/mint/service"
	"github.com/frostlabs-io/avaxboard/pkg/response"
	"github.com/gin-gonic/gin"
)

type MintHandler struct {
	mintService mint.MintService
}

func NewMintHandler(mintService mint.MintService) *MintHandler {
	return &MintHandler{mintService: mintService}
}

func (h *MintHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.mintService.GetConfig())
}

func (h *MintHandler) GetEligibility(c *gin.Context) {
	res, err := h.mintService.GetEligibility(c.Request.Context(), c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
