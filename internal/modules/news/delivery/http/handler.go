package http

import (
	"net/http"
	"strconv"

	news "github.com/frostlabs-io/avaxboard/internal/modules/news/service"
	"github.com/frostlabs-io/avaxboard/pkg/response"
	"github.com/gin-gonic/gin"
)

type NewsHandler struct {
	newsService news.NewsService
}

func NewNewsHandler(newsService news.NewsService) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

func (h *NewsHandler) Latest(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := h.newsService.Latest(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"news": items})
}
