package http

import (
	"net/http"

	project "github.com/frostlabs-io/avaxboard/internal/modules/project/service"
	"github.com/frostlabs-io/avaxboard/pkg/apperror"
	"github.com/frostlabs-io/avaxboard/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	projectService project.ProjectService
}

func NewProjectHandler(projectService project.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) List(c *gin.Context) {
	list, err := h.projectService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid project id", apperror.ErrInvalidInput))
		return
	}

	proj, err := h.projectService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, proj)
}

func (h *ProjectHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.Error(c, apperror.New(http.StatusBadRequest, "query parameter q is required", apperror.ErrInvalidInput))
		return
	}

	list, err := h.projectService.Search(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}
