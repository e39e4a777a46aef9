package http

import (
	"net/http"

	adminDto "github.com/frostlabs-io/avaxboard/internal/modules/admin/dto"
	admin "github.com/frostlabs-io/avaxboard/internal/modules/admin/service"
	"github.com/frostlabs-io/avaxboard/pkg/apperror"
	"github.com/frostlabs-io/avaxboard/pkg/response"
	"github.com/frostlabs-io/avaxboard/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	adminService admin.AdminService
}

func NewAdminHandler(adminService admin.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req adminDto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.adminService.Login(req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) CreateProject(c *gin.Context) {
	var req adminDto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.adminService.CreateProject(c.Request.Context(), req, nil)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *AdminHandler) UpdateProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		response.Error(c, apperror.New(http.StatusNotFound, "project not found", apperror.ErrNotFound))
		return
	}

	var req adminDto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.adminService.UpdateProject(c.Request.Context(), id, req, nil)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// UploadAvatar accepts multipart form data with an "avatar" file field.
func (h *AdminHandler) UploadAvatar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		response.Error(c, apperror.New(http.StatusNotFound, "project not found", apperror.ErrNotFound))
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil || fileHeader == nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "avatar file is required", apperror.ErrInvalidInput))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "failed to read avatar", apperror.ErrInvalidInput))
		return
	}
	defer file.Close()

	res, err := h.adminService.UpdateProject(c.Request.Context(), id, adminDto.UpdateProjectRequest{}, &admin.AvatarFile{
		Reader:   file,
		FileName: fileHeader.Filename,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) DeleteProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		response.Error(c, apperror.New(http.StatusNotFound, "project not found", apperror.ErrNotFound))
		return
	}

	if err := h.adminService.DeleteProject(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

func (h *AdminHandler) ListProjects(c *gin.Context) {
	includeDeleted := c.Query("includeDeleted") == "true"

	res, err := h.adminService.ListProjects(c.Request.Context(), includeDeleted)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
