package service

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/frostlabs-io/avaxboard/internal/config"
	"github.com/frostlabs-io/avaxboard/internal/entity"
	"github.com/frostlabs-io/avaxboard/internal/middleware"
	adminDto "github.com/frostlabs-io/avaxboard/internal/modules/admin/dto"
	projectDto "github.com/frostlabs-io/avaxboard/internal/modules/project/dto"
	projectRepo "github.com/frostlabs-io/avaxboard/internal/modules/project/repository"
	project "github.com/frostlabs-io/avaxboard/internal/modules/project/service"
	search "github.com/frostlabs-io/avaxboard/internal/modules/search/service"
	"github.com/frostlabs-io/avaxboard/pkg/apperror"
	"github.com/frostlabs-io/avaxboard/pkg/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AvatarFile is an uploaded project avatar.
type AvatarFile struct {
	Reader   io.Reader
	FileName string
}

type AdminService interface {
	// Login is the development fallback: a bcrypt-checked shared password
	// instead of the Discord allowlist. Disabled when no hash is configured.
	Login(password string) (*adminDto.LoginResponse, error)
	CreateProject(ctx context.Context, req adminDto.CreateProjectRequest, avatar *AvatarFile) (*projectDto.ProjectResponse, error)
	UpdateProject(ctx context.Context, id uuid.UUID, req adminDto.UpdateProjectRequest, avatar *AvatarFile) (*projectDto.ProjectResponse, error)
	// DeleteProject soft-deletes: the project vanishes from listings but its
	// vote history stays intact.
	DeleteProject(ctx context.Context, id uuid.UUID) error
	ListProjects(ctx context.Context, includeDeleted bool) (*projectDto.ProjectListResponse, error)
}

type adminService struct {
	projects     projectRepo.ProjectRepository
	searchSvc    search.SearchService
	imageStorage storage.ImageStorage
	cfg          *config.Config
}

func NewAdminService(projects projectRepo.ProjectRepository, searchSvc search.SearchService, imageStorage storage.ImageStorage, cfg *config.Config) AdminService {
	return &adminService{
		projects:     projects,
		searchSvc:    searchSvc,
		imageStorage: imageStorage,
		cfg:          cfg,
	}
}

func (s *adminService) Login(password string) (*adminDto.LoginResponse, error) {
	if s.cfg.AdminPasswordHash == "" {
		return nil, apperror.New(403, "password login is disabled", apperror.ErrForbidden)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)); err != nil {
		return nil, apperror.New(401, "invalid credentials", apperror.ErrUnauthorized)
	}

	claims := jwt.RegisteredClaims{
		Subject:   middleware.DevAdminSubject,
		Issuer:    "avaxboard",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.SessionTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &adminDto.LoginResponse{Token: token}, nil
}

func (s *adminService) CreateProject(ctx context.Context, req adminDto.CreateProjectRequest, avatar *AvatarFile) (*projectDto.ProjectResponse, error) {
	proj := &entity.Project{
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
		Twitter:     req.Twitter,
		Discord:     req.Discord,
		Tags:        req.Tags,
	}

	if avatar != nil {
		url, err := s.uploadAvatar(ctx, avatar)
		if err != nil {
			return nil, err
		}
		proj.AvatarURL = &url
	}

	if err := s.projects.Create(ctx, proj); err != nil {
		return nil, err
	}

	s.indexAsync(proj)

	resp := project.ToResponse(proj)
	return &resp, nil
}

func (s *adminService) UpdateProject(ctx context.Context, id uuid.UUID, req adminDto.UpdateProjectRequest, avatar *AvatarFile) (*projectDto.ProjectResponse, error) {
	proj, err := s.projects.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		proj.Name = *req.Name
	}
	if req.Description != nil {
		proj.Description = *req.Description
	}
	if req.Website != nil {
		proj.Website = req.Website
	}
	if req.Twitter != nil {
		proj.Twitter = req.Twitter
	}
	if req.Discord != nil {
		proj.Discord = req.Discord
	}
	if req.Tags != nil {
		proj.Tags = *req.Tags
	}

	if avatar != nil {
		url, err := s.uploadAvatar(ctx, avatar)
		if err != nil {
			return nil, err
		}
		if proj.AvatarURL != nil && s.imageStorage != nil {
			if err := s.imageStorage.DeleteImage(ctx, *proj.AvatarURL); err != nil {
				log.Printf("failed to delete old project avatar: %v", err)
			}
		}
		proj.AvatarURL = &url
	}

	if err := s.projects.Update(ctx, proj); err != nil {
		return nil, err
	}

	s.indexAsync(proj)

	resp := project.ToResponse(proj)
	return &resp, nil
}

func (s *adminService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	if err := s.projects.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if s.searchSvc != nil {
		go func() {
			if err := s.searchSvc.DeleteProject(id.String()); err != nil {
				log.Printf("failed to remove project %s from search index: %v", id, err)
			}
		}()
	}
	return nil
}

func (s *adminService) ListProjects(ctx context.Context, includeDeleted bool) (*projectDto.ProjectListResponse, error) {
	projects, err := s.projects.ListAll(ctx, includeDeleted)
	if err != nil {
		return nil, err
	}

	out := make([]projectDto.ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, project.ToResponse(&projects[i]))
	}
	return &projectDto.ProjectListResponse{Projects: out}, nil
}

func (s *adminService) uploadAvatar(ctx context.Context, avatar *AvatarFile) (string, error) {
	if s.imageStorage == nil {
		return "", apperror.New(503, "image storage is not configured", apperror.ErrInternal)
	}
	return s.imageStorage.UploadImage(ctx, avatar.Reader, s.cfg.CloudinaryUploadFolder+"/project-avatars", avatar.FileName)
}

func (s *adminService) indexAsync(proj *entity.Project) {
	if s.searchSvc == nil {
		return
	}
	p := *proj
	go func() {
		if err := s.searchSvc.IndexProject(&p); err != nil {
			log.Printf("failed to index project %s: %v", p.ID, err)
		}
	}()
}
