package service

import (
	"context"
	"errors"

	"github.com/frostlabs-io/avaxboard/internal/entity"
	projectDto "github.com/frostlabs-io/avaxboard/internal/modules/project/dto"
	projectRepo "github.com/frostlabs-io/avaxboard/internal/modules/project/repository"
	search "github.com/frostlabs-io/avaxboard/internal/modules/search/service"
	"github.com/frostlabs-io/avaxboard/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const searchLimit = 25

type ProjectService interface {
	// List returns all non-deleted projects ranked descending by total votes.
	// Rank is the 1-based position after sorting, computed here at read time.
	List(ctx context.Context) (*projectDto.ProjectListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*projectDto.ProjectResponse, error)
	Search(ctx context.Context, query string) (*projectDto.ProjectListResponse, error)
}

type projectService struct {
	repo      projectRepo.ProjectRepository
	searchSvc search.SearchService
}

func NewProjectService(repo projectRepo.ProjectRepository, searchSvc search.SearchService) ProjectService {
	return &projectService{repo: repo, searchSvc: searchSvc}
}

func (s *projectService) List(ctx context.Context) (*projectDto.ProjectListResponse, error) {
	projects, err := s.repo.ListRanked(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]projectDto.ProjectResponse, 0, len(projects))
	for i := range projects {
		resp := ToResponse(&projects[i])
		resp.Rank = i + 1
		out = append(out, resp)
	}

	return &projectDto.ProjectListResponse{Projects: out}, nil
}

func (s *projectService) Get(ctx context.Context, id uuid.UUID) (*projectDto.ProjectResponse, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	resp := ToResponse(project)
	return &resp, nil
}

func (s *projectService) Search(ctx context.Context, query string) (*projectDto.ProjectListResponse, error) {
	if s.searchSvc == nil {
		return nil, apperror.New(503, "search is not configured", apperror.ErrInternal)
	}

	ids, err := s.searchSvc.SearchProjects(query, searchLimit)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return &projectDto.ProjectListResponse{Projects: []projectDto.ProjectResponse{}}, nil
	}

	// Hydrate from the database so a stale index never surfaces deleted rows,
	// preserving the index's relevance order.
	projects, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*entity.Project, len(projects))
	for i := range projects {
		byID[projects[i].ID] = &projects[i]
	}

	out := make([]projectDto.ProjectResponse, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, ToResponse(p))
		}
	}

	return &projectDto.ProjectListResponse{Projects: out}, nil
}

// ToResponse maps a project entity to its API shape.
func ToResponse(p *entity.Project) projectDto.ProjectResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return projectDto.ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		AvatarURL:   p.AvatarURL,
		Website:     p.Website,
		Twitter:     p.Twitter,
		Discord:     p.Discord,
		Tags:        tags,
		Metadata: projectDto.VoteMetadata{
			Likes:    p.Likes,
			Dislikes: p.Dislikes,
			Voters:   p.Voters,
		},
		CreatedAt: p.CreatedAt,
	}
}
