package service

import (
	"log"

	"github.com/frostlabs-io/avaxboard/internal/entity"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
)

const projectIndex = "projects"

type SearchService interface {
	IndexProject(project *entity.Project) error
	DeleteProject(id string) error
	// SearchProjects returns the ids of matching projects; hydration happens
	// against the database so soft-deleted rows never leak through a stale
	// index.
	SearchProjects(query string, limit int) ([]uuid.UUID, error)
	// ReindexAll replaces the whole project index, used by the nightly job.
	ReindexAll(projects []entity.Project) error
}

type projectDocument struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	TotalVotes  int      `json:"total_votes"`
}

type meiliSearchService struct {
	client meilisearch.ServiceManager
}

func NewMeiliSearchService(client meilisearch.ServiceManager) SearchService {
	s := &meiliSearchService{client: client}
	s.initIndex()
	return s
}

func (s *meiliSearchService) initIndex() {
	filterable := []any{"tags"}
	if _, err := s.client.Index(projectIndex).UpdateFilterableAttributes(&filterable); err != nil {
		log.Printf("Failed to update projects filterable attributes: %v", err)
	}

	sortable := []string{"total_votes"}
	if _, err := s.client.Index(projectIndex).UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("Failed to update projects sortable attributes: %v", err)
	}
}

func (s *meiliSearchService) IndexProject(project *entity.Project) error {
	_, err := s.client.Index(projectIndex).AddDocuments([]projectDocument{toDocument(project)}, strPtr("id"))
	return err
}

func (s *meiliSearchService) DeleteProject(id string) error {
	_, err := s.client.Index(projectIndex).DeleteDocument(id)
	return err
}

func (s *meiliSearchService) SearchProjects(query string, limit int) ([]uuid.UUID, error) {
	res, err := s.client.Index(projectIndex).Search(query, &meilisearch.SearchRequest{
		Limit: int64(limit),
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(res.Hits))
	for _, hit := range res.Hits {
		var doc projectDocument
		if err := hit.Decode(&doc); err != nil {
			continue
		}
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *meiliSearchService) ReindexAll(projects []entity.Project) error {
	docs := make([]projectDocument, 0, len(projects))
	for i := range projects {
		docs = append(docs, toDocument(&projects[i]))
	}

	if _, err := s.client.Index(projectIndex).DeleteAllDocuments(); err != nil {
		return err
	}
	_, err := s.client.Index(projectIndex).AddDocuments(docs, strPtr("id"))
	return err
}

func strPtr(s string) *string {
	return &s
}

func toDocument(p *entity.Project) projectDocument {
	return projectDocument{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Tags:        p.Tags,
		TotalVotes:  p.TotalVotes(),
	}
}
