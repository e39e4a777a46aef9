package dto

import (
	"time"

	"github.com/google/uuid"
)

type VoteMetadata struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
	Voters   int `json:"voters"`
}

type ProjectResponse struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	AvatarURL   *string      `json:"avatarUrl,omitempty"`
	Website     *string      `json:"website,omitempty"`
	Twitter     *string      `json:"twitter,omitempty"`
	Discord     *string      `json:"discord,omitempty"`
	Tags        []string     `json:"tags"`
	Metadata    VoteMetadata `json:"metadata"`
	Rank        int          `json:"rank,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
}
