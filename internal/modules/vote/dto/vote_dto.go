package dto

import (
	"time"

	"github.com/google/uuid"
)

type CastVoteRequest struct {
	WalletAddress string `json:"walletAddress" binding:"required,avaxaddress"`
	Type          string `json:"type" binding:"required,votetype"`
}

type CastVoteResponse struct {
	Status   string       `json:"status"` // recorded | updated
	Message  string       `json:"message"`
	Metadata VoteMetadata `json:"metadata"`
	XP       int          `json:"xp"`
	Level    int          `json:"level"`
}

type VoteMetadata struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
	Voters   int `json:"voters"`
}

type VoteStatusResponse struct {
	HasVoted bool `json:"hasVoted"`
}

type VoteRecord struct {
	ProjectID uuid.UUID `json:"projectId"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

type VoteHistoryResponse struct {
	Votes         []VoteRecord `json:"votes"`
	CurrentStreak int          `json:"currentStreak"`
	LongestStreak int          `json:"longestStreak"`
}

type StreakResponse struct {
	CurrentStreak int        `json:"currentStreak"`
	LongestStreak int        `json:"longestStreak"`
	LastVoteDate  *time.Time `json:"lastVoteDate"`
}

// VoteEvent is the payload broadcast on the live feed after a cast commits.
type VoteEvent struct {
	ProjectID uuid.UUID `json:"projectId"`
	Type      string    `json:"type"`
	Outcome   string    `json:"outcome"`
	Likes     int       `json:"likes"`
	Dislikes  int       `json:"dislikes"`
}
