package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	voteDto "github.com/frostlabs-io/avaxboard/internal/modules/vote/dto"
	"github.com/frostlabs-io/avaxboard/pkg/apperror"
	"github.com/frostlabs-io/avaxboard/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWallet = "0x1111111111111111111111111111111111111111"

type stubVoteService struct {
	castVoteFn  func(ctx context.Context, address string, projectID uuid.UUID, voteType string) (*voteDto.CastVoteResponse, error)
	getStatusFn func(ctx context.Context, address string, projectID uuid.UUID) (*voteDto.VoteStatusResponse, error)
}

func (s *stubVoteService) CastVote(ctx context.Context, address string, projectID uuid.UUID, voteType string) (*voteDto.CastVoteResponse, error) {
	return s.castVoteFn(ctx, address, projectID, voteType)
}

func (s *stubVoteService) GetStatus(ctx context.Context, address string, projectID uuid.UUID) (*voteDto.VoteStatusResponse, error) {
	return s.getStatusFn(ctx, address, projectID)
}

func (s *stubVoteService) GetHistory(ctx context.Context, address string) (*voteDto.VoteHistoryResponse, error) {
	return &voteDto.VoteHistoryResponse{Votes: []voteDto.VoteRecord{}}, nil
}

func (s *stubVoteService) GetStreak(ctx context.Context, address string) (*voteDto.StreakResponse, error) {
	return &voteDto.StreakResponse{}, nil
}

func setupRouter(t *testing.T, svc *stubVoteService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validator.RegisterCustomRules())

	handler := NewVoteHandler(svc)
	router := gin.New()
	router.POST("/projects/:projectId/vote", handler.CastVote)
	router.GET("/projects/:projectId/vote/status", handler.GetStatus)
	return router
}

func castVoteBody(t *testing.T, wallet, voteType string) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(map[string]string{"walletAddress": wallet, "type": voteType})
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func TestCastVoteRecordedReturns201(t *testing.T) {
	svc := &stubVoteService{
		castVoteFn: func(ctx context.Context, address string, projectID uuid.UUID, voteType string) (*voteDto.CastVoteResponse, error) {
			return &voteDto.CastVoteResponse{
				Status:   "recorded",
				Message:  "vote recorded",
				Metadata: voteDto.VoteMetadata{Likes: 1, Voters: 1},
				XP:       1,
				Level:    1,
			}, nil
		},
	}
	router := setupRouter(t, svc)

	req := httptest.NewRequest("POST", "/projects/"+uuid.NewString()+"/vote", castVoteBody(t, testWallet, "like"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var resp voteDto.CastVoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "recorded", resp.Status)
	assert.Equal(t, 1, resp.Metadata.Likes)
}

func TestCastVoteUpdatedReturns200(t *testing.T) {
	svc := &stubVoteService{
		castVoteFn: func(ctx context.Context, address string, projectID uuid.UUID, voteType string) (*voteDto.CastVoteResponse, error) {
			return &voteDto.CastVoteResponse{Status: "updated", Message: "vote updated"}, nil
		},
	}
	router := setupRouter(t, svc)

	req := httptest.NewRequest("POST", "/projects/"+uuid.NewString()+"/vote", castVoteBody(t, testWallet, "dislike"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCastVoteErrors(t *testing.T) {
	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
	}{
		{"duplicate vote", apperror.New(400, "already liked this project in the last 24 hours", apperror.ErrDuplicateVote), http.StatusBadRequest},
		{"discord not linked", apperror.New(400, "link your Discord account before voting", apperror.ErrDiscordNotLinked), http.StatusBadRequest},
		{"rate limited", apperror.New(429, "slow down", apperror.ErrRateLimited), http.StatusTooManyRequests},
		{"project missing", apperror.New(404, "project not found", apperror.ErrNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubVoteService{
				castVoteFn: func(ctx context.Context, address string, projectID uuid.UUID, voteType string) (*voteDto.CastVoteResponse, error) {
					return nil, tt.serviceErr
				},
			}
			router := setupRouter(t, svc)

			req := httptest.NewRequest("POST", "/projects/"+uuid.NewString()+"/vote", castVoteBody(t, testWallet, "like"))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestCastVoteRejectsBadInput(t *testing.T) {
	svc := &stubVoteService{
		castVoteFn: func(ctx context.Context, address string, projectID uuid.UUID, voteType string) (*voteDto.CastVoteResponse, error) {
			t.Fatal("service must not be reached on invalid input")
			return nil, nil
		},
	}
	router := setupRouter(t, svc)

	tests := []struct {
		name   string
		wallet string
		vote   string
	}{
		{"malformed address", "not-an-address", "like"},
		{"short address", "0x1234", "like"},
		{"bad vote type", testWallet, "upvote"},
		{"empty vote type", testWallet, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/projects/"+uuid.NewString()+"/vote", castVoteBody(t, tt.wallet, tt.vote))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCastVoteUnknownProjectID(t *testing.T) {
	router := setupRouter(t, &stubVoteService{})

	req := httptest.NewRequest("POST", "/projects/not-a-uuid/vote", castVoteBody(t, testWallet, "like"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetStatus(t *testing.T) {
	svc := &stubVoteService{
		getStatusFn: func(ctx context.Context, address string, projectID uuid.UUID) (*voteDto.VoteStatusResponse, error) {
			return &voteDto.VoteStatusResponse{HasVoted: true}, nil
		},
	}
	router := setupRouter(t, svc)

	req := httptest.NewRequest("GET", "/projects/"+uuid.NewString()+"/vote/status?walletAddress="+testWallet, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var resp voteDto.VoteStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.HasVoted)
}
