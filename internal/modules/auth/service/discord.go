package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/frostlabs-io/avaxboard/internal/config"
	userRepo "github.com/frostlabs-io/avaxboard/internal/modules/user/repository"
	"github.com/frostlabs-io/avaxboard/pkg/apperror"
	"github.com/frostlabs-io/avaxboard/pkg/validator"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

const (
	discordAuthURL  = "https://discord.com/api/oauth2/authorize"
	discordTokenURL = "https://discord.com/api/oauth2/token"
	discordMeURL    = "https://discord.com/api/users/@me"

	// stateTTL bounds how long a login redirect stays valid.
	stateTTL = 10 * time.Minute
)

// LinkResult is returned after a successful OAuth callback: the wallet now
// carries a Discord identity and a session token for the dashboard.
type LinkResult struct {
	WalletAddress string `json:"walletAddress"`
	DiscordID     string `json:"discordId"`
	DiscordName   string `json:"discordName"`
	SessionToken  string `json:"sessionToken"`
}

type DiscordAuthService interface {
	// LoginURL builds the Discord authorize URL. The wallet address rides in
	// a signed short-lived state token so the callback can bind identities
	// without server-side session storage.
	LoginURL(walletAddress string) (string, error)
	HandleCallback(ctx context.Context, code, state string) (*LinkResult, error)
}

type discordAuthService struct {
	users      userRepo.UserRepository
	oauth      *oauth2.Config
	jwtSecret  []byte
	sessionTTL time.Duration
}

func NewDiscordAuthService(cfg *config.Config, users userRepo.UserRepository) DiscordAuthService {
	return &discordAuthService{
		users: users,
		oauth: &oauth2.Config{
			ClientID:     cfg.DiscordClientID,
			ClientSecret: cfg.DiscordClientSecret,
			RedirectURL:  cfg.DiscordRedirectURL,
			Scopes:       []string{"identify"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  discordAuthURL,
				TokenURL: discordTokenURL,
			},
		},
		jwtSecret:  []byte(cfg.JWTSecret),
		sessionTTL: cfg.SessionTTL,
	}
}

func (s *discordAuthService) LoginURL(walletAddress string) (string, error) {
	if !validator.IsWalletAddress(walletAddress) {
		return "", apperror.New(400, "invalid wallet address", apperror.ErrInvalidInput)
	}

	state, err := s.signState(strings.ToLower(walletAddress))
	if err != nil {
		return "", err
	}

	return s.oauth.AuthCodeURL(state), nil
}

func (s *discordAuthService) HandleCallback(ctx context.Context, code, state string) (*LinkResult, error) {
	walletAddress, err := s.verifyState(state)
	if err != nil {
		return nil, apperror.New(400, "invalid or expired login state", apperror.ErrInvalidInput)
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, apperror.New(400, "discord code exchange failed", apperror.ErrBadRequest)
	}

	identity, err := s.fetchIdentity(ctx, token)
	if err != nil {
		return nil, err
	}

	// One user per Discord identity: a Discord account already bound to a
	// different wallet cannot be linked again.
	existing, err := s.users.FindByDiscordID(ctx, identity.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil && existing.WalletAddress != walletAddress {
		return nil, apperror.New(409, "this discord account is already linked to another wallet", apperror.ErrConflict)
	}

	user, err := s.users.FindOrCreateByAddress(ctx, walletAddress)
	if err != nil {
		return nil, err
	}

	if err := s.users.LinkDiscord(ctx, user.ID, identity.ID, identity.Username); err != nil {
		return nil, err
	}

	session, err := s.signSession(walletAddress)
	if err != nil {
		return nil, err
	}

	return &LinkResult{
		WalletAddress: walletAddress,
		DiscordID:     identity.ID,
		DiscordName:   identity.Username,
		SessionToken:  session,
	}, nil
}

type discordIdentity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (s *discordAuthService) fetchIdentity(ctx context.Context, token *oauth2.Token) (*discordIdentity, error) {
	client := s.oauth.Client(ctx, token)

	resp, err := client.Get(discordMeURL)
	if err != nil {
		return nil, fmt.Errorf("discord identity request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discord identity request returned %d", resp.StatusCode)
	}

	var identity discordIdentity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("failed to decode discord identity: %w", err)
	}
	if identity.ID == "" {
		return nil, fmt.Errorf("discord identity response missing id")
	}
	return &identity, nil
}

func (s *discordAuthService) signState(walletAddress string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   walletAddress,
		Issuer:    "avaxboard-link",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(stateTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *discordAuthService) verifyState(state string) (string, error) {
	token, err := jwt.ParseWithClaims(state, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid state token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Issuer != "avaxboard-link" || claims.Subject == "" {
		return "", fmt.Errorf("invalid state claims")
	}
	return claims.Subject, nil
}

func (s *discordAuthService) signSession(walletAddress string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   walletAddress,
		Issuer:    "avaxboard",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.sessionTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}
