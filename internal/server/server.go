package server

import (
	"log"
	"strings"
	"time"

	"github.com/frostlabs-io/avaxboard/internal/config"
	"github.com/frostlabs-io/avaxboard/internal/feeds"
	"github.com/frostlabs-io/avaxboard/internal/live"
	"github.com/frostlabs-io/avaxboard/internal/middleware"

	adminHttp "github.com/frostlabs-io/avaxboard/internal/modules/admin/delivery/http"
	adminService "github.com/frostlabs-io/avaxboard/internal/modules/admin/service"

	authHttp "github.com/frostlabs-io/avaxboard/internal/modules/auth/delivery/http"
	authService "github.com/frostlabs-io/avaxboard/internal/modules/auth/service"

	leaderboardHttp "github.com/frostlabs-io/avaxboard/internal/modules/leaderboard/delivery/http"
	leaderboardService "github.com/frostlabs-io/avaxboard/internal/modules/leaderboard/service"

	mintHttp "github.com/frostlabs-io/avaxboard/internal/modules/mint/delivery/http"
	mintService "github.com/frostlabs-io/avaxboard/internal/modules/mint/service"

	newsHttp "github.com/frostlabs-io/avaxboard/internal/modules/news/delivery/http"
	newsRepo "github.com/frostlabs-io/avaxboard/internal/modules/news/repository"
	newsService "github.com/frostlabs-io/avaxboard/internal/modules/news/service"

	projectHttp "github.com/frostlabs-io/avaxboard/internal/modules/project/delivery/http"
	projectRepo "github.com/frostlabs-io/avaxboard/internal/modules/project/repository"
	projectService "github.com/frostlabs-io/avaxboard/internal/modules/project/service"

	searchService "github.com/frostlabs-io/avaxboard/internal/modules/search/service"

	userHttp "github.com/frostlabs-io/avaxboard/internal/modules/user/delivery/http"
	userRepo "github.com/frostlabs-io/avaxboard/internal/modules/user/repository"
	userService "github.com/frostlabs-io/avaxboard/internal/modules/user/service"

	voteHttp "github.com/frostlabs-io/avaxboard/internal/modules/vote/delivery/http"
	voteRepo "github.com/frostlabs-io/avaxboard/internal/modules/vote/repository"
	voteService "github.com/frostlabs-io/avaxboard/internal/modules/vote/service"

	"github.com/frostlabs-io/avaxboard/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	scheduler   *feeds.Scheduler
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	users := userRepo.NewUserRepository(db)
	projects := projectRepo.NewProjectRepository(db)
	votes := voteRepo.NewVoteRepository(db)
	news := newsRepo.NewNewsRepository(db)

	var searchSvc searchService.SearchService
	if cfg.MeiliSearchHost != "" {
		meiliClient := meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		searchSvc = searchService.NewMeiliSearchService(meiliClient)
	}

	var imageStorage storage.ImageStorage
	if cfg.CloudinaryCloudName != "" || cfg.CloudinaryAPIKey != "" {
		var err error
		imageStorage, err = storage.NewCloudinaryStorage()
		if err != nil {
			log.Printf("⚠️ cloudinary unavailable, avatar uploads disabled: %v", err)
		}
	}

	userSvc := userService.NewUserService(users)
	userHandler := userHttp.NewUserHandler(userSvc)

	projectSvc := projectService.NewProjectService(projects, searchSvc)
	projectHandler := projectHttp.NewProjectHandler(projectSvc)

	voteSvc := voteService.NewVoteService(votes, users, redisClient, cfg.VoteCooldown)
	voteHandler := voteHttp.NewVoteHandler(voteSvc)

	leaderboardSvc := leaderboardService.NewLeaderboardService(users)
	leaderboardHandler := leaderboardHttp.NewLeaderboardHandler(leaderboardSvc)

	authSvc := authService.NewDiscordAuthService(cfg, users)
	authHandler := authHttp.NewAuthHandler(authSvc)

	adminSvc := adminService.NewAdminService(projects, searchSvc, imageStorage, cfg)
	adminHandler := adminHttp.NewAdminHandler(adminSvc)

	mintSvc := mintService.NewMintService(cfg, users, votes)
	mintHandler := mintHttp.NewMintHandler(mintSvc)

	newsSvc := newsService.NewNewsService(news)
	newsHandler := newsHttp.NewNewsHandler(newsSvc)

	feedHandler := live.NewFeedHandler(redisClient)

	// Background jobs
	scheduler := feeds.NewScheduler()
	if len(cfg.FeedURLs) > 0 {
		scheduler.Register(feeds.NewsJob(feeds.NewFetcher(news, cfg.FeedURLs), cfg.FeedInterval))
	}
	if searchSvc != nil {
		scheduler.Register(feeds.ReindexJob(projects, searchSvc))
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	setupCORS(router, cfg)

	policy := middleware.NewAdminPolicy(cfg.AdminDiscordIDs)
	authMiddleware := middleware.NewAuthMiddleware(users, policy, cfg.JWTSecret)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public leaderboard surface. Paths kept stable for existing clients.
	router.GET("/projects", projectHandler.List)
	router.GET("/projects/search", projectHandler.Search)
	router.GET("/projects/:projectId", projectHandler.Get)
	router.POST("/projects/:projectId/vote", voteHandler.CastVote)
	router.GET("/projects/:projectId/vote/status", voteHandler.GetStatus)

	router.GET("/users/:address/stats", userHandler.GetStats)
	router.GET("/users/:address/votes", voteHandler.GetHistory)
	router.GET("/users/:address/streak", voteHandler.GetStreak)
	router.GET("/users/:address/discord", userHandler.GetDiscordStatus)

	router.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
	router.GET("/news", newsHandler.Latest)

	router.GET("/mint/config", mintHandler.GetConfig)
	router.GET("/mint/:address/eligibility", mintHandler.GetEligibility)

	auth := router.Group("/auth")
	{
		auth.GET("/discord/login", authHandler.DiscordLogin)
		auth.GET("/discord/callback", authHandler.DiscordCallback)
	}

	router.GET("/live", feedHandler.Handle)

	admin := router.Group("/admin")
	{
		admin.POST("/login", adminHandler.Login)

		protected := admin.Group("")
		protected.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
		{
			protected.GET("/projects", adminHandler.ListProjects)
			protected.POST("/projects", adminHandler.CreateProject)
			protected.PUT("/projects/:projectId", adminHandler.UpdateProject)
			protected.POST("/projects/:projectId/avatar", adminHandler.UploadAvatar)
			protected.DELETE("/projects/:projectId", adminHandler.DeleteProject)
		}
	}

	return &Server{
		engine:      router,
		scheduler:   scheduler,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	s.scheduler.Start()
	defer s.scheduler.Stop()
	return s.engine.Run(addr)
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	var origins []string
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
