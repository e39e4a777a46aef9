package feeds

import (
	"context"
	"fmt"
	"log"
	"time"

	projectRepo "github.com/frostlabs-io/avaxboard/internal/modules/project/repository"
	search "github.com/frostlabs-io/avaxboard/internal/modules/search/service"
	"github.com/robfig/cron/v3"
)

// Job is a named background task with a cron schedule.
type Job struct {
	Name     string
	Schedule string
	Run      func(ctx context.Context) error
}

// Scheduler drives the recurring background jobs: the news refresh and the
// nightly search reindex.
type Scheduler struct {
	cron *cron.Cron
	jobs []Job
}

func NewScheduler() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

func (s *Scheduler) Register(job Job) {
	s.jobs = append(s.jobs, job)

	_, err := s.cron.AddFunc(job.Schedule, func() {
		log.Printf("🤖 [%s] Starting scheduled job...", job.Name)
		if err := job.Run(context.Background()); err != nil {
			log.Printf("❌ [%s] Job failed: %v", job.Name, err)
		} else {
			log.Printf("✅ [%s] Job completed", job.Name)
		}
	})
	if err != nil {
		log.Printf("⚠️ Failed to schedule job %s: %v", job.Name, err)
	} else {
		log.Printf("📅 [%s] Scheduled with cron: %s", job.Name, job.Schedule)
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Printf("🚀 Scheduler started with %d jobs", len(s.jobs))
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("🛑 Scheduler stopped")
}

// NewsJob wraps the RSS fetcher into a scheduled job.
func NewsJob(fetcher *Fetcher, interval time.Duration) Job {
	return Job{
		Name:     "news-refresh",
		Schedule: fmt.Sprintf("@every %s", interval),
		Run:      fetcher.Run,
	}
}

// ReindexJob rebuilds the project search index nightly so it never drifts far
// from the database.
func ReindexJob(projects projectRepo.ProjectRepository, searchSvc search.SearchService) Job {
	return Job{
		Name:     "search-reindex",
		Schedule: "@daily",
		Run: func(ctx context.Context) error {
			all, err := projects.ListAll(ctx, false)
			if err != nil {
				return err
			}
			return searchSvc.ReindexAll(all)
		},
	}
}
