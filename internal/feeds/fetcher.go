package feeds

import (
	"context"
	"log"

	"github.com/frostlabs-io/avaxboard/internal/entity"
	newsRepo "github.com/frostlabs-io/avaxboard/internal/modules/news/repository"
	"github.com/mmcdole/gofeed"
)

// perFeedLimit caps how many entries one feed contributes per run.
const perFeedLimit = 25

// Fetcher pulls ecosystem news out of configured RSS feeds into the news
// table, de-duplicated by link.
type Fetcher struct {
	parser *gofeed.Parser
	repo   newsRepo.NewsRepository
	urls   []string
}

func NewFetcher(repo newsRepo.NewsRepository, urls []string) *Fetcher {
	return &Fetcher{
		parser: gofeed.NewParser(),
		repo:   repo,
		urls:   urls,
	}
}

func (f *Fetcher) Run(ctx context.Context) error {
	var items []entity.NewsItem

	for _, url := range f.urls {
		feed, err := f.parser.ParseURLWithContext(url, ctx)
		if err != nil {
			log.Printf("❌ failed to fetch feed %s: %v", url, err)
			continue
		}

		limit := len(feed.Items)
		if limit > perFeedLimit {
			limit = perFeedLimit
		}

		for _, entry := range feed.Items[:limit] {
			if entry.Link == "" || entry.Title == "" {
				continue
			}
			item := entity.NewsItem{
				Title:       entry.Title,
				Link:        entry.Link,
				Source:      feed.Title,
				Description: entry.Description,
			}
			if entry.PublishedParsed != nil {
				t := *entry.PublishedParsed
				item.PublishedAt = &t
			}
			items = append(items, item)
		}
	}

	inserted, err := f.repo.UpsertMany(ctx, items)
	if err != nil {
		return err
	}

	log.Printf("📰 news refresh: %d fetched, %d new", len(items), inserted)
	return nil
}
