// Package feed pulls items from RSS/Atom sources into the store and renders topics back as RSS
package feed

import (
	"context"
	"fmt"
	"html"
	"strings"
	"sync/atomic"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/topicscope/pkg/content"
	"github.com/umputun/topicscope/pkg/domain"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/parser.go -pkg mocks -skip-ensure -fmt goimports . FeedParser
//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor

// NoSummary is stored for items without any usable text
const NoSummary = "No summary available."

// Store keeps sources and ingested items
type Store interface {
	GetActiveSources(ctx context.Context) ([]domain.Source, error)
	CreateItems(ctx context.Context, items []domain.Item) (int, error)
}

// FeedParser fetches and parses a feed
type FeedParser interface {
	Parse(ctx context.Context, url string) (*domain.ParsedFeed, error)
}

// Extractor pulls article text from a page
type Extractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// IngesterParams holds ingester dependencies and settings
type IngesterParams struct {
	Store           Store
	Parser          FeedParser
	Extractor       Extractor // optional, used only for entries without description and content
	ItemsPerSource  int
	Concurrency     int
	MaxSummaryChars int
}

// Ingester polls active sources and stores new items
type Ingester struct {
	IngesterParams
	policy *bluemonday.Policy
}

// NewIngester makes an ingester, zero settings get defaults
func NewIngester(p IngesterParams) *Ingester {
	if p.ItemsPerSource <= 0 {
		p.ItemsPerSource = 5
	}
	if p.Concurrency <= 0 {
		p.Concurrency = 4
	}
	return &Ingester{IngesterParams: p, policy: bluemonday.StrictPolicy()}
}

// Ingest polls all active sources and returns the number of new items.
// A failing source is logged and skipped, only a failure to list sources is returned.
func (i *Ingester) Ingest(ctx context.Context) (int, error) {
	sources, err := i.Store.GetActiveSources(ctx)
	if err != nil {
		return 0, fmt.Errorf("get active sources: %w", err)
	}

	var total atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.Concurrency)
	for _, src := range sources {
		g.Go(func() error {
			n, err := i.ingestSource(gctx, src)
			if err != nil {
				lgr.Printf("[WARN] can't ingest source %s (%s): %v", src.Name, src.URL, err)
				return nil
			}
			total.Add(int64(n))
			return nil
		})
	}
	_ = g.Wait() // per-source errors are logged, not returned

	lgr.Printf("[INFO] ingested %d new items from %d sources", total.Load(), len(sources))
	return int(total.Load()), ctx.Err()
}

func (i *Ingester) ingestSource(ctx context.Context, src domain.Source) (int, error) {
	feed, err := i.Parser.Parse(ctx, src.URL)
	if err != nil {
		return 0, err
	}

	items := make([]domain.Item, 0, i.ItemsPerSource)
	for _, entry := range feed.Items {
		if len(items) >= i.ItemsPerSource {
			break
		}
		if strings.TrimSpace(entry.Link) == "" {
			lgr.Printf("[DEBUG] skip entry without link from %s: %q", src.Name, entry.Title)
			continue
		}
		title := i.clean(entry.Title)
		if title == "" {
			title = entry.Link
		}
		items = append(items, domain.Item{
			SourceID:  src.ID,
			Title:     title,
			Summary:   i.summary(ctx, entry),
			URL:       strings.TrimSpace(entry.Link),
			Published: entry.Published,
		})
	}

	created, err := i.Store.CreateItems(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("save items: %w", err)
	}
	lgr.Printf("[DEBUG] source %s: %d entries, %d new items", src.Name, len(items), created)
	return created, nil
}

// summary picks the first non-empty of description, content and extracted article text
func (i *Ingester) summary(ctx context.Context, entry domain.ParsedItem) string {
	for _, s := range []string{entry.Description, entry.Content} {
		if text := i.clean(s); text != "" {
			return content.Shorten(text, i.MaxSummaryChars)
		}
	}
	if i.Extractor != nil {
		text, err := i.Extractor.Extract(ctx, entry.Link)
		if err != nil {
			lgr.Printf("[DEBUG] can't extract %s: %v", entry.Link, err)
		}
		if text = strings.TrimSpace(text); err == nil && text != "" {
			return content.Shorten(text, i.MaxSummaryChars)
		}
	}
	return NoSummary
}

// clean strips markup and collapses whitespace
func (i *Ingester) clean(s string) string {
	s = html.UnescapeString(i.policy.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}
