package confluence

import (
	"context"
	"sync"

	"github.com/aspies/asutils/pkg/logger"
)

// maxParallelSearches bounds concurrent API calls so a long query list
// does not hammer the site.
const maxParallelSearches = 5

// SearchParallel runs several text searches concurrently and merges the
// hits, deduplicated by page ID. A failing query is logged and skipped;
// the batch never aborts, so one bad query still leaves the rest of the
// results usable.
func (c *Client) SearchParallel(ctx context.Context, queries []string, limit int, space string) []SearchResult {
	if len(queries) == 0 {
		return nil
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		merged  []SearchResult
		seen    = make(map[string]bool)
		workers = make(chan struct{}, maxParallelSearches)
	)

	for _, query := range queries {
		wg.Add(1)
		go func(query string) {
			defer wg.Done()
			workers <- struct{}{}
			defer func() { <-workers }()

			results, err := c.Search(ctx, query, limit, space)
			if err != nil {
				logger.G(ctx).WithField("query", query).WithError(err).Warn("search failed, skipping")
				return
			}

			mu.Lock()
			defer mu.Unlock()
			for _, r := range results {
				if seen[r.PageID] {
					continue
				}
				seen[r.PageID] = true
				merged = append(merged, r)
			}
		}(query)
	}

	wg.Wait()
	return merged
}
