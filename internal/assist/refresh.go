package assist

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Refresh fetches classifications and document suggestions for the current
// (subject, description) pair, running both requests concurrently. When the
// pair is unchanged since the last successful refresh the cached responses
// are returned without touching the network, so debounced re-triggers that
// race a navigation are free.
//
// A failure of either fetch fails the refresh and leaves the cache intact;
// callers apply the usual degrade-to-empty policy.
func (c *Client) Refresh(ctx context.Context, subject, description, visitorID string) (*ClassificationResponse, *SuggestionResponse, error) {
	d := digest(subject, description)

	c.mu.Lock()
	if d == c.lastDigest && c.cachedClassify != nil && c.cachedSuggest != nil {
		classify, suggest := c.cachedClassify, c.cachedSuggest
		c.mu.Unlock()
		logger.Debug("refresh served from cache")
		return classify, suggest, nil
	}
	c.mu.Unlock()

	var (
		classify *ClassificationResponse
		suggest  *SuggestionResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		classify, err = c.FetchCaseClassifications(gctx, subject, description, visitorID)
		return err
	})
	g.Go(func() error {
		var err error
		suggest, err = c.FetchDocumentSuggestions(gctx, subject, description, visitorID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	c.mu.Lock()
	c.lastDigest = d
	c.cachedClassify = classify
	c.cachedSuggest = suggest
	c.mu.Unlock()
	return classify, suggest, nil
}

// InvalidateCache drops the cached responses so the next Refresh always
// fetches. Used when the session is rehydrated from a previous run.
func (c *Client) InvalidateCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastDigest = 0
	c.cachedClassify = nil
	c.cachedSuggest = nil
}
