package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"

	"github.com/AbdelazizMoustafa10m/Magpie/internal/logging"
)

var logger = logging.New("assist")

// defaultTimeout bounds each request to the case-assist service.
const defaultTimeout = 15 * time.Second

// remoteError is the error body the service returns on failure.
type remoteError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// Client talks to the case-assist service. It caches the most recent
// classification and suggestion responses keyed by a digest of the
// (subject, description) pair so repeated refreshes while nothing changed
// do not hit the network again.
//
// Refreshes come from the wizard goroutine and from the debounce timer
// goroutine, so the cache is guarded by a mutex.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client

	maxSuggestions  int
	excludePatterns []string

	mu             sync.Mutex
	lastDigest     uint64
	cachedClassify *ClassificationResponse
	cachedSuggest  *SuggestionResponse
}

// Option configures the Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client.Timeout = d }
}

// WithMaxSuggestions caps how many suggested documents are returned.
// Zero means no cap.
func WithMaxSuggestions(n int) Option {
	return func(c *Client) { c.maxSuggestions = n }
}

// WithExcludePatterns drops suggested documents whose click URI matches any
// of the given doublestar glob patterns.
func WithExcludePatterns(patterns []string) Option {
	return func(c *Client) { c.excludePatterns = patterns }
}

// NewClient creates a case-assist client for the service at baseURL.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchCaseClassifications asks the service to predict field values for the
// case being described. visitorID links the request to the analytics visit.
func (c *Client) FetchCaseClassifications(ctx context.Context, subject, description, visitorID string) (*ClassificationResponse, error) {
	var out ClassificationResponse
	if err := c.get(ctx, "/classify", subject, description, visitorID, &out); err != nil {
		return nil, fmt.Errorf("assist: fetching classifications: %w", err)
	}
	if out.Fields == nil {
		out.Fields = map[string]FieldPredictions{}
	}
	return &out, nil
}

// FetchDocumentSuggestions asks the service for documents likely to solve
// the problem being described. The result is filtered by the configured
// exclude patterns and capped at the configured maximum.
func (c *Client) FetchDocumentSuggestions(ctx context.Context, subject, description, visitorID string) (*SuggestionResponse, error) {
	var out SuggestionResponse
	if err := c.get(ctx, "/suggest", subject, description, visitorID, &out); err != nil {
		return nil, fmt.Errorf("assist: fetching suggestions: %w", err)
	}
	out.Documents = c.filter(out.Documents)
	return &out, nil
}

// filter applies the exclude globs and the suggestion cap.
func (c *Client) filter(docs []Document) []Document {
	kept := make([]Document, 0, len(docs))
	for _, doc := range docs {
		if c.excluded(doc.ClickURI) {
			logger.Debug("suggestion excluded by pattern", "uri", doc.ClickURI)
			continue
		}
		kept = append(kept, doc)
	}
	if c.maxSuggestions > 0 && len(kept) > c.maxSuggestions {
		kept = kept[:c.maxSuggestions]
	}
	return kept
}

func (c *Client) excluded(clickURI string) bool {
	for _, pattern := range c.excludePatterns {
		ok, err := doublestar.Match(pattern, clickURI)
		if err != nil {
			logger.Warn("invalid exclude pattern", "pattern", pattern, "error", err)
			continue
		}
		if ok {
			return true
		}
	}
	return false
}

// get performs one GET against the service and decodes the JSON reply.
func (c *Client) get(ctx context.Context, path, subject, description, visitorID string, out any) error {
	q := url.Values{}
	q.Set("subject", subject)
	q.Set("description", description)
	q.Set("visitorId", visitorID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var re remoteError
		if json.Unmarshal(body, &re) == nil && re.Message != "" {
			return fmt.Errorf("service error %d: %s", re.StatusCode, re.Message)
		}
		return fmt.Errorf("service error: status %d", resp.StatusCode)
	}

	return json.Unmarshal(body, out)
}

// digest keys the response cache on the inputs that drive both fetches.
func digest(subject, description string) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(subject)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(description)
	return h.Sum64()
}
