package reference

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/atomiclab/atomic/internal/domain"
	"github.com/atomiclab/atomic/internal/errors"
)

// Client queries a remote reference database over HTTP and falls back to
// the embedded store when the remote is unreachable or errors. Lookup
// failures therefore degrade rather than fail the caller.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	fallback *Store
}

// NewClient creates a remote-backed provider. The API key is read from
// the given environment variable; an empty variable name or value leaves
// requests unauthenticated.
func NewClient(endpoint, apiKeyEnvVar string, timeout time.Duration, fallback *Store) *Client {
	apiKey := ""
	if apiKeyEnvVar != "" {
		apiKey = os.Getenv(apiKeyEnvVar)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
		fallback: fallback,
	}
}

// Lookup queries the remote database; on any transport or decode failure
// it logs a warning and serves the embedded dataset instead.
func (c *Client) Lookup(ctx context.Context, element, face string) ([]domain.ReferenceRecord, error) {
	records, err := c.remoteLookup(ctx, element, face)
	if err == nil {
		return records, nil
	}

	zerolog.Ctx(ctx).Warn().
		Err(err).
		Str("element", element).
		Str("face", face).
		Msg("remote reference lookup failed, using embedded data")

	return c.fallback.Lookup(ctx, element, face)
}

func (c *Client) remoteLookup(ctx context.Context, element, face string) ([]domain.ReferenceRecord, error) {
	if c.endpoint == "" {
		return nil, errors.Wrap(errors.ErrReferenceLookup, "no endpoint configured")
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrReferenceLookup, "endpoint %q: %v", c.endpoint, err)
	}
	q := u.Query()
	q.Set("element", element)
	q.Set("face", face)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "reference lookup: build request")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "reference lookup")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return []domain.ReferenceRecord{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(errors.ErrReferenceLookup,
			"unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errors.Wrap(err, "reference lookup: read body")
	}

	var records []domain.ReferenceRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, errors.Wrap(err, "reference lookup: decode body")
	}
	return records, nil
}

// FormatRecord renders a record as a single human-readable line for CLI
// listings.
func FormatRecord(r domain.ReferenceRecord) string {
	return fmt.Sprintf("%s(%s): d12 %+.1f%%, d23 %+.1f%% [%s] %s",
		r.Element, r.Face, r.D12ChangePct, r.D23ChangePct, r.Method, r.Citation)
}
