package catalogapi

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"taghazout/config"
	"taghazout/infras/otel"
	"taghazout/shared/constant"
	"taghazout/shared/dto"
)

const (
	ResourceListings = "listings"
	ResourcePackages = "packages"
	ResourcePosts    = "posts"
)

const (
	defaultTimeout  = 20 * time.Second
	defaultAttempts = 4
	defaultBaseWait = 200 * time.Millisecond
	maxErrorBody    = 4096
	userAgent       = "taghazout-ingest/1.0"
)

var (
	ErrNotConfigured = errors.New("catalog api base url is not configured")
	ErrNotFound      = errors.New("catalog api: not found")
	ErrUnauthorized  = errors.New("catalog api: unauthorized")
)

// StatusError is a non-success response. 429 and 5xx are transient, every other
// status is a permanent rejection.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("catalog api: status %d", e.Code)
	}

	return fmt.Sprintf("catalog api: status %d: %s", e.Code, e.Body)
}

func (e *StatusError) Transient() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= http.StatusInternalServerError
}

// IsTransient reports whether err came from the network or a retryable status.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Transient()
	}

	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnauthorized) || errors.Is(err, context.Canceled) {
		return false
	}

	var urlErr *url.Error

	return errors.As(err, &urlErr) || errors.Is(err, context.DeadlineExceeded)
}

// Page is one page of a remote catalog export.
type Page[T any] struct {
	Data []T            `json:"data"`
	Meta dto.Pagination `json:"meta"`
}

// Last reports whether no page follows this one.
func (p Page[T]) Last() bool {
	return len(p.Data) == 0 || p.Meta.Page >= p.Meta.TotalPage
}

type Client struct {
	base     *url.URL
	key      string
	hc       *http.Client
	limiter  *rate.Limiter
	attempts int
	baseWait time.Duration
	otel     otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) (*Client, error) {
	if cfg.Catalog.APIBaseURL == "" {
		return nil, ErrNotConfigured
	}

	base, err := url.Parse(strings.TrimRight(cfg.Catalog.APIBaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid catalog api base url: %w", err)
	}

	rps := max(cfg.Catalog.APIRequestsPerSec, 1)

	return &Client{
		base:     base,
		key:      cfg.Catalog.APIKey,
		hc:       &http.Client{Timeout: defaultTimeout},
		limiter:  rate.NewLimiter(rate.Limit(rps), rps),
		attempts: defaultAttempts,
		baseWait: defaultBaseWait,
		otel:     otel,
	}, nil
}

// List fetches one page of resource and decodes its items as T.
func List[T any](ctx context.Context, c *Client, resource string, page, limit int) (Page[T], error) {
	query := url.Values{}
	query.Set(constant.RequestParamPage, strconv.Itoa(page))
	query.Set(constant.RequestParamLimit, strconv.Itoa(limit))

	var out Page[T]

	if err := c.Get(ctx, resource, query, &out); err != nil {
		return Page[T]{}, err
	}

	return out, nil
}

// Get performs a rate limited GET against the base URL and decodes the JSON body into out.
// Transient failures are retried with backoff, honoring Retry-After.
func (c *Client) Get(ctx context.Context, resource string, query url.Values, out any) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelCatalogAPIScopeName, constant.OtelCatalogAPIScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	target := c.base.JoinPath(resource)
	target.RawQuery = query.Encode()

	scope.SetAttribute("url", target.String())

	for attempt := 0; attempt < c.attempts; attempt++ {
		if err = c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("catalog api rate limiter: %w", err)
		}

		var wait time.Duration

		wait, err = c.do(ctx, target.String(), out)
		if err == nil || !IsTransient(err) || attempt == c.attempts-1 {
			return err
		}

		if wait == 0 {
			wait = backoff(c.baseWait, attempt)
		}

		log.Warn().Err(err).Str("resource", resource).Int("attempt", attempt+1).Dur("wait", wait).Msg("catalog api request failed, retrying")

		if !sleepCtx(ctx, wait) {
			return errors.Join(err, ctx.Err())
		}
	}

	return err
}

// do sends a single request. The returned duration is the server's Retry-After hint.
func (c *Client) do(ctx context.Context, target string, out any) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build catalog api request: %w", err)
	}

	if c.key != "" {
		req.Header.Set(constant.RequestHeaderAPIKey, c.key)
	}

	req.Header.Set("Accept", constant.ContentTypeJSON)
	req.Header.Set(constant.RequestHeaderUserAgent, userAgent)

	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, err //nolint:wrapcheck
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return 0, nil
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return 0, fmt.Errorf("failed to decode catalog api response: %w", err)
		}

		return 0, nil
	case resp.StatusCode == http.StatusNotFound:
		return 0, ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return 0, ErrUnauthorized
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	return retryAfter(resp), &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

// retryAfter parses Retry-After in seconds or HTTP-date form; zero when absent.
func retryAfter(resp *http.Response) time.Duration {
	header := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if header == "" {
		return 0
	}

	if secs, err := strconv.Atoi(header); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}

	if at, err := http.ParseTime(header); err == nil {
		return max(time.Until(at), 0)
	}

	return 0
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// backoff doubles base each attempt and adds up to 50% jitter.
func backoff(base time.Duration, attempt int) time.Duration {
	wait := base << attempt

	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return wait
	}

	return wait + time.Duration(float64(b[0])/255.0*0.5*float64(wait))
}
