package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"media-catalog/internal/logging"

	"github.com/PuerkitoBio/goquery"
)

// maxResponseBytes caps how much of a proxy response is read into memory.
const maxResponseBytes = 32 << 20

// maxBodyInError caps how much of an error body is kept on a Fault.
const maxBodyInError = 512

// ClientConfig holds the settings shared by both listers.
type ClientConfig struct {
	// Endpoint is the full URL of the proxy list route.
	Endpoint string
	// HTTPClient defaults to a client with no timeout of its own; callers
	// bound requests through the context.
	HTTPClient *http.Client
	// Now defaults to time.Now and stamps entries without an upload time.
	Now func() time.Time
}

// proxyClient performs a GET against a list proxy and normalizes the
// {"blobs": [...]} envelope. It holds no mutable state.
type proxyClient struct {
	backend    string
	endpoint   string
	httpClient *http.Client
	now        func() time.Time
}

func newProxyClient(backend string, cfg ClientConfig) proxyClient {
	c := proxyClient{
		backend:    backend,
		endpoint:   cfg.Endpoint,
		httpClient: cfg.HTTPClient,
		now:        cfg.Now,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

type listResponse struct {
	Blobs []rawEntry `json:"blobs"`
}

type rawEntry struct {
	ID          looseString `json:"id"`
	URL         string      `json:"url"`
	Pathname    string      `json:"pathname"`
	Size        looseNumber `json:"size"`
	UploadedAt  uploadTime  `json:"uploadedAt"`
	ContentType string      `json:"contentType"`
}

// errorEnvelope is the failure body both proxies send.
type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details"`
}

// uploadTime accepts an RFC 3339 string or Unix milliseconds. Anything else
// leaves it zero so the entry is stamped with the current time.
type uploadTime struct {
	time.Time
}

func (u *uploadTime) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		if t, err := time.Parse(time.RFC3339Nano, str); err == nil {
			u.Time = t
		}
		return nil
	}

	var ms float64
	if err := json.Unmarshal(data, &ms); err == nil && ms > 0 {
		u.Time = time.UnixMilli(int64(ms)).UTC()
	}
	return nil
}

// looseString accepts a JSON string or number. Other values leave it empty.
type looseString string

func (l *looseString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*l = looseString(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*l = looseString(n.String())
	}
	return nil
}

// looseNumber accepts a JSON number or a numeric string. Other values leave
// it zero.
type looseNumber float64

func (l *looseNumber) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		*l = looseNumber(f)
	}
	return nil
}

// requestURL returns the endpoint with the given query parameter set.
func (c proxyClient) requestURL(key, value string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("endpoint %q is not an absolute URL", c.endpoint)
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// list sends req and returns normalized entries or a *Fault.
func (c proxyClient) list(ctx context.Context, req *http.Request, lr ListRequest) ([]Entry, error) {
	start := time.Now()
	entries, err := c.doList(ctx, req, lr)
	observe(c.backend, lr.Kind.String(), time.Since(start).Seconds(), len(entries), err)

	if err != nil {
		logging.Debug("%s list failed after %v: %v", c.backend, time.Since(start), err)
		return nil, err
	}
	logging.Debug("%s list returned %d entries in %v", c.backend, len(entries), time.Since(start))
	return entries, nil
}

func (c proxyClient) doList(ctx context.Context, req *http.Request, lr ListRequest) ([]Entry, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportFault(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, c.transportFault(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.statusFault(resp, body)
	}

	if isHTML(resp.Header.Get("Content-Type"), body) {
		detail := "proxy returned HTML instead of JSON; the list function may not be deployed"
		if title := htmlTitle(body); title != "" {
			detail = fmt.Sprintf("%s (page title %q)", detail, title)
		}
		return nil, &Fault{Kind: FaultEndpointUnavailable, Backend: c.backend, Detail: detail}
	}

	var parsed listResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &Fault{
			Kind:    FaultInvalidResponse,
			Backend: c.backend,
			Detail:  "invalid JSON response from list endpoint",
			Err:     err,
		}
	}

	return c.normalize(parsed.Blobs, lr.BaseURL), nil
}

func (c proxyClient) normalize(raw []rawEntry, baseURL string) []Entry {
	entries := make([]Entry, 0, len(raw))
	for _, r := range raw {
		entry := Entry{
			ID:          string(r.ID),
			URL:         r.URL,
			Pathname:    r.Pathname,
			ContentType: r.ContentType,
			UploadedAt:  r.UploadedAt.Time,
		}
		if r.Size > 0 {
			entry.Size = int64(r.Size)
		}
		if entry.UploadedAt.IsZero() {
			entry.UploadedAt = c.now()
		}
		if entry.URL != "" && !strings.HasPrefix(entry.URL, "http") && baseURL != "" {
			entry.URL = strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(entry.Pathname, "/")
		}
		if entry.URL == "" {
			entry.URL = entry.Pathname
		}
		entries = append(entries, entry)
	}
	return entries
}

func (c proxyClient) transportFault(ctx context.Context, err error) *Fault {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return &Fault{Kind: FaultUpstreamTimeout, Backend: c.backend, Err: err}
	}
	return &Fault{
		Kind:    FaultEndpointUnavailable,
		Backend: c.backend,
		Detail:  "list endpoint unreachable",
		Err:     err,
	}
}

func (c proxyClient) statusFault(resp *http.Response, body []byte) *Fault {
	text := strings.TrimSpace(string(body))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	if len(text) > maxBodyInError {
		text = text[:maxBodyInError] + "..."
	}

	fault := &Fault{
		Kind:       FaultBackendHTTP,
		Backend:    c.backend,
		StatusCode: resp.StatusCode,
		Body:       text,
	}

	var envelope errorEnvelope
	if json.Unmarshal(body, &envelope) == nil {
		fault.Detail = envelope.Details
		if strings.Contains(strings.ToLower(envelope.Error), "timeout") {
			fault.Kind = FaultUpstreamTimeout
		}
	}
	if resp.StatusCode == http.StatusGatewayTimeout {
		fault.Kind = FaultUpstreamTimeout
	}
	return fault
}

// isHTML reports whether a 2xx response is an HTML page rather than JSON,
// which is what hosting platforms serve when the function is missing.
func isHTML(contentType string, body []byte) bool {
	if !strings.Contains(strings.ToLower(contentType), "application/json") {
		return true
	}
	trimmed := strings.ToLower(string(bytes.TrimSpace(body[:min(len(body), 64)])))
	return strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html")
}

func htmlTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
