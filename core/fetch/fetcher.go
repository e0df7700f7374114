// Package fetch implements the Fetcher interface.
// It performs a single HTTP GET per page with a browser-like identity,
// since many recipe sites refuse default client user agents.
package fetch

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"

	"github.com/gaurav-prasanna/recipecard/core"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultMaxBytes  = 5 * 1024 * 1024
)

// Options tune the HTTP client. Zero values fall back to the defaults.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
}

// HTTPFetcher fetches web pages via HTTP. It never retries.
type HTTPFetcher struct {
	client   *resty.Client
	maxBytes int64
}

// New creates an HTTPFetcher.
func New(opts Options) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))

	return &HTTPFetcher{client: client, maxBytes: opts.MaxBytes}
}

// Fetch retrieves the page at url and returns its body decoded to UTF-8.
// Transport failures are core.KindNetwork; non-2xx responses are
// core.KindUpstreamHTTP carrying the status and reason phrase.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return nil, core.NetworkError(url, err)
	}
	body := resp.RawBody()
	defer body.Close()

	code := resp.StatusCode()
	if code < 200 || code >= 300 {
		return nil, core.UpstreamHTTPError(url, code, reasonPhrase(resp.Status(), code))
	}

	data, err := io.ReadAll(io.LimitReader(body, f.maxBytes+1))
	if err != nil {
		return nil, core.NetworkError(url, fmt.Errorf("reading response body: %w", err))
	}
	truncated := int64(len(data)) > f.maxBytes
	if truncated {
		data = data[:f.maxBytes]
	}

	contentType := resp.Header().Get("Content-Type")
	html, err := decode(data, contentType)
	if err != nil {
		return nil, core.NetworkError(url, err)
	}

	finalURL := url
	if raw := resp.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL != nil {
		finalURL = raw.Request.URL.String()
	}

	return &core.FetchResult{
		URL:         url,
		FinalURL:    finalURL,
		StatusCode:  code,
		ContentType: contentType,
		HTML:        html,
		Truncated:   truncated,
	}, nil
}

// decode converts the body to UTF-8 using the declared or sniffed charset.
func decode(data []byte, contentType string) (string, error) {
	enc, _, _ := charset.DetermineEncoding(data, contentType)
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("decoding body: %w", err)
		}
		out = data
	}
	return string(out), nil
}

// reasonPhrase strips the numeric code from a status line like "404 Not Found".
func reasonPhrase(status string, code int) string {
	return strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
}
