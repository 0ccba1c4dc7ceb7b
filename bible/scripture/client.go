// Package scripture is a client for the API.Bible REST service.
package scripture

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public API.Bible endpoint.
const DefaultBaseURL = "https://api.scripture.api.bible/v1"

// DefaultTimeout applies when Config.Timeout is zero.
const DefaultTimeout = 15 * time.Second

// IntroChapter is the chapter number API.Bible uses for book introductions.
const IntroChapter = "intro"

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("scripture api: status %d: %s", e.StatusCode, e.Body)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Config configures a Client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client talks to API.Bible. It is safe for concurrent use.
type Client struct {
	base   string
	apiKey string
	http   *http.Client
}

// New returns a Client for cfg.
func New(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{base: base, apiKey: cfg.APIKey, http: hc}
}

// Chapter is one entry of a book's chapter list.
type Chapter struct {
	ID     string `json:"id"`
	Number string `json:"number"`
}

// BookInfo is one book of a bible.
type BookInfo struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	NameLong string    `json:"nameLong"`
	Chapters []Chapter `json:"chapters"`
}

// ChapterCount counts the chapters, introductions excluded.
func (b BookInfo) ChapterCount() int {
	n := 0
	for _, c := range b.Chapters {
		if c.Number != IntroChapter {
			n++
		}
	}
	return n
}

// SearchVerse is one search hit.
type SearchVerse struct {
	Reference string `json:"reference"`
	Text      string `json:"text"`
}

// SearchResult is the data of a search response.
type SearchResult struct {
	Query  string        `json:"query"`
	Total  int           `json:"total"`
	Verses []SearchVerse `json:"verses"`
}

// Books lists the books of bibleID with their chapters.
func (c *Client) Books(ctx context.Context, bibleID string) ([]BookInfo, error) {
	var books []BookInfo
	q := url.Values{"include-chapters": {"true"}}
	if err := c.get(ctx, c.path("bibles", bibleID, "books"), q, &books); err != nil {
		return nil, fmt.Errorf("listing books of %s: %w", bibleID, err)
	}
	return books, nil
}

// Verses returns the plain text of verses from..to of one chapter. Each
// verse starts with its number in square brackets.
func (c *Client) Verses(ctx context.Context, bibleID, bookID string, chapter int, from, to string) (string, error) {
	ch := strconv.Itoa(chapter)
	passage := bookID + "." + ch + "." + from + "-" + bookID + "." + ch + "." + to
	var data struct {
		Content string `json:"content"`
	}
	q := url.Values{"content-type": {"text"}}
	if err := c.get(ctx, c.path("bibles", bibleID, "verses", passage), q, &data); err != nil {
		return "", fmt.Errorf("fetching %s: %w", passage, err)
	}
	return data.Content, nil
}

// ChapterVerseCount returns the number of verses in one chapter.
func (c *Client) ChapterVerseCount(ctx context.Context, bibleID, bookID string, chapter int) (int, error) {
	id := bookID + "." + strconv.Itoa(chapter)
	var data []json.RawMessage
	if err := c.get(ctx, c.path("bibles", bibleID, "chapters", id, "verses"), nil, &data); err != nil {
		return 0, fmt.Errorf("counting verses of %s: %w", id, err)
	}
	return len(data), nil
}

// Search runs a phrase search. Fuzziness is 0, 1 or 2.
func (c *Client) Search(ctx context.Context, bibleID, phrase string, fuzziness int) (*SearchResult, error) {
	q := url.Values{
		"query":     {phrase},
		"fuzziness": {strconv.Itoa(fuzziness)},
	}
	var res SearchResult
	if err := c.get(ctx, c.path("bibles", bibleID, "search"), q, &res); err != nil {
		return nil, fmt.Errorf("searching %q: %w", phrase, err)
	}
	return &res, nil
}

func (c *Client) path(parts ...string) string {
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return c.base + "/" + strings.Join(parts, "/")
}

// get performs a GET and decodes the "data" member of the response into out.
func (c *Client) get(ctx context.Context, endpoint string, q url.Values, out interface{}) error {
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	envelope := struct {
		Data interface{} `json:"data"`
	}{Data: out}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
