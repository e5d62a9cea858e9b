// Package netease is a small client for the public NetEase Cloud Music
// search and lyric endpoints.
package netease

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound is returned when a song has no LRC lyric.
var ErrNotFound = errors.New("netease: lyric not found")

const (
	defaultBaseURL = "https://music.163.com/api"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0 Safari/537.36"
	referer        = "https://music.163.com/"

	// MaxLimit is the largest search page the endpoint honors.
	MaxLimit = 50
)

// Song is one search hit.
type Song struct {
	ID       int64
	Name     string
	Artists  []string
	Duration time.Duration // zero when the endpoint omitted it
}

// ArtistLine joins the artists for display.
func (s Song) ArtistLine() string {
	return strings.Join(s.Artists, ", ")
}

type searchResponse struct {
	Result struct {
		Songs []struct {
			ID      int64  `json:"id"`
			Name    string `json:"name"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
			Duration int64 `json:"duration"`
		} `json:"songs"`
	} `json:"result"`
}

type lyricResponse struct {
	Lrc struct {
		Lyric string `json:"lyric"`
	} `json:"lrc"`
}

// Client talks to the NetEase endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cookie     string
	maxRetries int
	retryDelay time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithCookie sends the given cookie with every request.
func WithCookie(cookie string) Option {
	return func(c *Client) { c.cookie = cookie }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithRetries sets how many times a request failing with a 5xx status is
// attempted, and the pause between attempts.
func WithRetries(n int, delay time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = max(n, 1)
		c.retryDelay = delay
	}
}

// New creates a client.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		maxRetries: 2,
		retryDelay: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search returns songs matching keywords. limit is clamped to [1, MaxLimit].
func (c *Client) Search(ctx context.Context, keywords string, limit int) ([]Song, error) {
	params := url.Values{}
	params.Set("s", keywords)
	params.Set("type", "1")
	params.Set("limit", strconv.Itoa(max(1, min(limit, MaxLimit))))

	var resp searchResponse
	if err := c.getJSON(ctx, "/search/get/web", params, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", keywords, err)
	}

	songs := make([]Song, 0, len(resp.Result.Songs))
	for _, s := range resp.Result.Songs {
		song := Song{
			ID:       s.ID,
			Name:     s.Name,
			Duration: time.Duration(s.Duration) * time.Millisecond,
		}
		for _, a := range s.Artists {
			song.Artists = append(song.Artists, a.Name)
		}
		songs = append(songs, song)
	}
	return songs, nil
}

// Lyric returns the LRC text of a song.
func (c *Client) Lyric(ctx context.Context, id int64) (string, error) {
	params := url.Values{}
	params.Set("os", "pc")
	params.Set("id", strconv.FormatInt(id, 10))
	params.Set("lv", "-1")
	params.Set("kv", "-1")
	params.Set("tv", "-1")

	var resp lyricResponse
	if err := c.getJSON(ctx, "/song/lyric", params, &resp); err != nil {
		return "", fmt.Errorf("lyric %d: %w", id, err)
	}
	if strings.TrimSpace(resp.Lrc.Lyric) == "" {
		return "", ErrNotFound
	}
	return resp.Lrc.Lyric, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", referer)
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// doRequestWithRetry retries transport errors and 5xx responses.
func (c *Client) doRequestWithRetry(req *http.Request) (*http.Response, error) {
	var lastErr error
	for attempt := range c.maxRetries {
		if attempt > 0 {
			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(c.retryDelay):
			}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("http request: %w", err)
			if req.Context().Err() != nil {
				return nil, lastErr
			}
			continue
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			resp.Body.Close()
			lastErr = fmt.Errorf("unexpected status: %s", resp.Status)
			continue
		}
		return resp, nil
	}
	return nil, lastErr
}
