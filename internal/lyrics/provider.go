package lyrics

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/llehouerou/lyricsync/internal/lrclib"
	"github.com/llehouerou/lyricsync/internal/netease"
)

// Candidate is one search result from a provider.
type Candidate struct {
	Provider string
	ID       string
	Title    string
	Artist   string
	Duration time.Duration // 0 when the provider does not know

	// Lyrics is set when the provider returned them with the search result
	// or after they were prefetched.
	Lyrics string
}

// Label renders the candidate for a result list.
func (c Candidate) Label() string {
	return fmt.Sprintf("%s - %s  (%.1fs)  [%s:%s]",
		c.Title, c.Artist, c.Duration.Seconds(), c.Provider, c.ID)
}

// Provider is a lyric source.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]Candidate, error)
	Lyrics(ctx context.Context, c Candidate) (string, error)
}

// Provider names accepted by NewProvider.
const (
	ProviderNetease = "netease"
	ProviderLRCLib  = "lrclib"
)

// NeteaseProvider adapts a netease.Client.
type NeteaseProvider struct {
	Client *netease.Client
}

func (NeteaseProvider) Name() string { return ProviderNetease }

func (p NeteaseProvider) Search(ctx context.Context, query string, limit int) ([]Candidate, error) {
	songs, err := p.Client.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Candidate, 0, len(songs))
	for _, s := range songs {
		out = append(out, Candidate{
			Provider: ProviderNetease,
			ID:       strconv.FormatInt(s.ID, 10),
			Title:    s.Name,
			Artist:   s.ArtistLine(),
			Duration: s.Duration,
		})
	}
	return out, nil
}

func (p NeteaseProvider) Lyrics(ctx context.Context, c Candidate) (string, error) {
	id, err := strconv.ParseInt(c.ID, 10, 64)
	if err != nil {
		return "", fmt.Errorf("netease id %q: %w", c.ID, err)
	}
	text, err := p.Client.Lyric(ctx, id)
	if errors.Is(err, netease.ErrNotFound) {
		return "", ErrNoLyrics
	}
	return text, err
}

// LRCLibProvider adapts an lrclib.Client. Search results carry their lyrics,
// synced preferred over plain.
type LRCLibProvider struct {
	Client *lrclib.Client
}

func (LRCLibProvider) Name() string { return ProviderLRCLib }

func (p LRCLibProvider) Search(ctx context.Context, query string, limit int) ([]Candidate, error) {
	results, err := p.Client.Search(ctx, query)
	if errors.Is(err, lrclib.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := make([]Candidate, 0, min(len(results), limit))
	for i := range results {
		if len(out) == limit {
			break
		}
		r := &results[i]
		if r.Instrumental {
			continue
		}
		c := Candidate{
			Provider: ProviderLRCLib,
			ID:       strconv.Itoa(r.ID),
			Title:    r.TrackName,
			Artist:   r.ArtistName,
			Duration: time.Duration(r.Duration * float64(time.Second)),
		}
		switch {
		case r.HasSyncedLyrics():
			c.Lyrics = r.SyncedLyrics
		case r.HasPlainLyrics():
			c.Lyrics = r.PlainLyrics
		}
		out = append(out, c)
	}
	return out, nil
}

func (p LRCLibProvider) Lyrics(_ context.Context, c Candidate) (string, error) {
	if strings.TrimSpace(c.Lyrics) == "" {
		return "", ErrNoLyrics
	}
	return c.Lyrics, nil
}

// ProviderConfig carries the settings NewProvider needs.
type ProviderConfig struct {
	NeteaseCookie string
	Timeout       time.Duration
}

// NewProvider builds a provider by name.
func NewProvider(name string, cfg ProviderConfig) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ProviderNetease:
		opts := []netease.Option{netease.WithCookie(cfg.NeteaseCookie)}
		if cfg.Timeout > 0 {
			opts = append(opts, netease.WithTimeout(cfg.Timeout))
		}
		return NeteaseProvider{Client: netease.New(opts...)}, nil
	case ProviderLRCLib:
		var opts []lrclib.Option
		if cfg.Timeout > 0 {
			opts = append(opts, lrclib.WithTimeout(cfg.Timeout))
		}
		return LRCLibProvider{Client: lrclib.New(opts...)}, nil
	}
	return nil, fmt.Errorf("unknown lyrics provider %q", name)
}
