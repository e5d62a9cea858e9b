package lyrics

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/lyricsync/internal/lrc"
)

// ErrNoLyrics is returned when no provider produced lyrics.
var ErrNoLyrics = errors.New("no lyrics found")

const (
	defaultLimit    = 20
	maxAutoAttempts = 3
	prefetchWorkers = 4
)

// Result is a downloaded document ready to be shown and saved.
type Result struct {
	Text      string // header, newline, lyrics
	Candidate Candidate
	Match     string
}

// Downloader searches the configured providers in order.
type Downloader struct {
	providers []Provider
	limit     int
	timeout   time.Duration
	log       zerolog.Logger
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithLimit sets the per-provider search limit.
func WithLimit(n int) Option {
	return func(d *Downloader) {
		if n > 0 {
			d.limit = n
		}
	}
}

// WithTimeout bounds each Search, Auto or Prefetch call.
func WithTimeout(t time.Duration) Option {
	return func(d *Downloader) { d.timeout = t }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Downloader) { d.log = l }
}

// NewDownloader creates a downloader over providers, queried in order.
func NewDownloader(providers []Provider, opts ...Option) *Downloader {
	d := &Downloader{
		providers: providers,
		limit:     defaultLimit,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Downloader) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d.timeout)
}

// Search queries every provider concurrently. Results keep provider order and
// are then ordered by closeness to duration when it is known. A provider error
// is only returned when every provider failed.
func (d *Downloader) Search(ctx context.Context, query string, duration time.Duration) ([]Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	found := make([][]Candidate, len(d.providers))
	errs := make([]error, len(d.providers))

	var g errgroup.Group
	for i, p := range d.providers {
		g.Go(func() error {
			cands, err := p.Search(ctx, query, d.limit)
			if err != nil {
				d.log.Warn().Err(err).Str("provider", p.Name()).Str("query", query).Msg("lyrics search failed")
				errs[i] = fmt.Errorf("%s: %w", p.Name(), err)
				return nil
			}
			found[i] = cands
			return nil
		})
	}
	_ = g.Wait()

	var all []Candidate
	for _, cands := range found {
		all = append(all, cands...)
	}
	if len(all) == 0 {
		if err := errors.Join(errs...); err != nil && !anySucceeded(errs) {
			return nil, err
		}
		return nil, nil
	}

	SortByDuration(all, duration)
	d.log.Debug().Str("query", query).Int("results", len(all)).Msg("lyrics search")
	return all, nil
}

func anySucceeded(errs []error) bool {
	for _, err := range errs {
		if err == nil {
			return true
		}
	}
	return false
}

// SortByDuration orders candidates by distance to target, stable for ties.
// Unknown candidate durations count as zero. A zero target leaves the order
// unchanged.
func SortByDuration(cands []Candidate, target time.Duration) {
	if target <= 0 {
		return
	}
	dist := func(c Candidate) time.Duration {
		if c.Duration > target {
			return c.Duration - target
		}
		return target - c.Duration
	}
	slices.SortStableFunc(cands, func(a, b Candidate) int {
		return cmp.Compare(dist(a), dist(b))
	})
}

func (d *Downloader) provider(name string) Provider {
	for _, p := range d.providers {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// Lyrics returns the candidate's lyrics, fetching them if needed.
func (d *Downloader) Lyrics(ctx context.Context, c Candidate) (string, error) {
	if strings.TrimSpace(c.Lyrics) != "" {
		return c.Lyrics, nil
	}
	p := d.provider(c.Provider)
	if p == nil {
		return "", fmt.Errorf("unknown lyrics provider %q", c.Provider)
	}
	text, err := p.Lyrics(ctx, c)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoLyrics
	}
	return text, nil
}

// Prefetch fetches lyrics for every candidate and drops those without any,
// so a result list only offers entries that can be used.
func (d *Downloader) Prefetch(ctx context.Context, cands []Candidate) []Candidate {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	filled := make([]Candidate, len(cands))
	ok := make([]bool, len(cands))

	var g errgroup.Group
	g.SetLimit(prefetchWorkers)
	for i, c := range cands {
		g.Go(func() error {
			text, err := d.Lyrics(ctx, c)
			if err != nil {
				if !errors.Is(err, ErrNoLyrics) {
					d.log.Debug().Err(err).Str("provider", c.Provider).Str("id", c.ID).Msg("lyrics prefetch failed")
				}
				return nil
			}
			c.Lyrics = text
			filled[i] = c
			ok[i] = true
			return nil
		})
	}
	_ = g.Wait()

	out := make([]Candidate, 0, len(cands))
	for i := range filled {
		if ok[i] {
			out = append(out, filled[i])
		}
	}
	return out
}

// Auto searches by title only and takes the first of the closest candidates
// that has lyrics.
func (d *Downloader) Auto(ctx context.Context, meta Metadata) (Result, error) {
	if strings.TrimSpace(meta.Title) == "" {
		return Result{}, ErrNoLyrics
	}
	cands, err := d.Search(ctx, meta.Title, meta.Duration)
	if err != nil {
		return Result{}, err
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()
	for i, c := range cands {
		if i == maxAutoAttempts {
			break
		}
		text, err := d.Lyrics(ctx, c)
		if err != nil {
			d.log.Debug().Err(err).Str("provider", c.Provider).Str("id", c.ID).Msg("candidate skipped")
			continue
		}
		c.Lyrics = text
		d.log.Info().
			Str("title", meta.Title).
			Str("provider", c.Provider).
			Str("id", c.ID).
			Dur("duration", c.Duration).
			Msg("lyrics downloaded")
		return Compose(meta, c, meta.MatchTag()), nil
	}
	return Result{}, ErrNoLyrics
}

// Compose prefixes the candidate's lyrics with a header describing meta.
func Compose(meta Metadata, c Candidate, match string) Result {
	length := -1.0
	if meta.Duration > 0 {
		length = meta.Duration.Seconds()
	}
	header := lrc.BuildHeader(meta.Title, meta.Artist, length, match)
	return Result{
		Text:      header + "\n" + c.Lyrics,
		Candidate: c,
		Match:     match,
	}
}
