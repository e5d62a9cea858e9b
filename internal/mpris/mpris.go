//go:build linux

package mpris

import (
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/rs/zerolog"

	"github.com/llehouerou/lyricsync/internal/transport"
)

// Adapter serves the MediaPlayer2 interfaces for a transport.
type Adapter struct {
	player *player
	server *server.Server
}

// New starts serving t on the session bus. Failing to reach the bus is
// logged; the adapter then does nothing.
func New(t transport.Interface, log zerolog.Logger) (*Adapter, error) {
	p := &player{transport: t}
	a := &Adapter{
		player: p,
		server: server.NewServer("lyricsync", root{}, p),
	}
	go func() {
		if err := a.server.Listen(); err != nil {
			log.Warn().Err(err).Msg("mpris server stopped")
		}
	}()
	return a, nil
}

// SetTrack changes the track reported in the metadata.
func (a *Adapter) SetTrack(t Track) {
	a.player.setTrack(t)
}

// Close stops serving.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

type root struct{}

func (root) Raise() error                { return nil }
func (root) Quit() error                 { return nil }
func (root) CanQuit() (bool, error)      { return false, nil }
func (root) CanRaise() (bool, error)     { return false, nil }
func (root) HasTrackList() (bool, error) { return false, nil }
func (root) Identity() (string, error)   { return "LyricSync", nil }

//nolint:revive // Method name required by interface.
func (root) SupportedUriSchemes() ([]string, error) { return []string{"file"}, nil }

func (root) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/ogg", "audio/mp4", "audio/wav"}, nil
}

// player drives the transport. There is no queue, so next and previous do
// nothing.
type player struct {
	transport transport.Interface

	mu    sync.Mutex
	track Track
}

func (p *player) setTrack(t Track) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.track = t
}

func (p *player) loaded() bool {
	return p.transport.State() != transport.Stopped
}

func (p *player) Next() error     { return nil }
func (p *player) Previous() error { return nil }

func (p *player) Pause() error {
	p.transport.Pause()
	return nil
}

func (p *player) PlayPause() error {
	p.transport.Toggle()
	return nil
}

func (p *player) Play() error {
	p.transport.Resume()
	return nil
}

// Stop rewinds instead of unloading: the editor keeps the file open.
func (p *player) Stop() error {
	p.transport.Pause()
	p.transport.SeekTo(0)
	return nil
}

func (p *player) Seek(offset types.Microseconds) error {
	p.transport.Seek(time.Duration(offset) * time.Microsecond)
	return nil
}

func (p *player) SetPosition(_ string, position types.Microseconds) error {
	p.transport.SeekTo(time.Duration(position) * time.Microsecond)
	return nil
}

//nolint:revive // Method name required by interface.
func (p *player) OpenUri(string) error { return nil }

func (p *player) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.transport.State() {
	case transport.Playing:
		return types.PlaybackStatusPlaying, nil
	case transport.Paused:
		return types.PlaybackStatusPaused, nil
	case transport.Stopped:
	}
	return types.PlaybackStatusStopped, nil
}

func (p *player) Rate() (float64, error)        { return 1, nil }
func (p *player) SetRate(float64) error         { return nil }
func (p *player) MinimumRate() (float64, error) { return 1, nil }
func (p *player) MaximumRate() (float64, error) { return 1, nil }
func (p *player) Volume() (float64, error)      { return 1, nil }
func (p *player) SetVolume(float64) error       { return nil }

func (p *player) Metadata() (types.Metadata, error) {
	p.mu.Lock()
	t := p.track
	p.mu.Unlock()
	if t.Path == "" {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(trackID(t.Path)),
		Length:  types.Microseconds(t.Duration.Microseconds()),
		Title:   t.Title,
		Album:   t.Album,
	}
	if t.Artist != "" {
		meta.Artist = []string{t.Artist}
	}
	if art := FindAlbumArt(t.Path); art != "" {
		meta.ArtUrl = "file://" + art
	}
	return meta, nil
}

func (p *player) Position() (int64, error) {
	return p.transport.Position().Microseconds(), nil
}

func (p *player) CanGoNext() (bool, error)     { return false, nil }
func (p *player) CanGoPrevious() (bool, error) { return false, nil }
func (p *player) CanPlay() (bool, error)       { return p.loaded(), nil }
func (p *player) CanPause() (bool, error)      { return p.loaded(), nil }
func (p *player) CanSeek() (bool, error)       { return p.loaded(), nil }
func (p *player) CanControl() (bool, error)    { return true, nil }
