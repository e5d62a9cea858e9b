//go:build !linux

package mpris

import (
	"github.com/rs/zerolog"

	"github.com/llehouerou/lyricsync/internal/transport"
)

// Adapter does nothing outside Linux.
type Adapter struct{}

// New returns an inert adapter.
func New(transport.Interface, zerolog.Logger) (*Adapter, error) {
	return &Adapter{}, nil
}

// SetTrack does nothing.
func (a *Adapter) SetTrack(Track) {}

// Close does nothing.
func (a *Adapter) Close() error { return nil }
