// Package notify sends desktop notifications over D-Bus.
package notify

import "fmt"

// Urgency levels of the freedesktop notification protocol.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification is one desktop notification.
type Notification struct {
	Title      string
	Body       string
	Icon       string // image path or icon name
	Timeout    int32  // ms, -1 = server default, 0 = never expire
	ReplacesID uint32 // 0 = new notification
	Urgency    Urgency
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends n and returns its id, 0 when notifications are unavailable.
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}

// Nop drops every notification.
type Nop struct{}

func (Nop) Notify(Notification) (uint32, error) { return 0, nil }
func (Nop) Close(uint32) error                  { return nil }

// LyricsSaved announces lyrics written for a track.
func LyricsSaved(title, artist, provider, icon string) Notification {
	body := title
	if artist != "" {
		body = fmt.Sprintf("%s - %s", artist, title)
	}
	if provider != "" {
		body += "\nfrom " + provider
	}
	return Notification{
		Title:   "Lyrics downloaded",
		Body:    body,
		Icon:    icon,
		Timeout: -1,
		Urgency: UrgencyLow,
	}
}
