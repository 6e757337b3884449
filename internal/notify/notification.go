// Package notify holds the single pending user-facing message and its
// auto-clear timer.
package notify

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind classifies a notification for styling.
type Kind int

const (
	KindInfo Kind = iota
	KindAchievement
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInfo:
		return "info"
	case KindAchievement:
		return "achievement"
	default:
		return "unknown"
	}
}

// Notification is an ephemeral message. ID distinguishes two notifications
// with the same title so a stale timer never clears a newer one.
type Notification struct {
	ID    uuid.UUID
	Title string
	Kind  Kind
}

// New creates a notification with a fresh identity.
func New(kind Kind, title string) Notification {
	return Notification{ID: uuid.New(), Title: title, Kind: kind}
}

// Info creates an info notification.
func Info(title string) Notification {
	return New(KindInfo, title)
}

// Achievement creates an achievement notification.
func Achievement(title string) Notification {
	return New(KindAchievement, title)
}

func (n Notification) String() string {
	return fmt.Sprintf("[%s] %s", n.Kind, n.Title)
}
