// Package session connects the game to a multiplayer room: readiness after
// the join attempt, publishing the local avatar, and projecting remote peers.
//
// The room itself is a key-value store per peer with last-write-wins
// semantics. MemoryRoom is the in-process implementation shared by every
// SSH session of a server.
package session

import (
	"context"
	"errors"
)

// PeerID uniquely identifies a member of a room.
type PeerID string

// State keys every peer publishes.
const (
	KeyPosition = "pos"    // core.Vec3
	KeyRotation = "rot"    // float64 yaw, or a core.Vec3 whose Y is the yaw
	KeyColor    = "color"  // #rrggbb string
	KeyAvatar   = "avatar" // core.AvatarKind
)

var (
	// ErrNotJoined is returned when using a channel after leaving the room.
	ErrNotJoined = errors.New("session: not joined")
	// ErrRoomClosed is returned when joining a room that has shut down.
	ErrRoomClosed = errors.New("session: room closed")
)

// Channel is one peer's view of a room.
type Channel interface {
	// Self returns the local peer id.
	Self() PeerID

	// Peers returns the ids of all peers in the room, the local peer included.
	Peers() []PeerID

	// Get returns the last value peer published under key.
	Get(peer PeerID, key string) (any, bool)

	// Set publishes a value under key for the local peer. Reliable values
	// are ones that must not be lost, such as cosmetics; transforms are
	// sent unreliably and may be superseded.
	Set(key string, value any, reliable bool) error
}

// Joiner performs a single attempt to enter a room.
type Joiner interface {
	Join(ctx context.Context) (Channel, error)
}

// JoinerFunc adapts a function to Joiner.
type JoinerFunc func(ctx context.Context) (Channel, error)

// Join calls f(ctx).
func (f JoinerFunc) Join(ctx context.Context) (Channel, error) {
	return f(ctx)
}

// RoomEvent is a roster change delivered to room members.
type RoomEvent interface {
	roomEvent()
}

// PeerJoinedEvent is sent to existing members when a peer joins.
type PeerJoinedEvent struct {
	Peer PeerID
}

func (PeerJoinedEvent) roomEvent() {}

// PeerLeftEvent is sent to remaining members when a peer leaves.
type PeerLeftEvent struct {
	Peer PeerID
}

func (PeerLeftEvent) roomEvent() {}
