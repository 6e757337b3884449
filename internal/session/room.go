package session

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRoom is an in-process room. Safe for concurrent use by many members.
type MemoryRoom struct {
	mu      sync.RWMutex
	members map[PeerID]*Member
	closed  bool

	eventBufferSize int
}

// NewMemoryRoom creates an empty room. eventBufferSize controls how many
// roster events a member can have pending before old ones are dropped.
func NewMemoryRoom(eventBufferSize int) *MemoryRoom {
	if eventBufferSize < 1 {
		eventBufferSize = 64 // Default buffer size
	}
	return &MemoryRoom{
		members:         make(map[PeerID]*Member),
		eventBufferSize: eventBufferSize,
	}
}

// Join adds a new member with a fresh id. It implements Joiner.
func (r *MemoryRoom) Join(ctx context.Context) (Channel, error) {
	m, err := r.JoinMember(ctx)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// JoinMember is like Join but returns the concrete member.
func (r *MemoryRoom) JoinMember(ctx context.Context) (*Member, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := &Member{
		id:     PeerID(uuid.NewString()),
		room:   r,
		state:  make(map[string]any),
		events: make(chan RoomEvent, r.eventBufferSize),
		done:   make(chan struct{}),
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrRoomClosed
	}
	others := r.snapshotLocked()
	r.members[m.id] = m
	r.mu.Unlock()

	for _, o := range others {
		o.send(PeerJoinedEvent{Peer: m.id})
	}
	return m, nil
}

// Count returns the number of members.
func (r *MemoryRoom) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// Close removes every member and rejects further joins.
func (r *MemoryRoom) Close() {
	r.mu.Lock()
	members := r.snapshotLocked()
	r.members = make(map[PeerID]*Member)
	r.closed = true
	r.mu.Unlock()

	for _, m := range members {
		m.close()
	}
}

func (r *MemoryRoom) leave(id PeerID) bool {
	r.mu.Lock()
	m, ok := r.members[id]
	if ok {
		delete(r.members, id)
	}
	others := r.snapshotLocked()
	r.mu.Unlock()

	if !ok {
		return false
	}
	m.close()
	for _, o := range others {
		o.send(PeerLeftEvent{Peer: id})
	}
	return true
}

func (r *MemoryRoom) snapshotLocked() []*Member {
	out := make([]*Member, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, m)
	}
	return out
}

// Member is one peer's membership in a MemoryRoom. It implements Channel.
type Member struct {
	id    PeerID
	room  *MemoryRoom
	state map[string]any // guarded by room.mu

	events   chan RoomEvent
	done     chan struct{}
	doneOnce sync.Once
}

// Self returns the member's id.
func (m *Member) Self() PeerID {
	return m.id
}

// Peers returns all member ids in the room, sorted.
func (m *Member) Peers() []PeerID {
	m.room.mu.RLock()
	defer m.room.mu.RUnlock()

	ids := make([]PeerID, 0, len(m.room.members))
	for id := range m.room.members {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Get returns peer's last published value for key.
func (m *Member) Get(peer PeerID, key string) (any, bool) {
	m.room.mu.RLock()
	defer m.room.mu.RUnlock()

	p, ok := m.room.members[peer]
	if !ok {
		return nil, false
	}
	v, ok := p.state[key]
	return v, ok
}

// Set stores value under key. Delivery is immediate in memory, so the
// reliable flag makes no difference here.
func (m *Member) Set(key string, value any, _ bool) error {
	m.room.mu.Lock()
	defer m.room.mu.Unlock()

	if _, ok := m.room.members[m.id]; !ok {
		return ErrNotJoined
	}
	m.state[key] = value
	return nil
}

// Leave removes the member from the room. Safe to call multiple times.
func (m *Member) Leave() {
	m.room.leave(m.id)
}

// Events returns roster events for this member.
func (m *Member) Events() <-chan RoomEvent {
	return m.events
}

// Done returns a channel that closes when the member leaves.
func (m *Member) Done() <-chan struct{} {
	return m.done
}

// send delivers an event without blocking.
// If the buffer is full, the oldest event is dropped.
func (m *Member) send(evt RoomEvent) {
	select {
	case <-m.done:
		return
	default:
	}

	select {
	case m.events <- evt:
	default:
		select {
		case <-m.events:
		default:
		}
		select {
		case m.events <- evt:
		default:
		}
	}
}

func (m *Member) close() {
	m.doneOnce.Do(func() {
		close(m.done)
	})
}
