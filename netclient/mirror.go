package netclient

import (
	"sort"

	"arenagame/protocol"
)

type EventKind int

const (
	// Joined carries the id and spawn the server assigned
	Joined EventKind = iota
	// Self carries this client's authoritative record from a state frame
	Self
	Damaged
	Died
	Respawned
	Scored
	ChatReceived
	ServerError
)

type Event struct {
	Kind   EventKind
	Info   protocol.PlayerInfo
	Amount int
	From   string
	Text   string
}

// Mirror is the client's copy of the server state. It separates this
// client's own record from everyone else's and reports changes to it.
type Mirror struct {
	ID          string
	Self        protocol.PlayerInfo
	Remotes     map[string]protocol.PlayerInfo
	Projectiles []protocol.ProjectileInfo
	// Timestamp of the newest state frame applied
	Timestamp int64
	joined    bool
}

func NewMirror() *Mirror {
	return &Mirror{Remotes: make(map[string]protocol.PlayerInfo)}
}

func (m *Mirror) Joined() bool {
	return m.joined
}

// Apply folds one decoded server message into the mirror
func (m *Mirror) Apply(msg any) []Event {
	switch v := msg.(type) {
	case *protocol.Init:
		m.ID = v.PlayerID
		m.Self = v.Player
		m.joined = true
		return []Event{{Kind: Joined, Info: v.Player}}
	case *protocol.State:
		return m.applyState(v)
	case *protocol.Chat:
		return []Event{{Kind: ChatReceived, From: v.PlayerID, Text: v.Message}}
	case *protocol.Error:
		return []Event{{Kind: ServerError, Text: v.Message}}
	}
	return nil
}

func (m *Mirror) applyState(s *protocol.State) []Event {
	// stale frames are ignored
	if s.Timestamp < m.Timestamp {
		return nil
	}
	m.Timestamp = s.Timestamp

	var events []Event
	remotes := make(map[string]protocol.PlayerInfo, len(s.Players))
	for _, p := range s.Players {
		if p.ID != m.ID || !m.joined {
			remotes[p.ID] = p
			continue
		}
		prev := m.Self
		m.Self = p
		events = append(events, Event{Kind: Self, Info: p})
		if p.Health < prev.Health && p.Alive {
			events = append(events, Event{Kind: Damaged, Info: p, Amount: prev.Health - p.Health})
		}
		if prev.Alive && !p.Alive {
			events = append(events, Event{Kind: Died, Info: p})
		}
		if !prev.Alive && p.Alive {
			events = append(events, Event{Kind: Respawned, Info: p})
		}
		if p.Score > prev.Score {
			events = append(events, Event{Kind: Scored, Info: p, Amount: p.Score - prev.Score})
		}
	}
	m.Remotes = remotes
	m.Projectiles = s.Projectiles
	return events
}

// RemoteIDs lists the other players in a stable order
func (m *Mirror) RemoteIDs() []string {
	ids := make([]string, 0, len(m.Remotes))
	for id := range m.Remotes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
