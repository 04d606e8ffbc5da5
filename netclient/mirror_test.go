package netclient

import (
	"testing"

	"arenagame/protocol"
)

func player(id string, health, score int, alive bool) protocol.PlayerInfo {
	return protocol.PlayerInfo{ID: id, X: 10, Y: 20, Health: health, MaxHealth: 100, Score: score, Alive: alive}
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func TestMirrorJoin(t *testing.T) {
	m := NewMirror()
	init := protocol.NewInit("me", player("me", 100, 0, true))
	events := m.Apply(&init)
	if len(events) != 1 || events[0].Kind != Joined {
		t.Fatalf("events = %v, want [Joined]", kinds(events))
	}
	if !m.Joined() || m.ID != "me" {
		t.Errorf("joined = %v id = %q", m.Joined(), m.ID)
	}
}

func TestMirrorState(t *testing.T) {
	m := NewMirror()
	init := protocol.NewInit("me", player("me", 100, 0, true))
	m.Apply(&init)

	t.Run("remotes are split from self", func(t *testing.T) {
		s := protocol.NewState([]protocol.PlayerInfo{
			player("me", 100, 0, true),
			player("b", 100, 0, true),
			player("a", 50, 0, true),
		}, []protocol.ProjectileInfo{{ID: "p1", OwnerID: "a"}}, 10)
		events := m.Apply(&s)
		if len(events) != 1 || events[0].Kind != Self {
			t.Fatalf("events = %v, want [Self]", kinds(events))
		}
		if got := m.RemoteIDs(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
			t.Errorf("RemoteIDs() = %v", got)
		}
		if len(m.Projectiles) != 1 {
			t.Errorf("projectiles = %d, want 1", len(m.Projectiles))
		}
	})

	t.Run("damage and death", func(t *testing.T) {
		s := protocol.NewState([]protocol.PlayerInfo{player("me", 75, 0, true)}, nil, 20)
		events := m.Apply(&s)
		if len(events) != 2 || events[1].Kind != Damaged || events[1].Amount != 25 {
			t.Fatalf("events = %v", kinds(events))
		}
		if len(m.Remotes) != 0 {
			t.Errorf("remotes = %d, want players that left to be dropped", len(m.Remotes))
		}

		s = protocol.NewState([]protocol.PlayerInfo{player("me", 0, 0, false)}, nil, 30)
		events = m.Apply(&s)
		if len(events) != 2 || events[1].Kind != Died {
			t.Fatalf("events = %v, want [Self Died]", kinds(events))
		}
	})

	t.Run("respawn and score", func(t *testing.T) {
		s := protocol.NewState([]protocol.PlayerInfo{player("me", 100, 100, true)}, nil, 40)
		events := m.Apply(&s)
		got := kinds(events)
		if len(got) != 3 || got[1] != Respawned || got[2] != Scored || events[2].Amount != 100 {
			t.Fatalf("events = %v, want [Self Respawned Scored]", got)
		}
	})

	t.Run("stale frames are ignored", func(t *testing.T) {
		s := protocol.NewState([]protocol.PlayerInfo{player("me", 1, 0, true)}, nil, 5)
		if events := m.Apply(&s); events != nil {
			t.Errorf("events = %v, want none", kinds(events))
		}
		if m.Self.Health != 100 {
			t.Errorf("health = %d, want 100", m.Self.Health)
		}
	})
}

func TestMirrorStateBeforeJoin(t *testing.T) {
	m := NewMirror()
	s := protocol.NewState([]protocol.PlayerInfo{player("x", 100, 0, true)}, nil, 1)
	if events := m.Apply(&s); len(events) != 0 {
		t.Errorf("events = %v, want none", kinds(events))
	}
	if len(m.Remotes) != 1 {
		t.Errorf("remotes = %d, want 1", len(m.Remotes))
	}
}

func TestMirrorChatAndError(t *testing.T) {
	m := NewMirror()
	chat := protocol.NewChat("a", "hi")
	if ev := m.Apply(&chat); len(ev) != 1 || ev[0].Kind != ChatReceived || ev[0].From != "a" || ev[0].Text != "hi" {
		t.Errorf("chat events = %+v", ev)
	}
	e := protocol.NewError("full")
	if ev := m.Apply(&e); len(ev) != 1 || ev[0].Kind != ServerError || ev[0].Text != "full" {
		t.Errorf("error events = %+v", ev)
	}
}
