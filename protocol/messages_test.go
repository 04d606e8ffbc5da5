package protocol

import (
	"errors"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	t.Run("update", func(t *testing.T) {
		msg, err := Decode([]byte(`{"type":"update","x":10.5,"y":20,"rotation":1,"health":90,"ammo":5,"score":100,"inputSequence":7}`))
		if err != nil {
			t.Fatal(err)
		}
		u, ok := msg.(*Update)
		if !ok {
			t.Fatalf("got %T, want *Update", msg)
		}
		if u.X != 10.5 || u.Health != 90 || u.InputSequence == nil || *u.InputSequence != 7 {
			t.Errorf("decoded %+v", u)
		}
	})

	t.Run("update without sequence", func(t *testing.T) {
		msg, err := Decode([]byte(`{"type":"update","x":1,"y":2}`))
		if err != nil {
			t.Fatal(err)
		}
		if msg.(*Update).InputSequence != nil {
			t.Error("missing sequence decoded as present")
		}
	})

	t.Run("chat", func(t *testing.T) {
		msg, err := Decode([]byte(`{"type":"chat","message":"hi"}`))
		if err != nil {
			t.Fatal(err)
		}
		if c := msg.(*Chat); c.Message != "hi" || c.PlayerID != "" {
			t.Errorf("decoded %+v", c)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Decode([]byte(`{"type":`))
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("err = %v, want ErrMalformed", err)
		}
	})

	t.Run("wrong field type", func(t *testing.T) {
		_, err := Decode([]byte(`{"type":"shoot","x":"left"}`))
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("err = %v, want ErrMalformed", err)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		msg, err := Decode([]byte(`{"type":"dance"}`))
		if !errors.Is(err, ErrUnknownType) {
			t.Fatalf("err = %v, want ErrUnknownType", err)
		}
		if env, ok := msg.(Envelope); !ok || env.Type != "dance" {
			t.Errorf("got %#v, want envelope of type dance", msg)
		}
	})
}

func TestEncodeState(t *testing.T) {
	data, err := Encode(NewState(nil, nil, 42))
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	for _, want := range []string{`"type":"state"`, `"players":[]`, `"projectiles":[]`, `"timestamp":42`} {
		if !strings.Contains(got, want) {
			t.Errorf("%s missing %s", got, want)
		}
	}
}

func TestEncodeChatStampsPlayer(t *testing.T) {
	data, err := Encode(NewChat("abc", "gg"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"playerId":"abc"`) {
		t.Errorf("encoded chat %s lacks playerId", data)
	}
}
