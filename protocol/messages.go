// Package protocol defines the JSON messages exchanged between the game
// client and the authoritative server. Every message is a websocket text
// frame carrying an object with a "type" field.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MessageType names a message on the wire
type MessageType string

const (
	// Server -> Client
	TypeInit  MessageType = "init"
	TypeState MessageType = "state"
	TypeError MessageType = "error"

	// Client -> Server
	TypeUpdate  MessageType = "update"
	TypeShoot   MessageType = "shoot"
	TypeRespawn MessageType = "respawn"

	// Both ways
	TypeChat MessageType = "chat"
)

var (
	ErrMalformed   = errors.New("protocol: malformed message")
	ErrUnknownType = errors.New("protocol: unknown message type")
)

type Envelope struct {
	Type MessageType `json:"type"`
}

// PlayerInfo is the serialized form of a player
type PlayerInfo struct {
	ID        string  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Rotation  float64 `json:"rotation"`
	Health    int     `json:"health"`
	MaxHealth int     `json:"maxHealth"`
	Ammo      int     `json:"ammo"`
	Score     int     `json:"score"`
	Alive     bool    `json:"alive"`
}

type ProjectileInfo struct {
	ID       string  `json:"id"`
	OwnerID  string  `json:"ownerId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

type Init struct {
	Type     MessageType `json:"type"`
	PlayerID string      `json:"playerId"`
	Player   PlayerInfo  `json:"player"`
}

type State struct {
	Type        MessageType      `json:"type"`
	Players     []PlayerInfo     `json:"players"`
	Projectiles []ProjectileInfo `json:"projectiles"`
	// Timestamp is Unix milliseconds
	Timestamp int64 `json:"timestamp"`
}

// Update reports the client's own simulation result. InputSequence is
// optional; the server counts up from the last value when it is absent.
type Update struct {
	Type          MessageType `json:"type"`
	X             float64     `json:"x"`
	Y             float64     `json:"y"`
	Rotation      float64     `json:"rotation"`
	Health        int         `json:"health"`
	Ammo          int         `json:"ammo"`
	Score         int         `json:"score"`
	InputSequence *int64      `json:"inputSequence,omitempty"`
}

type Shoot struct {
	Type     MessageType `json:"type"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Rotation float64     `json:"rotation"`
}

type Respawn struct {
	Type MessageType `json:"type"`
}

type Chat struct {
	Type     MessageType `json:"type"`
	PlayerID string      `json:"playerId,omitempty"`
	Message  string      `json:"message"`
}

type Error struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

func NewInit(id string, p PlayerInfo) Init {
	return Init{Type: TypeInit, PlayerID: id, Player: p}
}

func NewState(players []PlayerInfo, projectiles []ProjectileInfo, timestamp int64) State {
	if players == nil {
		players = []PlayerInfo{}
	}
	if projectiles == nil {
		projectiles = []ProjectileInfo{}
	}
	return State{Type: TypeState, Players: players, Projectiles: projectiles, Timestamp: timestamp}
}

func NewUpdate(x, y, rotation float64, health, ammo, score int, seq int64) Update {
	return Update{
		Type: TypeUpdate, X: x, Y: y, Rotation: rotation,
		Health: health, Ammo: ammo, Score: score, InputSequence: &seq,
	}
}

func NewShoot(x, y, rotation float64) Shoot {
	return Shoot{Type: TypeShoot, X: x, Y: y, Rotation: rotation}
}

func NewRespawn() Respawn {
	return Respawn{Type: TypeRespawn}
}

func NewChat(playerID, message string) Chat {
	return Chat{Type: TypeChat, PlayerID: playerID, Message: message}
}

func NewError(message string) Error {
	return Error{Type: TypeError, Message: message}
}

// Decode parses a frame into its concrete message type. Unknown types
// return ErrUnknownType together with the Envelope so the caller can log it.
func Decode(data []byte) (any, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var msg any
	switch env.Type {
	case TypeInit:
		msg = &Init{}
	case TypeState:
		msg = &State{}
	case TypeError:
		msg = &Error{}
	case TypeUpdate:
		msg = &Update{}
	case TypeShoot:
		msg = &Shoot{}
	case TypeRespawn:
		msg = &Respawn{}
	case TypeChat:
		msg = &Chat{}
	default:
		return env, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}

	if err := json.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, env.Type, err)
	}
	return msg, nil
}

// Encode marshals any message for sending
func Encode(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("protocol: encode: %w", err)
	}
	return data, nil
}

// TypeOf returns the wire type of a decoded message
func TypeOf(msg any) MessageType {
	switch m := msg.(type) {
	case *Init:
		return m.Type
	case *State:
		return m.Type
	case *Error:
		return m.Type
	case *Update:
		return m.Type
	case *Shoot:
		return m.Type
	case *Respawn:
		return m.Type
	case *Chat:
		return m.Type
	case Envelope:
		return m.Type
	}
	return ""
}
