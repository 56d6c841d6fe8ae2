package helix

import (
	"encoding/binary"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/helix/internal/state"
)

// Record schemas of GameState.
const (
	SchemaV1 uint16 = 1 // camera height, ball position, velocity, force
	SchemaV2 uint16 = 2 // adds camera yaw and bounce count

	Schema = SchemaV2
)

// GameState is the simulation state kept in the persisted block. It is the
// only state that survives a reload.
type GameState struct {
	CameraHeight float32
	BallPosition mgl32.Vec3
	BallVelocity mgl32.Vec3
	BallForce    mgl32.Vec3
	CameraYaw    float32
	Bounces      uint32
}

type gameStateV1 struct {
	CameraHeight float32
	BallPosition mgl32.Vec3
	BallVelocity mgl32.Vec3
	BallForce    mgl32.Vec3
}

// Encode returns the little-endian payload of the current schema.
func (s GameState) Encode() []byte {
	buf, err := binary.Append(nil, binary.LittleEndian, s)
	if err != nil {
		panic(fmt.Sprintf("helix: encode state: %v", err)) // fixed-size struct
	}
	return buf
}

// DecodeGameState decodes a payload of the given schema, migrating older
// schemas to the current one.
func DecodeGameState(schema uint16, payload []byte) (GameState, error) {
	var s GameState
	switch schema {
	case SchemaV1:
		var v1 gameStateV1
		if _, err := binary.Decode(payload, binary.LittleEndian, &v1); err != nil {
			return GameState{}, fmt.Errorf("%w: schema 1 payload of %d bytes", state.ErrCorrupt, len(payload))
		}
		s = GameState{
			CameraHeight: v1.CameraHeight,
			BallPosition: v1.BallPosition,
			BallVelocity: v1.BallVelocity,
			BallForce:    v1.BallForce,
		}
	case SchemaV2:
		if _, err := binary.Decode(payload, binary.LittleEndian, &s); err != nil {
			return GameState{}, fmt.Errorf("%w: schema 2 payload of %d bytes", state.ErrCorrupt, len(payload))
		}
	default:
		return GameState{}, fmt.Errorf("%w: schema %d", state.ErrIncompatibleState, schema)
	}
	return s, nil
}

// LoadGameState reads and decodes the record in b.
func LoadGameState(b *state.Block) (GameState, error) {
	h, err := b.Header()
	if err != nil {
		return GameState{}, err
	}
	if h.Flags&state.FlagForeign != 0 {
		return GameState{}, fmt.Errorf("%w: record owned by a foreign module", state.ErrIncompatibleState)
	}
	schema, payload, err := b.Read()
	if err != nil {
		return GameState{}, err
	}
	return DecodeGameState(schema, payload)
}

// Save commits s to b under the current schema.
func (s GameState) Save(b *state.Block) error {
	return b.Write(Schema, s.Encode())
}
