// Package storage persists the application State as one serialized document.
package storage

import (
	"context"
	"encoding/json"

	"khanmedical/m/domain"
)

// DefaultKey is the fixed key the State document is stored under.
const DefaultKey = "KHAN_MEDICAL_DATA"

// Gateway is a single-slot, last-writer-wins store for the State.
type Gateway interface {
	// Load returns the stored State, or the empty default when nothing is
	// stored or the stored document cannot be read.
	Load(ctx context.Context) domain.State
	Save(ctx context.Context, state domain.State) error
	Clear(ctx context.Context) error
}

func encode(state domain.State) ([]byte, error) {
	state.Normalize()
	return json.Marshal(state)
}

func decode(data []byte) (domain.State, error) {
	var state domain.State
	if err := json.Unmarshal(data, &state); err != nil {
		return domain.NewState(), err
	}
	state.Normalize()
	return state, nil
}
