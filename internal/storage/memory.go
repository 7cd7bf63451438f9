package storage

import (
	"context"
	"log/slog"
	"sync"

	"khanmedical/m/domain"
)

// MemoryGateway holds the serialized State in process memory.
type MemoryGateway struct {
	mu     sync.Mutex
	data   []byte
	saves  int
	logger *slog.Logger
}

// NewMemoryGateway returns an empty gateway.
func NewMemoryGateway(logger *slog.Logger) *MemoryGateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryGateway{logger: logger}
}

func (g *MemoryGateway) Load(_ context.Context) domain.State {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.data == nil {
		return domain.NewState()
	}
	state, err := decode(g.data)
	if err != nil {
		g.logger.Warn("failed to parse stored state", slog.Any("error", err))
		return domain.NewState()
	}
	return state
}

func (g *MemoryGateway) Save(_ context.Context, state domain.State) error {
	data, err := encode(state)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.data = data
	g.saves++
	return nil
}

func (g *MemoryGateway) Clear(_ context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.data = nil
	return nil
}

// Raw returns a copy of the stored document, or nil.
func (g *MemoryGateway) Raw() []byte {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.data == nil {
		return nil
	}
	return append([]byte(nil), g.data...)
}

// SetRaw replaces the stored document verbatim.
func (g *MemoryGateway) SetRaw(data []byte) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.data = append([]byte(nil), data...)
}

// Saves reports how many times Save succeeded.
func (g *MemoryGateway) Saves() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.saves
}
