package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"khanmedical/m/domain"
)

// SQLGateway keeps the State document in the app_state table.
type SQLGateway struct {
	db     *sqlx.DB
	key    string
	logger *slog.Logger
}

// NewSQLGateway builds a gateway over an already migrated database.
func NewSQLGateway(db *sqlx.DB, key string, logger *slog.Logger) *SQLGateway {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLGateway{db: db, key: key, logger: logger}
}

func (g *SQLGateway) Load(ctx context.Context) domain.State {
	var value string
	err := g.db.GetContext(ctx, &value, g.db.Rebind(`SELECT value FROM app_state WHERE key = ?`), g.key)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewState()
	}
	if err != nil {
		g.logger.Warn("read stored state", slog.String("key", g.key), slog.Any("error", err))
		return domain.NewState()
	}
	state, err := decode([]byte(value))
	if err != nil {
		g.logger.Warn("failed to parse stored state", slog.String("key", g.key), slog.Any("error", err))
		return domain.NewState()
	}
	return state
}

func (g *SQLGateway) Save(ctx context.Context, state domain.State) error {
	data, err := encode(state)
	if err != nil {
		return fmt.Errorf("storage: encode state: %w", err)
	}
	query := g.db.Rebind(`INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
        ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`)
	if _, err := g.db.ExecContext(ctx, query, g.key, string(data)); err != nil {
		return fmt.Errorf("storage: save state: %w", err)
	}
	return nil
}

func (g *SQLGateway) Clear(ctx context.Context) error {
	if _, err := g.db.ExecContext(ctx, g.db.Rebind(`DELETE FROM app_state WHERE key = ?`), g.key); err != nil {
		return fmt.Errorf("storage: clear state: %w", err)
	}
	return nil
}
