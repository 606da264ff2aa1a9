package server

import (
	"context"
	"embed"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema embed.FS

// Store persists finished games to Postgres. A nil *Store disables recording.
type Store struct{ *pgxpool.Pool }

// OpenStore connects a pgx pool to the given DSN.
func OpenStore(ctx context.Context, dsn string) (*Store, error) {
	p, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, err
	}
	return &Store{p}, nil
}

// Migrate applies the embedded schema.
func (s *Store) Migrate(ctx context.Context) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = s.Exec(ctx, string(sqlBytes))
	return err
}

// RecordGame inserts one finished game.
func (s *Store) RecordGame(ctx context.Context, id uuid.UUID, seed uint64, numPlayers uint8, rounds uint8, finalScores []int16, agentReturn float32) error {
	if s == nil {
		return nil
	}
	scores := make([]int32, len(finalScores))
	for i, v := range finalScores {
		scores[i] = int32(v)
	}
	_, err := s.Exec(ctx, `
        INSERT INTO games (id, seed, num_players, rounds, final_scores, agent_return)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (id) DO NOTHING
    `, id, int64(seed), int16(numPlayers), int16(rounds), scores, agentReturn)
	return err
}
