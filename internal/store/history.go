package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/concord/internal/carbon"
)

const (
	DefaultHistoryLimit = 100
	MaxHistoryLimit     = 1000
)

// HistoryRecord is one simulation footprint to persist.
type HistoryRecord struct {
	SimulationID uuid.UUID
	Entry        carbon.HistoryEntry
	TokenCount   int
	PartyCount   int
}

// InsertHistory records a footprint and returns the new row ID. A zero
// Entry.Timestamp is stamped by the database.
func (s *Store) InsertHistory(ctx context.Context, rec HistoryRecord) (uuid.UUID, error) {
	if s == nil {
		return uuid.Nil, ErrNotConfigured
	}

	id := uuid.New()
	e := rec.Entry
	var err error
	if e.Timestamp.IsZero() {
		_, err = s.pool.Exec(ctx, `
			INSERT INTO carbon_history (id, simulation_id, co2_grams, energy_kwh, model_used, simulation_type, green_score, token_count, party_count)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			id, rec.SimulationID, e.CO2Grams, e.EnergyKWh, e.ModelUsed, e.SimulationType, e.GreenScore, rec.TokenCount, rec.PartyCount,
		)
	} else {
		_, err = s.pool.Exec(ctx, `
			INSERT INTO carbon_history (id, simulation_id, recorded_at, co2_grams, energy_kwh, model_used, simulation_type, green_score, token_count, party_count)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			id, rec.SimulationID, e.Timestamp, e.CO2Grams, e.EnergyKWh, e.ModelUsed, e.SimulationType, e.GreenScore, rec.TokenCount, rec.PartyCount,
		)
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert carbon history: %w", err)
	}
	return id, nil
}

// ListHistory returns the most recent limit entries, oldest first.
func (s *Store) ListHistory(ctx context.Context, limit int) ([]carbon.HistoryEntry, error) {
	if s == nil {
		return nil, ErrNotConfigured
	}
	limit = clampLimit(limit)

	rows, err := s.pool.Query(ctx, `
		SELECT id, recorded_at, co2_grams, energy_kwh, model_used, simulation_type, green_score
		FROM carbon_history
		ORDER BY recorded_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query carbon history: %w", err)
	}
	defer rows.Close()

	entries := []carbon.HistoryEntry{}
	for rows.Next() {
		var (
			e  carbon.HistoryEntry
			id uuid.UUID
		)
		if err := rows.Scan(&id, &e.Timestamp, &e.CO2Grams, &e.EnergyKWh, &e.ModelUsed, &e.SimulationType, &e.GreenScore); err != nil {
			return nil, fmt.Errorf("scan carbon history: %w", err)
		}
		e.ID = id.String()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate carbon history: %w", err)
	}

	slices.Reverse(entries)
	return entries, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	return min(limit, MaxHistoryLimit)
}
