package store

import (
	"context"
	"fmt"

	"github.com/avvvet/tarot-frames/internal/framesvc/models"
)

type ReadingStore struct {
	db Querier
}

func NewReadingStore(db Querier) *ReadingStore {
	return &ReadingStore{db: db}
}

func (r *ReadingStore) CreateReading(ctx context.Context, reading models.Reading) (*models.Reading, error) {
	query := `
        INSERT INTO readings (id, deck_id, card_id, image_url, "cardIndex", wallet)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at;
    `

	err := r.db.QueryRow(ctx, query,
		reading.ID, reading.DeckID, reading.CardID, reading.ImageURL, reading.CardIndex, reading.Wallet,
	).Scan(&reading.ID, &reading.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("could not create reading: %w", err)
	}

	return &reading, nil
}

// ListByWallet returns the newest readings first.
func (r *ReadingStore) ListByWallet(ctx context.Context, wallet string, limit int) ([]*models.Reading, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, created_at, deck_id, card_id, image_url, "cardIndex", wallet
        FROM readings
        WHERE wallet = $1
        ORDER BY created_at DESC
        LIMIT $2
    `, wallet, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}
	defer rows.Close()

	readings := make([]*models.Reading, 0)
	for rows.Next() {
		rd := &models.Reading{}
		if err := rows.Scan(
			&rd.ID,
			&rd.CreatedAt,
			&rd.DeckID,
			&rd.CardID,
			&rd.ImageURL,
			&rd.CardIndex,
			&rd.Wallet,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		readings = append(readings, rd)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate readings: %w", err)
	}

	return readings, nil
}
