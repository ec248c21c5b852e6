package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/avvvet/tarot-frames/internal/framesvc/models"
	"github.com/jackc/pgx/v5"
)

type CardStore struct {
	db Querier
}

func NewCardStore(db Querier) *CardStore {
	return &CardStore{db: db}
}

// GetCardByIndex returns nil, nil when no card sits at index.
func (s *CardStore) GetCardByIndex(ctx context.Context, index int) (*models.Card, error) {
	query := `
		SELECT "index", card_id, deck_id, card_name, image_url, card_read_main
		FROM cards
		WHERE "index" = $1
		LIMIT 1
	`

	var card models.Card
	err := s.db.QueryRow(ctx, query, index).Scan(
		&card.Index,
		&card.CardID,
		&card.DeckID,
		&card.CardName,
		&card.ImageURL,
		&card.CardReadMain,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get card by index: %w", err)
	}

	return &card, nil
}
