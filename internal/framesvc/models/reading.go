package models

import "time"

// Reading links a wallet to the card its mint revealed. Written once, never updated.
type Reading struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	DeckID    string    `json:"deck_id"`
	CardID    string    `json:"card_id"`
	ImageURL  string    `json:"image_url"`
	CardIndex int       `json:"cardIndex"`
	Wallet    string    `json:"wallet"`
}
