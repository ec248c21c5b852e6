package models

// Card is immutable reference data seeded ahead of time, one row per deck position.
type Card struct {
	Index        int    `json:"index"`
	CardID       string `json:"card_id"`
	DeckID       string `json:"deck_id"`
	CardName     string `json:"card_name"`
	ImageURL     string `json:"image_url"`
	CardReadMain string `json:"card_read_main"`
}
