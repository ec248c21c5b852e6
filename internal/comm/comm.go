package comm

import (
	"encoding/json"
	"time"
)

// SubjectReadingCreated carries a ReadingEvent for every persisted reading.
const SubjectReadingCreated = "reading.created"

type WSMessage struct {
	Type     string          `json:"type"` // e.g. "reading-created"
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socketid,omitempty"`
}

type ReadingEvent struct {
	ReadingID string    `json:"reading_id"`
	Wallet    string    `json:"wallet"`
	CardID    string    `json:"card_id"`
	DeckID    string    `json:"deck_id"`
	CardIndex int       `json:"cardIndex"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}
