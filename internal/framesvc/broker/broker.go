package broker

import (
	"encoding/json"
	"fmt"

	"github.com/avvvet/tarot-frames/internal/comm"
	"github.com/avvvet/tarot-frames/internal/framesvc/models"
	log "github.com/sirupsen/logrus"
)

// Conn is the publishing half of *nats.Conn.
type Conn interface {
	Publish(subj string, data []byte) error
}

type Broker struct {
	Conn Conn
}

func NewBroker(nc Conn) *Broker {
	return &Broker{Conn: nc}
}

func (b *Broker) PublishReadingCreated(r models.Reading) error {
	payload, err := json.Marshal(comm.ReadingEvent{
		ReadingID: r.ID,
		Wallet:    r.Wallet,
		CardID:    r.CardID,
		DeckID:    r.DeckID,
		CardIndex: r.CardIndex,
		ImageURL:  r.ImageURL,
		CreatedAt: r.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal reading event %s: %w", r.ID, err)
	}

	return b.Publish(comm.SubjectReadingCreated, payload)
}

func (b *Broker) Publish(topic string, payload []byte) error {
	err := b.Conn.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}
