package broker

import (
	"encoding/json"

	"github.com/avvvet/tarot-frames/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

const TypeReadingCreated = "reading-created"

type Broker struct {
	Conn      *nats.Conn
	Broadcast func(m *comm.WSMessage, wallet string) int
}

func NewBroker(conn *nats.Conn, fncBroadcast func(*comm.WSMessage, string) int) *Broker {
	return &Broker{
		Conn:      conn,
		Broadcast: fncBroadcast,
	}
}

// consume reading events from the frame service
func (b *Broker) Subscribe(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessages)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// handleMessages relays a reading event to the connected web clients
func (b *Broker) handleMessages(msgNats *nats.Msg) {
	switch msgNats.Subject {
	case comm.SubjectReadingCreated:
		b.relayReading(msgNats.Data)
	default:
		log.Errorf("Unknown subject %s", msgNats.Subject)
	}
}

func (b *Broker) relayReading(data []byte) {
	event := comm.ReadingEvent{}
	if err := json.Unmarshal(data, &event); err != nil {
		log.Errorf("Error: malformed reading event %s", err)
		return
	}

	sent := b.Broadcast(&comm.WSMessage{
		Type: TypeReadingCreated,
		Data: json.RawMessage(data),
	}, event.Wallet)

	log.Debugf("reading %s relayed to %d sockets", event.ReadingID, sent)
}
