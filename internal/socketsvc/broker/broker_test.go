package broker

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/avvvet/tarot-frames/internal/comm"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	messages []*comm.WSMessage
	wallets  []string
}

func (c *captured) broadcast(m *comm.WSMessage, wallet string) int {
	c.messages = append(c.messages, m)
	c.wallets = append(c.wallets, wallet)
	return 1
}

func TestRelayReadingCreated(t *testing.T) {
	c := &captured{}
	b := NewBroker(nil, c.broadcast)

	payload, err := json.Marshal(comm.ReadingEvent{
		ReadingID: "6b1d3f5e-1f4c-4c8a-9d0e-2a7b4c6d8e90",
		Wallet:    "0x0000000000000000000000000000000000000ABC",
		CardID:    "the-lovers",
		DeckID:    "rider-waite",
		CardIndex: 6,
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	b.handleMessages(&nats.Msg{Subject: comm.SubjectReadingCreated, Data: payload})

	require.Len(t, c.messages, 1)
	assert.Equal(t, TypeReadingCreated, c.messages[0].Type)
	assert.JSONEq(t, string(payload), string(c.messages[0].Data))
	assert.Equal(t, "0x0000000000000000000000000000000000000ABC", c.wallets[0])
}

func TestRelayIgnoresBadMessages(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		data    string
	}{
		{name: "malformed event", subject: comm.SubjectReadingCreated, data: "{"},
		{name: "unknown subject", subject: "game.service", data: `{"reading_id":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &captured{}
			b := NewBroker(nil, c.broadcast)

			b.handleMessages(&nats.Msg{Subject: tt.subject, Data: []byte(tt.data)})
			assert.Empty(t, c.messages)
		})
	}
}
