package broker

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/avvvet/tarot-frames/internal/comm"
	"github.com/avvvet/tarot-frames/internal/framesvc/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingConn struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (c *recordingConn) Publish(subj string, data []byte) error {
	c.subjects = append(c.subjects, subj)
	c.payloads = append(c.payloads, data)
	return c.err
}

func TestPublishReadingCreated(t *testing.T) {
	conn := &recordingConn{}
	created := time.Date(2024, 4, 1, 9, 30, 0, 0, time.UTC)

	err := NewBroker(conn).PublishReadingCreated(models.Reading{
		ID: "rd-9", Wallet: "0xabc", CardID: "the-sun", DeckID: "classic", CardIndex: 19,
		ImageURL: "https://cdn.example/sun.png", CreatedAt: created,
	})
	require.NoError(t, err)
	require.Equal(t, []string{comm.SubjectReadingCreated}, conn.subjects)

	var ev comm.ReadingEvent
	require.NoError(t, json.Unmarshal(conn.payloads[0], &ev))
	assert.Equal(t, "rd-9", ev.ReadingID)
	assert.Equal(t, 19, ev.CardIndex)
	assert.True(t, created.Equal(ev.CreatedAt))
}

func TestPublishError(t *testing.T) {
	conn := &recordingConn{err: errors.New("nats: connection closed")}

	err := NewBroker(conn).PublishReadingCreated(models.Reading{ID: "rd-1"})
	assert.Error(t, err)
}
