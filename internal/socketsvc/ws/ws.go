package ws

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/avvvet/tarot-frames/internal/comm"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// client serializes writes; gorilla connections allow one concurrent writer.
type client struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	wallet string // empty means every reading
}

func (c *client) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

type Ws struct {
	connMap sync.Map // to keep track of socket connection with socketId
}

func NewWs() *Ws {
	return &Ws{}
}

// handle socket message from web clients
func (s *Ws) SocketMessage(socketId string, message *comm.WSMessage) {
	switch message.Type {
	case "subscribe":
		s.handleSubscribe(socketId, message)
	case "ping":
		s.Send(socketId, &comm.WSMessage{Type: "pong"})
	default:
		log.Warnf("unknown event received: %s", message.Type)
	}
}

// handleSubscribe narrows the feed of a socket to one wallet. An empty wallet
// restores the full feed.
func (s *Ws) handleSubscribe(socketId string, msg *comm.WSMessage) {
	var payload struct {
		Wallet string `json:"wallet"`
	}

	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			log.Errorf("Error: invalid_subscribe_data Malformed subscribe payload %s", err)
			s.Send(socketId, &comm.WSMessage{Type: "error", Data: json.RawMessage(`"invalid subscribe payload"`)})
			return
		}
	}

	c, ok := s.client(socketId)
	if !ok {
		return
	}

	c.mu.Lock()
	c.wallet = strings.ToLower(payload.Wallet)
	c.mu.Unlock()

	ack, _ := json.Marshal(payload)
	s.Send(socketId, &comm.WSMessage{Type: "subscribed", Data: ack})
	log.Infof("socket %s subscribed to wallet %q", socketId, payload.Wallet)
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	s.connMap.Store(socketId, &client{conn: conn})
}

func (s *Ws) GetConnection(socketId string) (*websocket.Conn, bool) {
	c, ok := s.client(socketId)
	if !ok {
		return nil, false
	}
	return c.conn, true
}

func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)
}

func (s *Ws) Count() int {
	count := 0
	s.connMap.Range(func(key, value any) bool {
		count++
		return true
	})
	return count
}

// Send writes m to a single socket.
func (s *Ws) Send(socketId string, m *comm.WSMessage) {
	c, ok := s.client(socketId)
	if !ok {
		return
	}
	if err := c.writeJSON(m); err != nil {
		log.Errorf("Error writing to socket %s: %s", socketId, err)
	}
}

// Broadcast sends m to every socket following wallet or the whole feed.
func (s *Ws) Broadcast(m *comm.WSMessage, wallet string) int {
	wallet = strings.ToLower(wallet)
	sent := 0

	s.connMap.Range(func(key, value any) bool {
		c := value.(*client)

		c.mu.Lock()
		follow := c.wallet
		c.mu.Unlock()

		if follow != "" && follow != wallet {
			return true
		}

		if err := c.writeJSON(m); err != nil {
			log.Errorf("Error writing to socket %s: %s", key, err)
			return true
		}
		sent++
		return true
	})

	return sent
}

func (s *Ws) client(socketId string) (*client, bool) {
	v, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return v.(*client), true
}
