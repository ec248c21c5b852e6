package frame

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/avvvet/tarot-frames/internal/framesvc/chain"
)

const maxMessageBytes = 64 << 10

type CastID struct {
	FID  int64  `json:"fid"`
	Hash string `json:"hash"`
}

// UntrustedData is the client-reported half of a frame action. It is not verified
// against a hub.
type UntrustedData struct {
	FID           int64  `json:"fid"`
	URL           string `json:"url"`
	MessageHash   string `json:"messageHash"`
	Timestamp     int64  `json:"timestamp"`
	Network       int    `json:"network"`
	ButtonIndex   int    `json:"buttonIndex"`
	InputText     string `json:"inputText,omitempty"`
	State         string `json:"state,omitempty"`
	TransactionID string `json:"transactionId,omitempty"`
	Address       string `json:"address,omitempty"`
	CastID        CastID `json:"castId"`
}

type TrustedData struct {
	MessageBytes string `json:"messageBytes"`
}

// Message is the body a client POSTs when a frame button is pressed.
type Message struct {
	UntrustedData UntrustedData `json:"untrustedData"`
	TrustedData   TrustedData   `json:"trustedData"`
}

// ParseMessage decodes a frame action body. An empty body (a plain GET) is a zero Message.
func ParseMessage(r *http.Request) (Message, error) {
	var msg Message
	if r.Body == nil {
		return msg, nil
	}

	err := json.NewDecoder(io.LimitReader(r.Body, maxMessageBytes)).Decode(&msg)
	if errors.Is(err, io.EOF) {
		return msg, nil
	}
	if err != nil {
		return Message{}, fmt.Errorf("invalid frame message: %w", err)
	}

	return msg, nil
}

// WriteTransaction answers a transaction button with the call the wallet should send.
func WriteTransaction(w http.ResponseWriter, d chain.CallDescriptor) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(d.TxResponse())
}
