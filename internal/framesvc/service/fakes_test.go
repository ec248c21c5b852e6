package service

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/avvvet/tarot-frames/internal/framesvc/chain"
	"github.com/avvvet/tarot-frames/internal/framesvc/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

var (
	testContract = common.HexToAddress("0x4B713bC4CEC525E59f5E6D1Cd3a372D0ee747E6d")
	testMinter   = common.HexToAddress("0xd34872BE0cdb6b09d45FCa067B07f04a1A9aE1aE")
	testTxHash   = "0x8f1c6d1f0c5e4b2f9c1b7a3e2d4c5b6a79808f7e6d5c4b3a29180706f5e4d3c2"
)

type memCards struct {
	cards map[int]*models.Card
	err   error
	calls []int
}

func (m *memCards) GetCardByIndex(_ context.Context, index int) (*models.Card, error) {
	m.calls = append(m.calls, index)
	if m.err != nil {
		return nil, m.err
	}
	return m.cards[index], nil
}

type memReadings struct {
	created []models.Reading
	err     error
}

func (m *memReadings) CreateReading(_ context.Context, r models.Reading) (*models.Reading, error) {
	if m.err != nil {
		return nil, m.err
	}
	r.CreatedAt = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	m.created = append(m.created, r)
	return &r, nil
}

type fakeWaiter struct {
	receipt *types.Receipt
	err     error
	hashes  []common.Hash
}

func (w *fakeWaiter) WaitForReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	w.hashes = append(w.hashes, hash)
	return w.receipt, w.err
}

type fakePublisher struct {
	published []models.Reading
	err       error
}

func (p *fakePublisher) PublishReadingCreated(r models.Reading) error {
	p.published = append(p.published, r)
	return p.err
}

var errBoom = errors.New("boom")

func purchasedLog(t *testing.T, sender common.Address, tokenID int64) *types.Log {
	t.Helper()

	event := chain.ContractABI().Events[chain.PurchasedEvent]
	data, err := event.Inputs.NonIndexed().Pack(big.NewInt(1), big.NewInt(777000000000000))
	require.NoError(t, err)

	return &types.Log{
		Address: testContract,
		Topics: []common.Hash{
			event.ID,
			common.BytesToHash(sender.Bytes()),
			common.BytesToHash(testMinter.Bytes()),
			common.BigToHash(big.NewInt(tokenID)),
		},
		Data: data,
	}
}

func receiptWith(logs ...*types.Log) *types.Receipt {
	return &types.Receipt{Status: types.ReceiptStatusSuccessful, Logs: logs}
}
