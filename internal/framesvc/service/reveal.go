package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/avvvet/tarot-frames/internal/framesvc/chain"
	"github.com/avvvet/tarot-frames/internal/framesvc/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidTxHash = errors.New("invalid transaction hash")

type ReceiptWaiter interface {
	WaitForReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

type ReadingWriter interface {
	CreateReading(ctx context.Context, reading models.Reading) (*models.Reading, error)
}

type ReadingPublisher interface {
	PublishReadingCreated(reading models.Reading) error
}

// Reveal is the outcome of correlating a mint with its card. Card is nil when the
// minted token has no card row; Reading is nil when nothing was persisted.
type Reveal struct {
	Purchase chain.Purchase
	Card     *models.Card
	Reading  *models.Reading
}

type RevealService struct {
	waiter    ReceiptWaiter
	cards     *CardService
	readings  ReadingWriter
	publisher ReadingPublisher
	contract  common.Address
}

func NewRevealService(waiter ReceiptWaiter, cards *CardService, readings ReadingWriter,
	publisher ReadingPublisher, contract common.Address) *RevealService {
	return &RevealService{
		waiter:    waiter,
		cards:     cards,
		readings:  readings,
		publisher: publisher,
		contract:  contract,
	}
}

func ParseTxHash(raw string) (common.Hash, error) {
	b, err := hexutil.Decode(raw)
	if err != nil || len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("%w: %q", ErrInvalidTxHash, raw)
	}
	return common.BytesToHash(b), nil
}

// Reveal waits for txHash to be mined, finds the Purchased event and records the
// reading for the purchased card. No Purchased event means chain.ErrEventNotFound and
// nothing is looked up or written.
func (s *RevealService) Reveal(ctx context.Context, txHash string) (*Reveal, error) {
	hash, err := ParseTxHash(txHash)
	if err != nil {
		return nil, err
	}

	receipt, err := s.waiter.WaitForReceipt(ctx, hash)
	if err != nil {
		return nil, err
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return nil, fmt.Errorf("%w: %s", chain.ErrTxReverted, hash.Hex())
	}

	purchase, err := chain.FirstPurchase(s.contract, receipt.Logs)
	if err != nil {
		return nil, fmt.Errorf("tx %s: %w", hash.Hex(), err)
	}

	res := &Reveal{Purchase: purchase}

	if !purchase.TokenID.IsInt64() || purchase.TokenID.Int64() > math.MaxInt32 {
		log.Warnf("token id %s out of card range for tx %s", purchase.TokenID, hash.Hex())
		return res, nil
	}
	index := int(purchase.TokenID.Int64())

	card := s.cards.GetCardByIndex(ctx, index)
	if card == nil {
		return res, nil
	}
	res.Card = card

	reading, err := s.readings.CreateReading(ctx, models.Reading{
		ID:        uuid.NewString(),
		DeckID:    card.DeckID,
		CardID:    card.CardID,
		ImageURL:  card.ImageURL,
		CardIndex: index,
		Wallet:    purchase.Sender.Hex(),
	})
	if err != nil {
		log.Errorf("Error creating reading for tx %s: %s", hash.Hex(), err)
		return res, nil
	}
	res.Reading = reading
	log.Infof("reading %s created for wallet %s card %s", reading.ID, reading.Wallet, reading.CardID)

	if s.publisher != nil {
		if err := s.publisher.PublishReadingCreated(*reading); err != nil {
			log.Errorf("Error publishing reading %s: %s", reading.ID, err)
		}
	}

	return res, nil
}
