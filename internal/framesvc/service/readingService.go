package service

import (
	"context"
	"errors"

	"github.com/avvvet/tarot-frames/internal/framesvc/models"
	"github.com/ethereum/go-ethereum/common"
)

const MaxReadingsPerPage = 50

var ErrInvalidWallet = errors.New("invalid wallet address")

type ReadingLister interface {
	ListByWallet(ctx context.Context, wallet string, limit int) ([]*models.Reading, error)
}

type ReadingService struct {
	store ReadingLister
}

func NewReadingService(store ReadingLister) *ReadingService {
	return &ReadingService{store: store}
}

func (s *ReadingService) ListReadings(ctx context.Context, wallet string) ([]*models.Reading, error) {
	if !common.IsHexAddress(wallet) {
		return nil, ErrInvalidWallet
	}
	return s.store.ListByWallet(ctx, common.HexToAddress(wallet).Hex(), MaxReadingsPerPage)
}
