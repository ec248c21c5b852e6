package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	log "github.com/sirupsen/logrus"
)

const (
	RpcTimeOut      = 5 * time.Second
	MaxReceiptRetry = 5
)

// ReceiptFetcher is the part of *ethclient.Client the waiter needs, so tests can stub it.
type ReceiptFetcher interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

type ReceiptWaiter struct {
	client       ReceiptFetcher
	pollInterval time.Duration
}

func NewReceiptWaiter(client ReceiptFetcher, pollInterval time.Duration) *ReceiptWaiter {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &ReceiptWaiter{client: client, pollInterval: pollInterval}
}

// Dial connects to the chain RPC and checks it serves the expected chain.
func Dial(ctx context.Context, url string, chainID int64) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rpc %s: %w", url, err)
	}

	ctx, cancel := context.WithTimeout(ctx, RpcTimeOut)
	defer cancel()

	id, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}
	if id.Int64() != chainID {
		client.Close()
		return nil, fmt.Errorf("rpc %s serves chain %d, expected %d", url, id.Int64(), chainID)
	}

	return client, nil
}

// WaitForReceipt polls until the transaction is mined or ctx is done. Not-yet-mined is
// expected and retried forever; other RPC errors are retried MaxReceiptRetry times in a row.
func (w *ReceiptWaiter) WaitForReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	retry := 0
	for {
		callCtx, cancel := context.WithTimeout(ctx, RpcTimeOut)
		receipt, err := w.client.TransactionReceipt(callCtx, hash)
		cancel()

		switch {
		case err == nil && receipt != nil:
			return receipt, nil
		case err == nil, errors.Is(err, ethereum.NotFound):
			retry = 0
		default:
			if ctx.Err() != nil {
				return nil, fmt.Errorf("waiting for receipt %s: %w", hash.Hex(), ctx.Err())
			}
			if retry == MaxReceiptRetry {
				return nil, fmt.Errorf("cannot get receipt for tx %s: %w", hash.Hex(), err)
			}
			retry++
			log.Warnf("Cannot get receipt for tx hash %s: %v", hash.Hex(), err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for receipt %s: %w", hash.Hex(), ctx.Err())
		case <-time.After(w.pollInterval):
		}
	}
}
