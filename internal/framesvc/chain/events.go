package chain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Purchase is a decoded Purchased event.
type Purchase struct {
	Sender   common.Address
	Minter   common.Address
	TokenID  *big.Int
	Quantity *big.Int
	Value    *big.Int
	TxHash   common.Hash
	LogIndex uint
}

// DecodePurchases returns the Purchased events emitted by contract, in log order.
// Logs from other contracts and other events are skipped.
func DecodePurchases(contract common.Address, logs []*types.Log) ([]Purchase, error) {
	event := contractABI.Events[PurchasedEvent]

	var indexed abi.Arguments
	for _, input := range event.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}

	purchases := make([]Purchase, 0)
	for _, lg := range logs {
		if lg == nil || lg.Address != contract || len(lg.Topics) == 0 || lg.Topics[0] != event.ID {
			continue
		}

		fields := map[string]interface{}{}
		if err := abi.ParseTopicsIntoMap(fields, indexed, lg.Topics[1:]); err != nil {
			return nil, fmt.Errorf("decode %s topics in log %d: %w", PurchasedEvent, lg.Index, err)
		}
		if err := contractABI.UnpackIntoMap(fields, PurchasedEvent, lg.Data); err != nil {
			return nil, fmt.Errorf("decode %s data in log %d: %w", PurchasedEvent, lg.Index, err)
		}

		p := Purchase{TxHash: lg.TxHash, LogIndex: lg.Index}
		p.Sender, _ = fields["sender"].(common.Address)
		p.Minter, _ = fields["minter"].(common.Address)
		p.TokenID, _ = fields["tokenId"].(*big.Int)
		p.Quantity, _ = fields["quantity"].(*big.Int)
		p.Value, _ = fields["value"].(*big.Int)
		if p.TokenID == nil {
			return nil, fmt.Errorf("decode %s in log %d: missing tokenId", PurchasedEvent, lg.Index)
		}

		purchases = append(purchases, p)
	}

	return purchases, nil
}

// FirstPurchase returns the first Purchased event or ErrEventNotFound.
func FirstPurchase(contract common.Address, logs []*types.Log) (Purchase, error) {
	purchases, err := DecodePurchases(contract, logs)
	if err != nil {
		return Purchase{}, err
	}
	if len(purchases) == 0 {
		return Purchase{}, ErrEventNotFound
	}
	return purchases[0], nil
}
