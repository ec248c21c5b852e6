package chain

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

func purchasedLog(t *testing.T, contract, sender, minter common.Address, tokenID int64, index uint) *types.Log {
	t.Helper()

	event := ContractABI().Events[PurchasedEvent]
	data, err := event.Inputs.NonIndexed().Pack(big.NewInt(1), big.NewInt(777000000000000))
	require.NoError(t, err)

	return &types.Log{
		Address: contract,
		Topics: []common.Hash{
			event.ID,
			common.BytesToHash(sender.Bytes()),
			common.BytesToHash(minter.Bytes()),
			common.BigToHash(big.NewInt(tokenID)),
		},
		Data:  data,
		Index: index,
	}
}
