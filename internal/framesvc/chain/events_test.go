package chain

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testContract = common.HexToAddress("0x4B713bC4CEC525E59f5E6D1Cd3a372D0ee747E6d")
	testMinter   = common.HexToAddress("0xd34872BE0cdb6b09d45FCa067B07f04a1A9aE1aE")
	testSender   = common.HexToAddress("0xABC0000000000000000000000000000000000001")
)

func TestDecodePurchases(t *testing.T) {
	transfer := &types.Log{
		Address: testContract,
		Topics:  []common.Hash{common.HexToHash("0xc3d58168c5ae7397731d063d5bbf3d657854427343f4c083240f7aacaa2d0f62")},
	}
	logs := []*types.Log{
		transfer,
		purchasedLog(t, testContract, testSender, testMinter, 6, 1),
		purchasedLog(t, testContract, testSender, testMinter, 9, 2),
	}

	purchases, err := DecodePurchases(testContract, logs)
	require.NoError(t, err)
	require.Len(t, purchases, 2)

	assert.Equal(t, testSender, purchases[0].Sender)
	assert.Equal(t, testMinter, purchases[0].Minter)
	assert.Equal(t, int64(6), purchases[0].TokenID.Int64())
	assert.Equal(t, int64(1), purchases[0].Quantity.Int64())
	assert.Equal(t, "777000000000000", purchases[0].Value.String())
	assert.Equal(t, uint(1), purchases[0].LogIndex)
	assert.Equal(t, int64(9), purchases[1].TokenID.Int64())
}

func TestFirstPurchase(t *testing.T) {
	tests := []struct {
		name    string
		logs    []*types.Log
		want    int64
		wantErr error
	}{
		{
			name: "first of several",
			logs: []*types.Log{
				purchasedLog(t, testContract, testSender, testMinter, 42, 0),
				purchasedLog(t, testContract, testSender, testMinter, 7, 1),
			},
			want: 42,
		},
		{
			name:    "no logs",
			logs:    nil,
			wantErr: ErrEventNotFound,
		},
		{
			name: "purchase from another contract is ignored",
			logs: []*types.Log{
				purchasedLog(t, common.HexToAddress("0x0000000000000000000000000000000000000bad"), testSender, testMinter, 42, 0),
			},
			wantErr: ErrEventNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FirstPurchase(testContract, tt.logs)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.TokenID.Int64())
		})
	}
}

func TestDecodePurchasesMalformedData(t *testing.T) {
	lg := purchasedLog(t, testContract, testSender, testMinter, 1, 0)
	lg.Data = lg.Data[:10]

	_, err := DecodePurchases(testContract, []*types.Log{lg})
	assert.Error(t, err)
}
