package chain

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// CallDescriptor is a contract call ready for the user's wallet to sign and submit.
type CallDescriptor struct {
	ChainID      int64
	To           common.Address
	FunctionName string
	Args         []interface{}
	Value        *big.Int
	Data         []byte
}

// CAIP2 returns the chain identifier in eip155:<id> form.
func (d CallDescriptor) CAIP2() string {
	return fmt.Sprintf("eip155:%d", d.ChainID)
}

// TxParams is the params object of a frame transaction response.
type TxParams struct {
	ABI   json.RawMessage `json:"abi"`
	To    string          `json:"to"`
	Data  string          `json:"data"`
	Value string          `json:"value"`
}

// TxResponse is the JSON a frame transaction endpoint answers with.
type TxResponse struct {
	ChainID string   `json:"chainId"`
	Method  string   `json:"method"`
	Params  TxParams `json:"params"`
}

func (d CallDescriptor) TxResponse() TxResponse {
	value := "0"
	if d.Value != nil {
		value = d.Value.String()
	}
	return TxResponse{
		ChainID: d.CAIP2(),
		Method:  "eth_sendTransaction",
		Params: TxParams{
			ABI:   json.RawMessage(Creator1155ABI),
			To:    d.To.Hex(),
			Data:  hexutil.Encode(d.Data),
			Value: value,
		},
	}
}
