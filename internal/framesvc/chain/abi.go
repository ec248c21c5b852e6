package chain

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Creator1155ABI is the slice of the Zora creator 1155 implementation used by the frame:
// the payable mint entrypoint and the Purchased event it emits.
const Creator1155ABI = `[
  {
    "type": "function",
    "name": "mint",
    "stateMutability": "payable",
    "inputs": [
      {"name": "minter", "type": "address", "internalType": "contract IMinter1155"},
      {"name": "tokenId", "type": "uint256", "internalType": "uint256"},
      {"name": "quantity", "type": "uint256", "internalType": "uint256"},
      {"name": "rewardsRecipients", "type": "address[]", "internalType": "address[]"},
      {"name": "minterArguments", "type": "bytes", "internalType": "bytes"}
    ],
    "outputs": []
  },
  {
    "type": "event",
    "name": "Purchased",
    "anonymous": false,
    "inputs": [
      {"name": "sender", "type": "address", "indexed": true, "internalType": "address"},
      {"name": "minter", "type": "address", "indexed": true, "internalType": "address"},
      {"name": "tokenId", "type": "uint256", "indexed": true, "internalType": "uint256"},
      {"name": "quantity", "type": "uint256", "indexed": false, "internalType": "uint256"},
      {"name": "value", "type": "uint256", "indexed": false, "internalType": "uint256"}
    ]
  }
]`

const (
	MintMethod     = "mint"
	PurchasedEvent = "Purchased"
)

var contractABI = mustParseABI(Creator1155ABI)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}

// ContractABI returns the parsed creator 1155 ABI.
func ContractABI() abi.ABI {
	return contractABI
}
