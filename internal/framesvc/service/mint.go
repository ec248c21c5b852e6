package service

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/avvvet/tarot-frames/internal/framesvc/chain"
	"github.com/avvvet/tarot-frames/internal/framesvc/config"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/shopspring/decimal"
)

var memoArguments = func() abi.Arguments {
	addressTy, _ := abi.NewType("address", "", nil)
	stringTy, _ := abi.NewType("string", "", nil)
	return abi.Arguments{{Type: addressTy}, {Type: stringTy}}
}()

type MintService struct {
	cfg config.MintConfig
}

func NewMintService(cfg config.MintConfig) *MintService {
	return &MintService{cfg: cfg}
}

// BuildMint assembles the mint call for tokenID. Token bounds are left to the contract.
func (s *MintService) BuildMint(tokenID int64) (chain.CallDescriptor, error) {
	id := big.NewInt(tokenID)

	memo := strings.ReplaceAll(s.cfg.MemoTemplate, "{tokenId}", strconv.FormatInt(tokenID, 10))
	minterArguments, err := memoArguments.Pack(s.cfg.MemoRecipient, memo)
	if err != nil {
		return chain.CallDescriptor{}, fmt.Errorf("encode minter arguments: %w", err)
	}

	args := []interface{}{
		s.cfg.MinterAddress,
		id,
		s.cfg.Quantity,
		s.cfg.RewardRecipients,
		minterArguments,
	}

	contractABI := chain.ContractABI()
	data, err := contractABI.Pack(chain.MintMethod, args...)
	if err != nil {
		return chain.CallDescriptor{}, fmt.Errorf("encode %s call: %w", chain.MintMethod, err)
	}

	return chain.CallDescriptor{
		ChainID:      s.cfg.ChainID,
		To:           s.cfg.ContractAddress,
		FunctionName: chain.MintMethod,
		Args:         args,
		Value:        new(big.Int).Set(s.cfg.PriceWei),
		Data:         data,
	}, nil
}

// PriceETH formats the mint price in ether, e.g. "0.000777".
func (s *MintService) PriceETH() string {
	return decimal.NewFromBigInt(s.cfg.PriceWei, -18).String()
}
