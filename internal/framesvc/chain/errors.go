package chain

import "errors"

var (
	ErrEventNotFound = errors.New("no Purchased event in transaction receipt")
	ErrTxReverted    = errors.New("transaction reverted")
)
