package contract

import "errors"

var (
	ErrContractNotFound = errors.New("contract not found")
	ErrContractInactive = errors.New("contract is inactive")
)
