package domain

import "errors"

var (
	// ErrWalletRequired is returned when a write arrives without a wallet address.
	ErrWalletRequired = errors.New("wallet address required")
	// ErrUnknownCoin indicates a match outside the fixed coin set on the write path.
	ErrUnknownCoin = errors.New("unknown memecoin")
	// ErrInvalidCommand indicates a donation command that does not parse.
	ErrInvalidCommand = errors.New("invalid command format")
	// ErrInvalidAddress indicates a malformed wallet address.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrInvalidAmount indicates a donation amount that is not a valid number.
	ErrInvalidAmount = errors.New("invalid donation amount format")
	// ErrAmountTooSmall indicates a donation below the minimum.
	ErrAmountTooSmall = errors.New("minimum donation is 0.0001 ETH")
	// ErrAmountTooLarge indicates a donation above the maximum.
	ErrAmountTooLarge = errors.New("maximum donation is 100 ETH")
)
