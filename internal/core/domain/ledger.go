package domain

import "math/big"

// AssetLedger is the narrow interface through which a market observes and
// moves external asset balances. Balances are never mutated directly by the
// market's own data structures.
type AssetLedger interface {
	// Mint issues amount of asset to account. It must succeed at most once
	// per (account, asset) pair.
	Mint(account, asset string, amount *big.Int) error
	// Deposit credits account with amount of asset, standing in for funds
	// entering the system from outside.
	Deposit(account, asset string, amount *big.Int) error
	// BalanceOf returns the balance of asset held by account.
	BalanceOf(account, asset string) (*big.Int, error)
	// Transfer moves amount of asset between two accounts.
	Transfer(from, to, asset string, amount *big.Int) error
}

// FeeCollector is notified after every fee transfer. Implementations must
// not call back into the same market: the reentrancy guard rejects such
// nested calls.
type FeeCollector interface {
	OnFeeReceived(asset string, amount *big.Int) error
}
