// Package ledger provides an in-process implementation of the asset ledger
// the markets settle against: one-time mints, balance queries and transfers
// keyed by (account, asset).
package ledger

import (
	"errors"
	"math/big"
	"sync"
)

var (
	// ErrInvalidAmount ...
	ErrInvalidAmount = errors.New("ledger: amount must be positive")
	// ErrAlreadyMinted is returned when minting twice for the same
	// (account, asset) pair.
	ErrAlreadyMinted = errors.New("ledger: asset already minted for account")
	// ErrInsufficientFunds ...
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")
)

// Ledger is a thread-safe in-memory asset ledger.
type Ledger struct {
	mtx      sync.Mutex
	balances map[string]map[string]*big.Int
	minted   map[string]struct{}
}

// NewLedger ...
func NewLedger() *Ledger {
	return &Ledger{
		balances: make(map[string]map[string]*big.Int),
		minted:   make(map[string]struct{}),
	}
}

// Mint issues amount of asset to account. It succeeds at most once per
// (account, asset) pair.
func (l *Ledger) Mint(account, asset string, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	l.mtx.Lock()
	defer l.mtx.Unlock()

	key := account + "/" + asset
	if _, ok := l.minted[key]; ok {
		return ErrAlreadyMinted
	}
	l.minted[key] = struct{}{}
	l.credit(account, asset, amount)
	return nil
}

// Deposit credits account with amount of asset. Unlike Mint it carries no
// one-time restriction, it stands in for funds entering the system from
// outside.
func (l *Ledger) Deposit(account, asset string, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	l.mtx.Lock()
	defer l.mtx.Unlock()

	l.credit(account, asset, amount)
	return nil
}

// BalanceOf returns the balance of asset held by account.
func (l *Ledger) BalanceOf(account, asset string) (*big.Int, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	return new(big.Int).Set(l.balance(account, asset)), nil
}

// Transfer moves amount of asset from one account to another.
func (l *Ledger) Transfer(from, to, asset string, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	if amount.Sign() == 0 {
		return nil
	}
	l.mtx.Lock()
	defer l.mtx.Unlock()

	balance := l.balance(from, asset)
	if balance.Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}
	balance.Sub(balance, amount)
	l.credit(to, asset, amount)
	return nil
}

func (l *Ledger) balance(account, asset string) *big.Int {
	accountBalances, ok := l.balances[account]
	if !ok {
		accountBalances = make(map[string]*big.Int)
		l.balances[account] = accountBalances
	}
	balance, ok := accountBalances[asset]
	if !ok {
		balance = new(big.Int)
		accountBalances[asset] = balance
	}
	return balance
}

func (l *Ledger) credit(account, asset string, amount *big.Int) {
	balance := l.balance(account, asset)
	balance.Add(balance, amount)
}
