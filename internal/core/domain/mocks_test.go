package domain_test

import (
	"errors"
	"math/big"

	"github.com/bondex-network/bondex-daemon/internal/core/domain"
)

/*
 * AssetLedger
 */
type mockLedger struct {
	balances map[string]map[string]*big.Int
	minted   map[string]struct{}
}

func newMockLedger() *mockLedger {
	return &mockLedger{
		balances: make(map[string]map[string]*big.Int),
		minted:   make(map[string]struct{}),
	}
}

func (l *mockLedger) Mint(account, asset string, amount *big.Int) error {
	key := account + "/" + asset
	if _, ok := l.minted[key]; ok {
		return errors.New("already minted")
	}
	l.minted[key] = struct{}{}
	l.credit(account, asset, amount)
	return nil
}

func (l *mockLedger) Deposit(account, asset string, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return errors.New("invalid amount")
	}
	l.credit(account, asset, amount)
	return nil
}

func (l *mockLedger) BalanceOf(account, asset string) (*big.Int, error) {
	if assets, ok := l.balances[account]; ok {
		if balance, ok := assets[asset]; ok {
			return new(big.Int).Set(balance), nil
		}
	}
	return new(big.Int), nil
}

func (l *mockLedger) Transfer(from, to, asset string, amount *big.Int) error {
	balance, _ := l.BalanceOf(from, asset)
	if balance.Cmp(amount) < 0 {
		return errors.New("insufficient funds")
	}
	l.credit(from, asset, new(big.Int).Neg(amount))
	l.credit(to, asset, amount)
	return nil
}

func (l *mockLedger) credit(account, asset string, amount *big.Int) {
	assets, ok := l.balances[account]
	if !ok {
		assets = make(map[string]*big.Int)
		l.balances[account] = assets
	}
	balance, ok := assets[asset]
	if !ok {
		balance = new(big.Int)
		assets[asset] = balance
	}
	balance.Add(balance, amount)
}

/*
 * FeeCollector
 */
var errMockCollector = errors.New("collector unavailable")

type mockCollector struct {
	received map[string]*big.Int
	err      error
}

func newMockCollector() *mockCollector {
	return &mockCollector{received: make(map[string]*big.Int)}
}

func (c *mockCollector) OnFeeReceived(asset string, amount *big.Int) error {
	if c.err != nil {
		return c.err
	}
	total, ok := c.received[asset]
	if !ok {
		total = new(big.Int)
		c.received[asset] = total
	}
	total.Add(total, amount)
	return nil
}

// reentrantCollector tries to swap against the market from within the fee
// notification and records the outcome.
type reentrantCollector struct {
	market     *domain.Market
	ledger     domain.AssetLedger
	priceLimit *big.Int
	innerErr   error
}

func (c *reentrantCollector) OnFeeReceived(asset string, amount *big.Int) error {
	_, c.innerErr = c.market.Swap(
		c.ledger, c, "intruder", "intruder",
		false, big.NewInt(1), c.priceLimit,
	)
	return nil
}

// migrateCollector tries to terminate the market from within the fee
// notification and records the outcome.
type migrateCollector struct {
	market    *domain.Market
	ledger    domain.AssetLedger
	recipient string
	innerErr  error
}

func (c *migrateCollector) OnFeeReceived(asset string, amount *big.Int) error {
	c.innerErr = c.market.Migrate(c.ledger, c.market.CollectorAddress, c.recipient)
	return nil
}
