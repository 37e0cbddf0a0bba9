package dbbadger

import (
	"errors"
	"math/big"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/bondex-network/bondex-daemon/internal/core/domain"
	"github.com/bondex-network/bondex-daemon/internal/infrastructure/ledger"
)

// Balance is the stored record of the funds an account holds for one asset.
// The amount is kept as a decimal string like the Trade amounts.
type Balance struct {
	Account string
	Asset   string
	Amount  string
	Minted  bool
}

type assetLedgerImpl struct {
	store *badgerhold.Store
}

// NewAssetLedgerImpl initializes a badger implementation of the
// domain.AssetLedger, persisting balances alongside the repositories so they
// survive restarts.
func NewAssetLedgerImpl(store *badgerhold.Store) domain.AssetLedger {
	return assetLedgerImpl{store}
}

func (l assetLedgerImpl) Mint(account, asset string, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ledger.ErrInvalidAmount
	}
	return l.store.Badger().Update(func(tx *badger.Txn) error {
		balance, err := l.getBalance(tx, account, asset)
		if err != nil {
			return err
		}
		if balance.Minted {
			return ledger.ErrAlreadyMinted
		}
		balance.Minted = true
		return l.credit(tx, balance, amount)
	})
}

func (l assetLedgerImpl) Deposit(account, asset string, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ledger.ErrInvalidAmount
	}
	return l.store.Badger().Update(func(tx *badger.Txn) error {
		balance, err := l.getBalance(tx, account, asset)
		if err != nil {
			return err
		}
		return l.credit(tx, balance, amount)
	})
}

func (l assetLedgerImpl) BalanceOf(account, asset string) (*big.Int, error) {
	amount := new(big.Int)
	err := l.store.Badger().View(func(tx *badger.Txn) error {
		balance, err := l.getBalance(tx, account, asset)
		if err != nil {
			return err
		}
		amount = balance.amount()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return amount, nil
}

// Transfer debits and credits within a single badger transaction, so a
// crashed transfer is never half applied.
func (l assetLedgerImpl) Transfer(from, to, asset string, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ledger.ErrInvalidAmount
	}
	if amount.Sign() == 0 {
		return nil
	}
	return l.store.Badger().Update(func(tx *badger.Txn) error {
		sender, err := l.getBalance(tx, from, asset)
		if err != nil {
			return err
		}
		if sender.amount().Cmp(amount) < 0 {
			return ledger.ErrInsufficientFunds
		}
		if err := l.credit(tx, sender, new(big.Int).Neg(amount)); err != nil {
			return err
		}
		receiver, err := l.getBalance(tx, to, asset)
		if err != nil {
			return err
		}
		return l.credit(tx, receiver, amount)
	})
}

func (l assetLedgerImpl) getBalance(
	tx *badger.Txn, account, asset string,
) (*Balance, error) {
	var balance Balance
	if err := l.store.TxGet(tx, balanceKey(account, asset), &balance); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return &Balance{Account: account, Asset: asset, Amount: "0"}, nil
		}
		return nil, err
	}
	return &balance, nil
}

func (l assetLedgerImpl) credit(
	tx *badger.Txn, balance *Balance, amount *big.Int,
) error {
	balance.Amount = new(big.Int).Add(balance.amount(), amount).String()
	return l.store.TxUpsert(tx, balanceKey(balance.Account, balance.Asset), *balance)
}

func (b *Balance) amount() *big.Int {
	amount, ok := new(big.Int).SetString(b.Amount, 10)
	if !ok {
		return new(big.Int)
	}
	return amount
}

func balanceKey(account, asset string) string {
	return account + "/" + asset
}
