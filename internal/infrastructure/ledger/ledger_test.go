package ledger_test

import (
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bondex-network/bondex-daemon/internal/infrastructure/ledger"
)

func TestLedgerMint(t *testing.T) {
	t.Parallel()

	l := ledger.NewLedger()

	err := l.Mint("alice", "USD", big.NewInt(100))
	require.NoError(t, err)

	balance, err := l.BalanceOf("alice", "USD")
	require.NoError(t, err)
	require.Equal(t, int64(100), balance.Int64())

	// Minting twice for the same (account, asset) pair is rejected, a
	// different asset for the same account is fine.
	err = l.Mint("alice", "USD", big.NewInt(1))
	require.EqualError(t, err, ledger.ErrAlreadyMinted.Error())

	err = l.Mint("alice", "TOKEN", big.NewInt(1))
	require.NoError(t, err)

	err = l.Mint("bob", "USD", big.NewInt(0))
	require.EqualError(t, err, ledger.ErrInvalidAmount.Error())
}

func TestLedgerDeposit(t *testing.T) {
	t.Parallel()

	l := ledger.NewLedger()

	// Deposits accumulate and carry no once-only restriction.
	require.NoError(t, l.Deposit("alice", "USD", big.NewInt(100)))
	require.NoError(t, l.Deposit("alice", "USD", big.NewInt(25)))

	balance, err := l.BalanceOf("alice", "USD")
	require.NoError(t, err)
	require.Equal(t, int64(125), balance.Int64())

	err = l.Deposit("alice", "USD", big.NewInt(0))
	require.EqualError(t, err, ledger.ErrInvalidAmount.Error())
	err = l.Deposit("alice", "USD", nil)
	require.EqualError(t, err, ledger.ErrInvalidAmount.Error())
}

func TestLedgerTransfer(t *testing.T) {
	t.Parallel()

	l := ledger.NewLedger()
	require.NoError(t, l.Mint("alice", "USD", big.NewInt(100)))

	err := l.Transfer("alice", "bob", "USD", big.NewInt(60))
	require.NoError(t, err)

	aliceBalance, _ := l.BalanceOf("alice", "USD")
	require.Equal(t, int64(40), aliceBalance.Int64())
	bobBalance, _ := l.BalanceOf("bob", "USD")
	require.Equal(t, int64(60), bobBalance.Int64())

	err = l.Transfer("alice", "bob", "USD", big.NewInt(41))
	require.EqualError(t, err, ledger.ErrInsufficientFunds.Error())

	// Zero transfers are a no-op, negative amounts are rejected.
	err = l.Transfer("alice", "bob", "USD", big.NewInt(0))
	require.NoError(t, err)
	err = l.Transfer("alice", "bob", "USD", big.NewInt(-1))
	require.EqualError(t, err, ledger.ErrInvalidAmount.Error())

	balance, _ := l.BalanceOf("unknown", "USD")
	require.Zero(t, balance.Sign())
}

func TestLedgerConcurrentTransfers(t *testing.T) {
	t.Parallel()

	l := ledger.NewLedger()
	require.NoError(t, l.Mint("treasury", "USD", big.NewInt(1000)))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				require.NoError(t, l.Transfer("treasury", "sink", "USD", big.NewInt(1)))
			}
		}()
	}
	wg.Wait()

	treasuryBalance, _ := l.BalanceOf("treasury", "USD")
	require.Equal(t, int64(900), treasuryBalance.Int64())
	sinkBalance, _ := l.BalanceOf("sink", "USD")
	require.Equal(t, int64(100), sinkBalance.Int64())
}

func TestCollector(t *testing.T) {
	t.Parallel()

	c := ledger.NewCollector()
	require.Zero(t, c.TotalFor("USD").Sign())

	require.NoError(t, c.OnFeeReceived("USD", big.NewInt(10)))
	require.NoError(t, c.OnFeeReceived("USD", big.NewInt(32)))
	require.NoError(t, c.OnFeeReceived("TOKEN", big.NewInt(5)))

	require.Equal(t, int64(42), c.TotalFor("USD").Int64())
	require.Equal(t, int64(5), c.TotalFor("TOKEN").Int64())
}
