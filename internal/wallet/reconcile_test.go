package wallet

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/arunkumar231105/digital-wallet-client/internal/api"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDisplayBalanceFoldsLedger(t *testing.T) {
	txs := []api.Transaction{
		{Type: api.TxDeposit, Amount: dec("100")},
		{Type: api.TxWithdraw, Amount: dec("30")},
		{Type: api.TxTransferIn, Amount: dec("10")},
		{Type: api.TxTransferOut, Amount: dec("5")},
	}

	got := DisplayBalance(dec("0"), txs)
	require.True(t, got.Equal(dec("75")), "got %s", got)

	// The authoritative figure is ignored whenever any history exists.
	got = DisplayBalance(dec("9999"), txs)
	require.True(t, got.Equal(dec("75")), "got %s", got)
}

func TestDisplayBalanceFallsBackWhenLedgerEmpty(t *testing.T) {
	got := DisplayBalance(dec("50"), nil)
	require.True(t, got.Equal(dec("50")), "got %s", got)

	got = DisplayBalance(decimal.Decimal{}, nil)
	require.True(t, got.Equal(decimal.Zero), "got %s", got)
}

func TestDisplayBalanceIgnoresUnknownTypes(t *testing.T) {
	txs := []api.Transaction{
		{Type: api.TxDeposit, Amount: dec("10")},
		{Type: "adjustment", Amount: dec("100")},
	}
	got := DisplayBalance(dec("0"), txs)
	require.True(t, got.Equal(dec("10")), "got %s", got)
}

func TestDisplayBalanceIsExact(t *testing.T) {
	// 0.1 + 0.2 must be exactly 0.3, not a float approximation.
	txs := []api.Transaction{
		{Type: api.TxDeposit, Amount: dec("0.1")},
		{Type: api.TxDeposit, Amount: dec("0.2")},
	}
	got := DisplayBalance(dec("0"), txs)
	require.True(t, got.Equal(dec("0.3")), "got %s", got)
}

func TestFormatAmount(t *testing.T) {
	require.Equal(t, "75.00", FormatAmount(dec("75")))
	require.Equal(t, "0.30", FormatAmount(dec("0.3")))
	require.Equal(t, "-12.50", FormatAmount(dec("-12.5")))
}
