// Package wallet derives the balance figure the client displays.
package wallet

import (
	"github.com/shopspring/decimal"

	"github.com/arunkumar231105/digital-wallet-client/internal/api"
)

// DisplayBalance reconciles the balance to show from a transaction ledger and
// an authoritative fallback. Once any history exists the ledger wins outright:
// it reflects every mutation the client has observed, whereas the
// authoritative figure may be a stale snapshot from wallet creation. With no
// history the authoritative value is used as-is.
func DisplayBalance(authoritative decimal.Decimal, txs []api.Transaction) decimal.Decimal {
	if len(txs) == 0 {
		return authoritative
	}

	sum := decimal.Zero
	for _, tx := range txs {
		switch tx.Type {
		case api.TxDeposit, api.TxTransferIn:
			sum = sum.Add(tx.Amount)
		case api.TxWithdraw, api.TxTransferOut:
			sum = sum.Sub(tx.Amount)
		}
	}
	return sum
}

// FormatAmount renders an amount with the fixed two-decimal display format.
// No rounding is applied beyond the display itself.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
