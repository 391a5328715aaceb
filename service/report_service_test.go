package service

import (
	"bytes"
	"testing"
	"time"

	"go-bank-simulator/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestReportService_GenerateReport(t *testing.T) {
	t.Run("renders rows newest first with placeholders", func(t *testing.T) {
		from := int64(1001)
		to := int64(2002)
		txnRepo := new(MockTransactionRepository)
		txnRepo.On("ListTransactions").Return([]*model.Transaction{
			{
				ID:            2,
				Type:          model.TypeTransfer,
				FromAccountID: &from,
				ToAccountID:   &to,
				Amount:        decimal.NewFromInt(100),
				CreatedAt:     time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
				Note:          "rent",
			},
			{
				ID:          1,
				Type:        model.TypeDeposit,
				ToAccountID: &from,
				Amount:      decimal.NewFromInt(200),
				CreatedAt:   time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC),
				Note:        "Deposit transaction completed successfully",
			},
		}, nil).Once()

		report := NewReportService(NewLedgerService(txnRepo))
		var buf bytes.Buffer
		err := report.GenerateReport(&buf)

		assert.NoError(t, err)
		out := buf.String()
		assert.Contains(t, out, "Transaction History Report")
		assert.Contains(t, out, "ID")
		assert.Contains(t, out, "Transfer")
		assert.Contains(t, out, "100.00")
		// Deposit has no from_acc, rendered as a dash.
		assert.Contains(t, out, "-")
		assert.Less(t, bytes.Index(buf.Bytes(), []byte("Transfer")), bytes.Index(buf.Bytes(), []byte("Deposit")))
	})

	t.Run("empty ledger", func(t *testing.T) {
		txnRepo := new(MockTransactionRepository)
		txnRepo.On("ListTransactions").Return([]*model.Transaction{}, nil).Once()

		report := NewReportService(NewLedgerService(txnRepo))
		var buf bytes.Buffer
		err := report.GenerateReport(&buf)

		assert.NoError(t, err)
		assert.Contains(t, buf.String(), "No transactions found yet.")
	})
}
