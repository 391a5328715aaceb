package repository

import (
	"testing"
	"time"

	"go-bank-simulator/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionRepository_CreateTransaction(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewTransactionRepository(db)
	from := int64(1001)
	to := int64(2002)
	transaction := &model.Transaction{
		Type:          model.TypeTransfer,
		FromAccountID: &from,
		ToAccountID:   &to,
		Amount:        decimal.NewFromInt(100),
		Note:          "rent",
	}

	now := time.Now()
	dbMock.ExpectBegin()
	dbMock.ExpectQuery(`INSERT INTO transactions`).
		WithArgs(model.TypeTransfer, &from, &to, transaction.Amount, "rent").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, now))
	dbMock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)

	assert.NoError(t, repo.CreateTransaction(tx, transaction))
	assert.Equal(t, int64(7), transaction.ID)
	assert.Equal(t, now, transaction.CreatedAt)
	assert.NoError(t, tx.Commit())
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestTransactionRepository_ListTransactions(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewTransactionRepository(db)

	columns := []string{"id", "type", "from_acc", "to_acc", "amount", "created_at", "note"}
	rows := sqlmock.NewRows(columns).
		AddRow(2, "Withdraw", int64(1001), nil, "20.00", time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC), "cash").
		AddRow(1, "Deposit", nil, int64(1001), "200.00", time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC), "salary")
	dbMock.ExpectQuery(`SELECT .+ FROM transactions\s+ORDER BY created_at DESC, id DESC`).WillReturnRows(rows)

	transactions, err := repo.ListTransactions()

	assert.NoError(t, err)
	assert.Len(t, transactions, 2)

	withdraw := transactions[0]
	assert.Equal(t, model.TypeWithdraw, withdraw.Type)
	assert.Equal(t, int64(1001), *withdraw.FromAccountID)
	assert.Nil(t, withdraw.ToAccountID)
	assert.True(t, withdraw.Amount.Equal(decimal.NewFromInt(20)))

	deposit := transactions[1]
	assert.Nil(t, deposit.FromAccountID)
	assert.Equal(t, int64(1001), *deposit.ToAccountID)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
