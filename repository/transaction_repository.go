package repository

import (
	"database/sql"

	"go-bank-simulator/logger"
	"go-bank-simulator/model"

	"github.com/sirupsen/logrus"
)

// ITransactionRepository defines the contract for ledger database operations.
// Ledger rows are append-only; there is no update or delete.
type ITransactionRepository interface {
	CreateTransaction(tx *sql.Tx, transaction *model.Transaction) error
	ListTransactions() ([]*model.Transaction, error)
}

// TransactionRepository implements ITransactionRepository.
type TransactionRepository struct {
	DB *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

// CreateTransaction appends a ledger entry within the given transaction.
// The database assigns the id and the timestamp.
func (r *TransactionRepository) CreateTransaction(tx *sql.Tx, transaction *model.Transaction) error {
	log := logger.Log.WithFields(logrus.Fields{
		"type":   transaction.Type,
		"amount": transaction.Amount.String(),
	})
	log.Info("Executing query to create a new transaction")

	query := `INSERT INTO transactions (type, from_acc, to_acc, amount, note)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := tx.QueryRow(query, transaction.Type, transaction.FromAccountID, transaction.ToAccountID,
		transaction.Amount, transaction.Note).Scan(&transaction.ID, &transaction.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create transaction query")
		return err
	}
	return nil
}

// ListTransactions retrieves the full ledger, newest entries first. Each call
// runs a fresh query, so repeated calls observe newly appended rows.
func (r *TransactionRepository) ListTransactions() ([]*model.Transaction, error) {
	log := logger.Log
	log.Info("Executing query to list all transactions")

	query := `
		SELECT id, type, from_acc, to_acc, amount, created_at, note
		FROM transactions
		ORDER BY created_at DESC, id DESC`

	rows, err := r.DB.Query(query)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for transactions")
		return nil, err
	}
	defer rows.Close()

	var transactions []*model.Transaction
	for rows.Next() {
		var t model.Transaction
		var fromAcc, toAcc sql.NullInt64
		if err := rows.Scan(&t.ID, &t.Type, &fromAcc, &toAcc, &t.Amount, &t.CreatedAt, &t.Note); err != nil {
			log.WithError(err).Error("Failed to scan transaction row")
			return nil, err
		}
		if fromAcc.Valid {
			t.FromAccountID = &fromAcc.Int64
		}
		if toAcc.Valid {
			t.ToAccountID = &toAcc.Int64
		}
		transactions = append(transactions, &t)
	}

	return transactions, rows.Err()
}
