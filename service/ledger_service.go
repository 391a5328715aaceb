package service

import (
	"database/sql"
	"fmt"

	"go-bank-simulator/model"
	"go-bank-simulator/repository"

	"github.com/shopspring/decimal"
)

// LedgerService owns the append-only transaction ledger. Entries are written
// inside the caller's database transaction so a ledger append and the balance
// change it describes commit or roll back together.
type LedgerService struct {
	transactionRepo repository.ITransactionRepository
}

func NewLedgerService(transactionRepo repository.ITransactionRepository) *LedgerService {
	return &LedgerService{transactionRepo: transactionRepo}
}

// defaultNote fills in the legacy type-specific message when the caller
// supplied no annotation.
func defaultNote(transactionType model.TransactionType, note string) string {
	if note != "" {
		return note
	}
	if transactionType == model.TypeInitialDeposit {
		return "Initial deposit during account creation"
	}
	return fmt.Sprintf("%s transaction completed successfully", transactionType)
}

// RecordDeposit appends a credit entry referencing the account through to_acc.
func (s *LedgerService) RecordDeposit(tx *sql.Tx, accountID int64, amount decimal.Decimal, note string) (*model.Transaction, error) {
	transaction := &model.Transaction{
		Type:        model.TypeDeposit,
		ToAccountID: &accountID,
		Amount:      amount,
		Note:        defaultNote(model.TypeDeposit, note),
	}
	if err := s.transactionRepo.CreateTransaction(tx, transaction); err != nil {
		return nil, err
	}
	return transaction, nil
}

// RecordWithdrawal appends a debit entry referencing the account through from_acc.
func (s *LedgerService) RecordWithdrawal(tx *sql.Tx, accountID int64, amount decimal.Decimal, note string) (*model.Transaction, error) {
	transaction := &model.Transaction{
		Type:          model.TypeWithdraw,
		FromAccountID: &accountID,
		Amount:        amount,
		Note:          defaultNote(model.TypeWithdraw, note),
	}
	if err := s.transactionRepo.CreateTransaction(tx, transaction); err != nil {
		return nil, err
	}
	return transaction, nil
}

// RecordInitialDeposit appends the opening credit written alongside account creation.
func (s *LedgerService) RecordInitialDeposit(tx *sql.Tx, accountID int64, amount decimal.Decimal) (*model.Transaction, error) {
	transaction := &model.Transaction{
		Type:        model.TypeInitialDeposit,
		ToAccountID: &accountID,
		Amount:      amount,
		Note:        defaultNote(model.TypeInitialDeposit, ""),
	}
	if err := s.transactionRepo.CreateTransaction(tx, transaction); err != nil {
		return nil, err
	}
	return transaction, nil
}

// RecordTransfer appends a two-account entry referencing both sides.
func (s *LedgerService) RecordTransfer(tx *sql.Tx, fromAccountID, toAccountID int64, amount decimal.Decimal, note string) (*model.Transaction, error) {
	transaction := &model.Transaction{
		Type:          model.TypeTransfer,
		FromAccountID: &fromAccountID,
		ToAccountID:   &toAccountID,
		Amount:        amount,
		Note:          defaultNote(model.TypeTransfer, note),
	}
	if err := s.transactionRepo.CreateTransaction(tx, transaction); err != nil {
		return nil, err
	}
	return transaction, nil
}

// ListTransactions returns the full ledger, newest first. Every call queries
// the store again, so the caller always sees a fresh snapshot.
func (s *LedgerService) ListTransactions() ([]*model.Transaction, error) {
	return s.transactionRepo.ListTransactions()
}
