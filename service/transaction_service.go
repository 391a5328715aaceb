package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go-bank-simulator/logger"
	"go-bank-simulator/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrAccountNotFound         = errors.New("account not found")
	ErrSenderAccountNotFound   = errors.New("sender account not found")
	ErrReceiverAccountNotFound = errors.New("receiver account not found")
	ErrSameAccountTransfer     = errors.New("cannot transfer money to the same account")
	ErrInvalidAmount           = errors.New("amount must be greater than zero")
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrOTPMismatch             = errors.New("invalid OTP, withdrawal cancelled")
)

// TransactionService orchestrates deposits, withdrawals and transfers. Each
// operation validates before mutating, runs the balance update and the ledger
// append in a single database transaction, and refreshes the account cache
// only after commit.
type TransactionService struct {
	db       *sql.DB
	accounts *AccountService
	ledger   *LedgerService
	alerts   *AlertService
}

func NewTransactionService(db *sql.DB, accounts *AccountService, ledger *LedgerService, alerts *AlertService) *TransactionService {
	return &TransactionService{
		db:       db,
		accounts: accounts,
		ledger:   ledger,
		alerts:   alerts,
	}
}

// WithdrawalChallenge carries the state of a withdrawal between the OTP
// challenge and the confirmation. It makes no assumption about where the
// response comes from; any caller that can relay a code string can complete
// the protocol.
type WithdrawalChallenge struct {
	AccountID int64
	Amount    decimal.Decimal
	Note      string
	OTP       *OTPChallenge
}

// Deposit credits an account and appends the matching ledger entry.
func (s *TransactionService) Deposit(ctx context.Context, accountID int64, amount decimal.Decimal, note string) (*model.Transaction, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id": accountID,
		"amount":     amount.String(),
	})
	log.Info("Starting deposit")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	account, err := s.accounts.accountRepo.GetAccountForUpdate(tx, accountID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	newBalance := account.Balance.Add(amount)
	if err := s.accounts.UpdateBalance(tx, accountID, newBalance); err != nil {
		return nil, fmt.Errorf("could not update balance: %w", err)
	}

	transaction, err := s.ledger.RecordDeposit(tx, accountID, amount, note)
	if err != nil {
		return nil, fmt.Errorf("could not record deposit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	s.accounts.refreshBalance(accountID, newBalance)

	log.WithField("new_balance", newBalance.String()).Info("Deposit completed successfully")
	return transaction, nil
}

// BeginWithdrawal runs the validation phase of a withdrawal and issues the
// OTP challenge. Every check must pass before a code is sent; no state
// changes here.
func (s *TransactionService) BeginWithdrawal(ctx context.Context, accountID int64, amount decimal.Decimal, note string) (*WithdrawalChallenge, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id": accountID,
		"amount":     amount.String(),
	})
	log.Info("Starting withdrawal, validating before OTP challenge")

	account, err := s.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if amount.GreaterThan(account.Balance) {
		return nil, ErrInsufficientFunds
	}

	otp, err := s.alerts.IssueOTP(account)
	if err != nil {
		return nil, fmt.Errorf("could not issue OTP: %w", err)
	}

	return &WithdrawalChallenge{
		AccountID: accountID,
		Amount:    amount,
		Note:      note,
		OTP:       otp,
	}, nil
}

// ConfirmWithdrawal completes or aborts a withdrawal. A mismatched code
// returns ErrOTPMismatch with zero side effects. On a match the debit, the
// ledger entry and the commit happen together, followed by a low-balance
// alert when the remaining balance falls below the account's threshold.
func (s *TransactionService) ConfirmWithdrawal(ctx context.Context, challenge *WithdrawalChallenge, code string) (*model.Transaction, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id": challenge.AccountID,
		"amount":     challenge.Amount.String(),
	})

	if !challenge.OTP.Verify(code) {
		log.Warn("OTP verification failed, withdrawal aborted")
		return nil, ErrOTPMismatch
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	account, err := s.accounts.accountRepo.GetAccountForUpdate(tx, challenge.AccountID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	if challenge.Amount.GreaterThan(account.Balance) {
		return nil, ErrInsufficientFunds
	}

	newBalance := account.Balance.Sub(challenge.Amount)
	if err := s.accounts.UpdateBalance(tx, account.ID, newBalance); err != nil {
		return nil, fmt.Errorf("could not update balance: %w", err)
	}

	transaction, err := s.ledger.RecordWithdrawal(tx, account.ID, challenge.Amount, challenge.Note)
	if err != nil {
		return nil, fmt.Errorf("could not record withdrawal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	s.accounts.refreshBalance(account.ID, newBalance)
	log.WithField("new_balance", newBalance.String()).Info("Withdrawal completed successfully")

	if newBalance.LessThan(account.AlertThreshold) {
		account.Balance = newBalance
		s.alerts.SendLowBalanceAlert(account)
	}

	return transaction, nil
}

// Transfer moves funds between two accounts. Both new balances are computed
// before either is persisted, and the sender is looked up and reported first
// when either side is missing.
func (s *TransactionService) Transfer(ctx context.Context, fromAccountID, toAccountID int64, amount decimal.Decimal, note string) (*model.Transaction, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"from_account_id": fromAccountID,
		"to_account_id":   toAccountID,
		"amount":          amount.String(),
	})
	log.Info("Starting transfer")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	fromAccount, err := s.accounts.accountRepo.GetAccountForUpdate(tx, fromAccountID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSenderAccountNotFound
		}
		return nil, err
	}

	toAccount, err := s.accounts.accountRepo.GetAccountForUpdate(tx, toAccountID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrReceiverAccountNotFound
		}
		return nil, err
	}

	if fromAccountID == toAccountID {
		return nil, ErrSameAccountTransfer
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if amount.GreaterThan(fromAccount.Balance) {
		return nil, ErrInsufficientFunds
	}

	fromNewBalance := fromAccount.Balance.Sub(amount)
	toNewBalance := toAccount.Balance.Add(amount)

	if err := s.accounts.UpdateBalance(tx, fromAccount.ID, fromNewBalance); err != nil {
		return nil, fmt.Errorf("could not update sender balance: %w", err)
	}
	if err := s.accounts.UpdateBalance(tx, toAccount.ID, toNewBalance); err != nil {
		return nil, fmt.Errorf("could not update receiver balance: %w", err)
	}

	transaction, err := s.ledger.RecordTransfer(tx, fromAccountID, toAccountID, amount, note)
	if err != nil {
		return nil, fmt.Errorf("could not record transfer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	s.accounts.refreshBalance(fromAccount.ID, fromNewBalance)
	s.accounts.refreshBalance(toAccount.ID, toNewBalance)

	log.WithFields(logrus.Fields{
		"sender_balance":   fromNewBalance.String(),
		"receiver_balance": toNewBalance.String(),
	}).Info("Transfer completed successfully")

	if fromNewBalance.LessThan(fromAccount.AlertThreshold) {
		fromAccount.Balance = fromNewBalance
		s.alerts.SendLowBalanceAlert(fromAccount)
	}

	return transaction, nil
}
