package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go-bank-simulator/common"
	"go-bank-simulator/logger"
	"go-bank-simulator/model"
	"go-bank-simulator/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var ErrNegativeInitialBalance = errors.New("initial balance cannot be negative")

// AccountService is the account store. It owns the authoritative in-memory
// cache of loaded accounts and the id allocator; all durable writes go
// through the repository. Cached copies are only refreshed after the
// surrounding database transaction commits, so a failed write never leaves
// the cache ahead of the store.
type AccountService struct {
	db          *sql.DB
	accountRepo repository.IAccountRepository
	ledger      *LedgerService
	cache       map[int64]*model.Account
	ids         *idAllocator
}

// NewAccountService seeds the id allocator from the ids already persisted.
func NewAccountService(db *sql.DB, accountRepo repository.IAccountRepository, ledger *LedgerService) (*AccountService, error) {
	existing, err := accountRepo.GetAccountIDs()
	if err != nil {
		return nil, fmt.Errorf("could not load existing account IDs: %w", err)
	}
	return &AccountService{
		db:          db,
		accountRepo: accountRepo,
		ledger:      ledger,
		cache:       make(map[int64]*model.Account),
		ids:         newIDAllocator(existing),
	}, nil
}

// CreateAccount validates the payload, assigns a fresh 4-digit id and writes
// the account row together with its opening ledger entry in one transaction.
func (s *AccountService) CreateAccount(ctx context.Context, req model.CreateAccountRequest) (*model.Account, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}

	initialBalance, err := decimal.NewFromString(req.InitialBalance)
	if err != nil {
		return nil, fmt.Errorf("invalid initial balance: %w", err)
	}
	if initialBalance.IsNegative() {
		return nil, ErrNegativeInitialBalance
	}

	accountID, err := s.ids.Next()
	if err != nil {
		return nil, err
	}

	account := &model.Account{
		ID:             accountID,
		OwnerName:      req.OwnerName,
		Email:          req.Email,
		DOB:            req.DOB,
		Location:       req.Location,
		Balance:        initialBalance,
		AlertThreshold: model.DefaultAlertThreshold,
	}

	log := logger.Log.WithFields(logrus.Fields{
		"account_id": account.ID,
		"owner_name": account.OwnerName,
	})
	log.Info("Creating new account")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.accountRepo.CreateAccount(tx, account); err != nil {
		return nil, fmt.Errorf("could not create account: %w", err)
	}
	if _, err := s.ledger.RecordInitialDeposit(tx, account.ID, initialBalance); err != nil {
		return nil, fmt.Errorf("could not record initial deposit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	s.cache[account.ID] = account
	log.Info("Account created successfully")
	return account, nil
}

// GetAccount returns the cached account when present, loading and caching it
// from the store otherwise.
func (s *AccountService) GetAccount(ctx context.Context, accountID int64) (*model.Account, error) {
	if account, ok := s.cache[accountID]; ok {
		return account, nil
	}

	account, err := s.accountRepo.GetAccountByID(accountID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	s.cache[accountID] = account
	return account, nil
}

// UpdateBalance persists a new balance within the caller's transaction. The
// cached copy is left untouched until the caller commits and invokes
// refreshBalance.
func (s *AccountService) UpdateBalance(tx *sql.Tx, accountID int64, newBalance decimal.Decimal) error {
	return s.accountRepo.UpdateAccountBalance(tx, accountID, newBalance)
}

// refreshBalance brings the cached copy in line with a committed balance.
func (s *AccountService) refreshBalance(accountID int64, newBalance decimal.Decimal) {
	if account, ok := s.cache[accountID]; ok {
		account.Balance = newBalance
	}
}

// ListAccounts retrieves every persisted account.
func (s *AccountService) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	return s.accountRepo.GetAllAccounts()
}
