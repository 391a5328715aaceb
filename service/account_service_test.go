package service

import (
	"context"
	"database/sql"
	"testing"

	"go-bank-simulator/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAccountFixture(t *testing.T, existingIDs []int64) (*AccountService, sqlmock.Sqlmock, *MockAccountRepository, *MockTransactionRepository) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	accountRepo := new(MockAccountRepository)
	accountRepo.On("GetAccountIDs").Return(existingIDs, nil).Once()
	txnRepo := new(MockTransactionRepository)

	accounts, err := NewAccountService(db, accountRepo, NewLedgerService(txnRepo))
	assert.NoError(t, err)
	return accounts, dbMock, accountRepo, txnRepo
}

func validCreateRequest() model.CreateAccountRequest {
	return model.CreateAccountRequest{
		OwnerName:      "Asha Rao",
		Email:          "asha@example.com",
		DOB:            "1990-04-12",
		Location:       "Chennai",
		InitialBalance: "250.00",
	}
}

func TestAccountService_CreateAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("success writes account and initial deposit atomically", func(t *testing.T) {
		accounts, dbMock, accountRepo, txnRepo := newAccountFixture(t, nil)

		var createdID int64
		dbMock.ExpectBegin()
		accountRepo.On("CreateAccount", mock.Anything, mock.MatchedBy(func(acc *model.Account) bool {
			createdID = acc.ID
			return acc.ID >= accountIDMin && acc.ID <= accountIDMax &&
				acc.OwnerName == "Asha Rao" &&
				acc.Balance.Equal(decimal.RequireFromString("250.00")) &&
				acc.AlertThreshold.Equal(model.DefaultAlertThreshold)
		})).Return(nil).Once()
		txnRepo.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tr *model.Transaction) bool {
			return tr.Type == model.TypeInitialDeposit &&
				tr.ToAccountID != nil && *tr.ToAccountID == createdID &&
				tr.Amount.Equal(decimal.RequireFromString("250.00")) &&
				tr.Note == "Initial deposit during account creation"
		})).Return(nil).Once()
		dbMock.ExpectCommit()

		account, err := accounts.CreateAccount(ctx, validCreateRequest())

		assert.NoError(t, err)
		assert.Equal(t, createdID, account.ID)
		accountRepo.AssertExpectations(t)
		txnRepo.AssertExpectations(t)
		assert.NoError(t, dbMock.ExpectationsWereMet())

		// The new account is served from the cache without a repository read.
		cached, err := accounts.GetAccount(ctx, account.ID)
		assert.NoError(t, err)
		assert.Equal(t, account, cached)
		accountRepo.AssertNotCalled(t, "GetAccountByID", mock.Anything)
	})

	t.Run("allocated ids avoid existing rows", func(t *testing.T) {
		var taken []int64
		for id := int64(accountIDMin); id <= accountIDMax; id++ {
			if id != 7777 {
				taken = append(taken, id)
			}
		}
		accounts, dbMock, accountRepo, txnRepo := newAccountFixture(t, taken)

		dbMock.ExpectBegin()
		accountRepo.On("CreateAccount", mock.Anything, mock.Anything).Return(nil).Once()
		txnRepo.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil).Once()
		dbMock.ExpectCommit()

		account, err := accounts.CreateAccount(ctx, validCreateRequest())

		assert.NoError(t, err)
		assert.Equal(t, int64(7777), account.ID)
	})

	t.Run("invalid payload is rejected before any write", func(t *testing.T) {
		accounts, dbMock, accountRepo, _ := newAccountFixture(t, nil)

		req := validCreateRequest()
		req.Email = "not-an-email"
		_, err := accounts.CreateAccount(ctx, req)

		assert.Error(t, err)
		accountRepo.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("malformed date of birth is rejected", func(t *testing.T) {
		accounts, _, _, _ := newAccountFixture(t, nil)

		req := validCreateRequest()
		req.DOB = "12/04/1990"
		_, err := accounts.CreateAccount(ctx, req)

		assert.Error(t, err)
	})

	t.Run("negative initial balance is rejected", func(t *testing.T) {
		accounts, _, accountRepo, _ := newAccountFixture(t, nil)

		req := validCreateRequest()
		req.InitialBalance = "-10"
		_, err := accounts.CreateAccount(ctx, req)

		assert.Equal(t, ErrNegativeInitialBalance, err)
		accountRepo.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything)
	})

	t.Run("rollback on ledger failure leaves no account behind", func(t *testing.T) {
		accounts, dbMock, accountRepo, txnRepo := newAccountFixture(t, nil)

		dbMock.ExpectBegin()
		accountRepo.On("CreateAccount", mock.Anything, mock.Anything).Return(nil).Once()
		txnRepo.On("CreateTransaction", mock.Anything, mock.Anything).Return(sql.ErrConnDone).Once()
		dbMock.ExpectRollback()

		_, err := accounts.CreateAccount(ctx, validCreateRequest())

		assert.Error(t, err)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestAccountService_GetAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("loads from the store and caches", func(t *testing.T) {
		accounts, _, accountRepo, _ := newAccountFixture(t, nil)

		accountRepo.On("GetAccountByID", int64(1001)).Return(testAccount(1001, "500"), nil).Once()

		first, err := accounts.GetAccount(ctx, 1001)
		assert.NoError(t, err)
		second, err := accounts.GetAccount(ctx, 1001)
		assert.NoError(t, err)

		assert.Same(t, first, second)
		accountRepo.AssertNumberOfCalls(t, "GetAccountByID", 1)
	})

	t.Run("unknown id", func(t *testing.T) {
		accounts, _, accountRepo, _ := newAccountFixture(t, nil)

		accountRepo.On("GetAccountByID", int64(9999)).Return(nil, sql.ErrNoRows).Once()

		_, err := accounts.GetAccount(ctx, 9999)
		assert.Equal(t, ErrAccountNotFound, err)
	})
}
