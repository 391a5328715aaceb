package repository

import (
	"database/sql"

	"go-bank-simulator/logger"
	"go-bank-simulator/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// IAccountRepository defines the contract for account database operations.
type IAccountRepository interface {
	CreateAccount(tx *sql.Tx, account *model.Account) error
	GetAccountByID(accountID int64) (*model.Account, error)
	GetAccountForUpdate(tx *sql.Tx, accountID int64) (*model.Account, error)
	UpdateAccountBalance(tx *sql.Tx, accountID int64, newBalance decimal.Decimal) error
	GetAllAccounts() ([]*model.Account, error)
	GetAccountIDs() ([]int64, error)
}

// AccountRepository implements IAccountRepository.
type AccountRepository struct {
	DB *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{DB: db}
}

// CreateAccount inserts a new account row within the given transaction.
func (r *AccountRepository) CreateAccount(tx *sql.Tx, account *model.Account) error {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id": account.ID,
		"owner_name": account.OwnerName,
	})
	log.Info("Executing query to create a new account")

	query := `INSERT INTO accounts (id, owner_name, email, dob, location, balance, alert_threshold)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := tx.Exec(query, account.ID, account.OwnerName, account.Email, account.DOB,
		account.Location, account.Balance, account.AlertThreshold)
	if err != nil {
		log.WithError(err).Error("Failed to execute create account query")
		return err
	}
	return nil
}

// GetAccountByID retrieves a single account. Returns sql.ErrNoRows when no
// such account exists.
func (r *AccountRepository) GetAccountByID(accountID int64) (*model.Account, error) {
	log := logger.Log.WithField("account_id", accountID)
	log.Info("Executing query to get account by ID")

	account := &model.Account{}
	query := `SELECT id, owner_name, email, dob, location, balance, alert_threshold FROM accounts WHERE id = $1`
	err := r.DB.QueryRow(query, accountID).Scan(&account.ID, &account.OwnerName, &account.Email,
		&account.DOB, &account.Location, &account.Balance, &account.AlertThreshold)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Info("Account not found")
		} else {
			log.WithError(err).Error("Failed to execute get account query")
		}
		return nil, err
	}
	return account, nil
}

// GetAccountForUpdate retrieves an account with a row lock held for the
// remainder of the transaction.
func (r *AccountRepository) GetAccountForUpdate(tx *sql.Tx, accountID int64) (*model.Account, error) {
	log := logger.Log.WithField("account_id", accountID)
	log.Info("Executing query to get account for update")

	account := &model.Account{}
	query := `SELECT id, owner_name, email, dob, location, balance, alert_threshold FROM accounts WHERE id = $1 FOR UPDATE`
	err := tx.QueryRow(query, accountID).Scan(&account.ID, &account.OwnerName, &account.Email,
		&account.DOB, &account.Location, &account.Balance, &account.AlertThreshold)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Info("Account not found for update")
		} else {
			log.WithError(err).Error("Failed to execute get account for update query")
		}
		return nil, err
	}
	return account, nil
}

// UpdateAccountBalance persists a new balance within the given transaction.
func (r *AccountRepository) UpdateAccountBalance(tx *sql.Tx, accountID int64, newBalance decimal.Decimal) error {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id":  accountID,
		"new_balance": newBalance.String(),
	})
	log.Info("Executing query to update account balance")

	query := `UPDATE accounts SET balance = $1 WHERE id = $2`
	_, err := tx.Exec(query, newBalance, accountID)
	if err != nil {
		log.WithError(err).Error("Failed to execute update account balance query")
		return err
	}
	return nil
}

// GetAllAccounts retrieves every account, ordered by id.
func (r *AccountRepository) GetAllAccounts() ([]*model.Account, error) {
	log := logger.Log
	log.Info("Executing query to get all accounts")

	query := `SELECT id, owner_name, email, dob, location, balance, alert_threshold FROM accounts ORDER BY id`
	rows, err := r.DB.Query(query)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for all accounts")
		return nil, err
	}
	defer rows.Close()

	var accounts []*model.Account
	for rows.Next() {
		var acc model.Account
		if err := rows.Scan(&acc.ID, &acc.OwnerName, &acc.Email, &acc.DOB,
			&acc.Location, &acc.Balance, &acc.AlertThreshold); err != nil {
			log.WithError(err).Error("Failed to scan account row")
			return nil, err
		}
		accounts = append(accounts, &acc)
	}
	return accounts, rows.Err()
}

// GetAccountIDs retrieves the ids of every persisted account. Used to seed
// the id allocator so fresh ids never collide with existing rows.
func (r *AccountRepository) GetAccountIDs() ([]int64, error) {
	log := logger.Log
	log.Info("Executing query to get all account IDs")

	rows, err := r.DB.Query(`SELECT id FROM accounts`)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for account IDs")
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			log.WithError(err).Error("Failed to scan account ID row")
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
