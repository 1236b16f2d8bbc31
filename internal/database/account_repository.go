package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/railbook/train-booking-backend/internal/models"
)

// AccountRepository handles account database operations
type AccountRepository struct {
	db *sqlx.DB
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, username, email, password_hash, role, phone_numbers, address,
	   is_active, created_at, updated_at`

// Create inserts a new account
func (r *AccountRepository) Create(account *models.Account) error {
	query := `
		INSERT INTO accounts (username, email, password_hash, role, phone_numbers, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_active, created_at, updated_at`

	err := r.db.QueryRowx(query,
		account.Username, account.Email, account.PasswordHash, account.Role,
		pq.Array([]string(account.PhoneNumbers)), account.Address,
	).Scan(&account.ID, &account.IsActive, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username or email already registered: %w", err)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByEmail returns an account by email
func (r *AccountRepository) GetByEmail(email string) (*models.Account, error) {
	account := &models.Account{}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	if err := r.db.Get(account, query, email); err != nil {
		return nil, err
	}

	return account, nil
}

// GetByUsername returns an account by username
func (r *AccountRepository) GetByUsername(username string) (*models.Account, error) {
	account := &models.Account{}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`

	if err := r.db.Get(account, query, username); err != nil {
		return nil, err
	}

	return account, nil
}

// GetByID returns an account by id
func (r *AccountRepository) GetByID(id string) (*models.Account, error) {
	account := &models.Account{}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	if err := r.db.Get(account, query, id); err != nil {
		return nil, err
	}

	return account, nil
}
