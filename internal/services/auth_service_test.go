package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/railbook/train-booking-backend/internal/apperrors"
	"github.com/railbook/train-booking-backend/internal/database"
	"github.com/railbook/train-booking-backend/internal/models"
	"github.com/railbook/train-booking-backend/pkg/jwt"
)

var accountTestColumns = []string{
	"id", "username", "email", "password_hash", "role", "phone_numbers", "address",
	"is_active", "created_at", "updated_at",
}

func newAuthService(t *testing.T) (*AuthService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	jwtService := jwt.NewService(
		"test-access-secret-key-123456789",
		"test-refresh-secret-key-123456789",
		time.Hour,
		24*time.Hour,
	)
	svc := NewAuthService(database.NewAccountRepository(sqlxDB), jwtService, bcrypt.MinCost, newTestLogger())
	return svc, mock
}

func TestRegister(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, mock := newAuthService(t)

		accountID := uuid.NewString()
		mock.ExpectQuery(`INSERT INTO accounts`).
			WithArgs("nimal", "nimal@example.com", sqlmock.AnyArg(), models.AccountRoleUser,
				sqlmock.AnyArg(), "Colombo").
			WillReturnRows(sqlmock.NewRows([]string{"id", "is_active", "created_at", "updated_at"}).
				AddRow(accountID, true, time.Now(), time.Now()))

		resp, err := svc.Register(&models.RegisterRequest{
			Username:     "nimal",
			Email:        "nimal@example.com",
			Password:     "secret123",
			PhoneNumbers: []string{"+94712345678"},
			Address:      "Colombo",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, accountID, resp.Account.ID)
		assert.NotEqual(t, "secret123", resp.Account.PasswordHash)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		svc, mock := newAuthService(t)

		mock.ExpectQuery(`INSERT INTO accounts`).
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := svc.Register(&models.RegisterRequest{
			Username: "nimal",
			Email:    "nimal@example.com",
			Password: "secret123",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Short Password", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.Register(&models.RegisterRequest{
			Username: "nimal",
			Email:    "nimal@example.com",
			Password: "abc",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	accountRow := func(active bool) *sqlmock.Rows {
		return sqlmock.NewRows(accountTestColumns).AddRow(
			uuid.NewString(), "nimal", "nimal@example.com", string(hash), "user",
			"{+94712345678}", "Colombo", active, time.Now(), time.Now())
	}

	t.Run("Success", func(t *testing.T) {
		svc, mock := newAuthService(t)

		mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE email`).
			WithArgs("nimal@example.com").
			WillReturnRows(accountRow(true))

		resp, err := svc.Login(&models.LoginRequest{Email: "nimal@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "nimal", resp.Account.Username)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Wrong Password", func(t *testing.T) {
		svc, mock := newAuthService(t)

		mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE email`).
			WithArgs("nimal@example.com").
			WillReturnRows(accountRow(true))

		_, err := svc.Login(&models.LoginRequest{Email: "nimal@example.com", Password: "wrong"})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		assert.Contains(t, err.Error(), "invalid email or password")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Email", func(t *testing.T) {
		svc, mock := newAuthService(t)

		mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE email`).
			WithArgs("ghost@example.com").
			WillReturnError(sql.ErrNoRows)

		_, err := svc.Login(&models.LoginRequest{Email: "ghost@example.com", Password: "secret123"})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		assert.Contains(t, err.Error(), "invalid email or password")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Disabled Account", func(t *testing.T) {
		svc, mock := newAuthService(t)

		mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE email`).
			WithArgs("nimal@example.com").
			WillReturnRows(accountRow(false))

		_, err := svc.Login(&models.LoginRequest{Email: "nimal@example.com", Password: "secret123"})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		assert.Contains(t, err.Error(), "disabled")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
