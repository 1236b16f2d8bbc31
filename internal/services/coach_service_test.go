package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railbook/train-booking-backend/internal/apperrors"
	"github.com/railbook/train-booking-backend/internal/database"
	"github.com/railbook/train-booking-backend/internal/models"
)

func newCoachService(t *testing.T) (*CoachService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	svc := NewCoachService(
		database.NewCoachRepository(sqlxDB),
		database.NewTrainRepository(sqlxDB),
		database.NewTrainInstanceRepository(sqlxDB),
		newTestLogger(),
	)
	return svc, mock
}

func TestAddCoach(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, mock := newCoachService(t)

		expectTrainLookup(mock, "101", 1500, 800)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO coaches`).
			WithArgs("101", "A2", models.CoachTypeAC).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("coach-id-1", time.Now()))
		for n := 1; n <= 10; n++ {
			mock.ExpectQuery(`INSERT INTO coach_seats`).
				WithArgs("coach-id-1", n).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("seat-id"))
		}
		mock.ExpectCommit()

		// The new seat count is pushed into every upcoming journey summary.
		mock.ExpectExec(`INSERT INTO train_instance_coaches`).
			WithArgs("101", "A2", models.CoachTypeAC, 10, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 3))

		coach, err := svc.AddCoach(&models.CreateCoachRequest{
			TrainNumber: "101", CoachNumber: "A2", CoachType: models.CoachTypeAC,
		})
		require.NoError(t, err)
		assert.Equal(t, "coach-id-1", coach.ID)
		assert.Len(t, coach.Seats, 10)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Train Not Found", func(t *testing.T) {
		svc, mock := newCoachService(t)

		mock.ExpectQuery(`SELECT (.+) FROM trains WHERE train_number`).
			WithArgs("999").
			WillReturnError(sql.ErrNoRows)

		_, err := svc.AddCoach(&models.CreateCoachRequest{
			TrainNumber: "999", CoachNumber: "A2", CoachType: models.CoachTypeAC,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Invalid Coach Type", func(t *testing.T) {
		svc, _ := newCoachService(t)

		_, err := svc.AddCoach(&models.CreateCoachRequest{
			TrainNumber: "101", CoachNumber: "A2", CoachType: "FirstClass",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})
}

func TestGetCoachDetails(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		svc, mock := newCoachService(t)

		mock.ExpectQuery(`SELECT (.+) FROM coaches WHERE coach_number`).
			WithArgs("A1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "train_number", "coach_number", "coach_type", "created_at"}).
				AddRow("coach-id-1", "101", "A1", "AC", time.Now()))
		mock.ExpectQuery(`SELECT (.+) FROM coach_seats`).
			WithArgs("coach-id-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "coach_id", "seat_number", "is_available"}).
				AddRow("seat-1", "coach-id-1", 1, true).
				AddRow("seat-2", "coach-id-1", 2, false))

		coach, err := svc.GetCoachDetails("A1")
		require.NoError(t, err)
		require.Len(t, coach.Seats, 2)
		assert.True(t, coach.Seats[0].IsAvailable)
		assert.False(t, coach.Seats[1].IsAvailable)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		svc, mock := newCoachService(t)

		mock.ExpectQuery(`SELECT (.+) FROM coaches WHERE coach_number`).
			WithArgs("Z9").
			WillReturnError(sql.ErrNoRows)

		_, err := svc.GetCoachDetails("Z9")
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
