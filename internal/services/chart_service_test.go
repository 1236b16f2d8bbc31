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

func newChartService(t *testing.T) (*ChartService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	svc := NewChartService(
		database.NewTrainRepository(sqlxDB),
		database.NewTrainInstanceRepository(sqlxDB),
		database.NewCoachRepository(sqlxDB),
	)
	return svc, mock
}

func TestGetReservationChart(t *testing.T) {
	t.Run("Pairs Summary With Seat Ledger", func(t *testing.T) {
		svc, mock := newChartService(t)

		journeyDate := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
		expectTrainLookup(mock, "101", 1500, 800)
		expectInstanceLookup(mock, "inst-1", "101", journeyDate, models.TrainInstanceStatusScheduled)

		mock.ExpectQuery(`SELECT (.+) FROM coaches WHERE train_number`).
			WithArgs("101").
			WillReturnRows(sqlmock.NewRows([]string{"id", "train_number", "coach_number", "coach_type", "created_at"}).
				AddRow("coach-1", "101", "A1", "AC", time.Now()).
				AddRow("coach-2", "101", "S1", "Sleeper", time.Now()))
		mock.ExpectQuery(`SELECT (.+) FROM coach_seats`).
			WithArgs("coach-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "coach_id", "seat_number", "is_available"}).
				AddRow("seat-1", "coach-1", 1, false).
				AddRow("seat-2", "coach-1", 2, true))
		mock.ExpectQuery(`SELECT (.+) FROM coach_seats`).
			WithArgs("coach-2").
			WillReturnRows(sqlmock.NewRows([]string{"id", "coach_id", "seat_number", "is_available"}).
				AddRow("seat-3", "coach-2", 1, true))

		chart, err := svc.GetReservationChart("101", "2026-09-15")
		require.NoError(t, err)

		assert.Equal(t, "101", chart.TrainDetails.TrainNumber)
		assert.Equal(t, "2026-09-15", chart.JourneyDate)
		assert.Equal(t, models.TrainInstanceStatusScheduled, chart.Status)
		require.Len(t, chart.Coaches, 2)

		assert.Equal(t, "A1", chart.Coaches[0].CoachNumber)
		assert.Equal(t, 8, chart.Coaches[0].AvailableSeats)
		require.Len(t, chart.Coaches[0].SeatDetails, 2)
		assert.False(t, chart.Coaches[0].SeatDetails[0].IsAvailable)

		assert.Equal(t, "S1", chart.Coaches[1].CoachNumber)
		require.Len(t, chart.Coaches[1].SeatDetails, 1)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Bad Date", func(t *testing.T) {
		svc, _ := newChartService(t)

		_, err := svc.GetReservationChart("101", "next tuesday")
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})

	t.Run("No Journey", func(t *testing.T) {
		svc, mock := newChartService(t)

		journeyDate := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
		expectTrainLookup(mock, "101", 1500, 800)
		mock.ExpectQuery(`SELECT (.+) FROM train_instances`).
			WithArgs("101", journeyDate).
			WillReturnError(sql.ErrNoRows)

		_, err := svc.GetReservationChart("101", "2026-09-15")
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
