package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lottostack/lottery-booking/internal/model"
)

func testClaim() model.Withdrawal {
	return model.Withdrawal{
		UserID:        7,
		TicketNumber:  "15-19/2549",
		DrawDate:      "2025-09-05",
		Amount:        100000,
		Name:          "Asha Rao",
		Email:         "asha@example.com",
		BankName:      "State Bank",
		Branch:        "MG Road",
		AccountNumber: "12345678901234567",
		IFSCCode:      "SBIN0001234",
		PANNumber:     "ABCDE1234F",
		AadharNumber:  "123456789012",
	}
}

func TestWithdrawalCreate_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM withdrawals`)).
		WithArgs(uint64(7), "15-19/2549", "2025-09-05").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO withdrawals`)).
		WithArgs(uint64(7), "15-19/2549", "2025-09-05", uint64(100000),
			"Asha Rao", "asha@example.com", "State Bank", "MG Road",
			"12345678901234567", "SBIN0001234", "ABCDE1234F", "123456789012").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectCommit()

	repo := NewWithdrawalRepo(db)
	w := testClaim()
	require.NoError(t, repo.Create(context.Background(), &w))
	assert.Equal(t, uint64(5), w.ID)
	assert.Equal(t, model.WithdrawalPending, w.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalCreate_DuplicateClaim(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM withdrawals`)).
		WithArgs(uint64(7), "15-19/2549", "2025-09-05").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectRollback()

	repo := NewWithdrawalRepo(db)
	w := testClaim()
	err = repo.Create(context.Background(), &w)
	assert.ErrorIs(t, err, ErrDuplicateClaim)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalDecide_Pending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE withdrawals SET status = ?, processed_by = ?, processed_at = ?`)).
		WithArgs(model.WithdrawalApproved, uint64(1), sqlmock.AnyArg(), uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewWithdrawalRepo(db)
	err = repo.Decide(context.Background(), 5, model.WithdrawalApproved, 1, time.Now())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalDecide_AlreadyDecided(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE withdrawals`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM withdrawals WHERE id = ? LIMIT 1`)).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	repo := NewWithdrawalRepo(db)
	err = repo.Decide(context.Background(), 5, model.WithdrawalRejected, 1, time.Now())
	assert.ErrorIs(t, err, ErrConflict)
}

func TestWithdrawalDecide_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE withdrawals`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM withdrawals WHERE id = ? LIMIT 1`)).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	repo := NewWithdrawalRepo(db)
	err = repo.Decide(context.Background(), 99, model.WithdrawalApproved, 1, time.Now())
	assert.ErrorIs(t, err, ErrWithdrawalNotFound)
}
