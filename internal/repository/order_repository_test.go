package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lottostack/lottery-booking/internal/model"
)

// duplicateKeyErr mimics the mysql driver's duplicate-entry error text.
var duplicateKeyErr = errors.New("Error 1062 (23000): Duplicate entry '1-2025-09-05-15-19/2549' for key 'uq_ticket'")

func TestCreateOrderTx_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO orders`)).
		WithArgs(uint64(7), uint64(3), "Weekly Bonanza", uint32(50),
			sqlmock.AnyArg(), "TXN1756380000000-AB12CD34", "confirmed").
		WillReturnResult(sqlmock.NewResult(42, 1))

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewOrderRepo(db)
	order := model.Order{
		UserID:        7,
		LotteryID:     3,
		LotteryName:   "Weekly Bonanza",
		TicketPrice:   50,
		DrawTime:      time.Date(2025, 9, 5, 18, 0, 0, 0, time.UTC),
		TransactionID: "TXN1756380000000-AB12CD34",
		Status:        "confirmed",
	}
	require.NoError(t, repo.CreateOrderTx(context.Background(), tx, &order))
	assert.Equal(t, uint64(42), order.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderTx_DuplicateTransactionID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO orders`)).
		WillReturnError(duplicateKeyErr)

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewOrderRepo(db)
	err = repo.CreateOrderTx(context.Background(), tx, &model.Order{
		UserID: 7, LotteryID: 3, TransactionID: "TXN1-DEADBEEF", Status: "confirmed",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateTicketTx_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO booked_tickets`)).
		WithArgs(uint64(7), uint64(42), uint64(3), "15-19/2549", "2025-09-05").
		WillReturnResult(sqlmock.NewResult(9, 1))

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewOrderRepo(db)
	ticket := model.BookedTicket{
		UserID: 7, OrderID: 42, LotteryID: 3,
		TicketNumber: "15-19/2549", DrawDate: "2025-09-05",
	}
	require.NoError(t, repo.CreateTicketTx(context.Background(), tx, &ticket))
	assert.Equal(t, uint64(9), ticket.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTicketTx_DuplicateIsTicketTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO booked_tickets`)).
		WillReturnError(duplicateKeyErr)

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewOrderRepo(db)
	err = repo.CreateTicketTx(context.Background(), tx, &model.BookedTicket{
		UserID: 7, OrderID: 42, LotteryID: 3,
		TicketNumber: "15-19/2549", DrawDate: "2025-09-05",
	})
	assert.ErrorIs(t, err, ErrTicketTaken)
}

func TestBookedNumbersForDraw(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"ticket_number"}).
		AddRow("15-19/2549").
		AddRow("15-19/2551")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ticket_number FROM booked_tickets WHERE lottery_id = ? AND draw_date = ?`)).
		WithArgs(uint64(3), "2025-09-05").
		WillReturnRows(rows)

	repo := NewOrderRepo(db)
	booked, err := repo.BookedNumbersForDraw(context.Background(), 3, "2025-09-05")
	require.NoError(t, err)
	assert.Len(t, booked, 2)
	_, ok := booked["15-19/2549"]
	assert.True(t, ok)
	_, ok = booked["15-19/2550"]
	assert.False(t, ok)
}

func TestHasWinningTicket(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// the check must consult declared results, not just ownership
	winning := regexp.QuoteMeta(`JOIN lottery_results res ON res.lottery_id = bt.lottery_id`)
	mock.ExpectQuery(winning).
		WithArgs(uint64(7), "15-19/2549", "2025-09-05").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(winning).
		WithArgs(uint64(7), "15-19/9999", "2025-09-05").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	repo := NewOrderRepo(db)
	ok, err := repo.HasWinningTicket(context.Background(), 7, "15-19/2549", "2025-09-05")
	require.NoError(t, err)
	assert.True(t, ok)

	// held ticket whose number no result declared a winner
	ok, err = repo.HasWinningTicket(context.Background(), 7, "15-19/9999", "2025-09-05")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
