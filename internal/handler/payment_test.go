package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lottostack/lottery-booking/internal/config"
	"github.com/lottostack/lottery-booking/internal/model"
	"github.com/lottostack/lottery-booking/internal/queue"
	"github.com/lottostack/lottery-booking/internal/repository"
)

func settlementContext(t *testing.T, userID uint64) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/payment/process", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	return c, rec
}

func duplicateTicketErr() error {
	return errors.New("Error 1062 (23000): Duplicate entry '3-2025-09-05-15-19/2550' for key 'uq_ticket'")
}

func cartQuery() string {
	return regexp.QuoteMeta(`SELECT ci.id, ci.lottery_id, l.name, l.status, l.ticket_price, l.draw_date,`)
}

func cartColumns() []string {
	return []string{"id", "lottery_id", "name", "status", "ticket_price", "draw_date",
		"ticket_numbers", "draw_dates"}
}

func TestProcess_EmptyCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(cartQuery()).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(cartColumns()))
	mock.ExpectRollback()

	h := NewPaymentHandler(config.Config{SettlementTimeout: 5},
		repository.NewCartRepo(db), repository.NewOrderRepo(db), repository.NewUserRepo(db), nil)

	c, rec := settlementContext(t, 7)
	require.NoError(t, h.Process(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cart is empty")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcess_SettlesCartAndClearsIt(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	draw := time.Date(2025, 9, 5, 18, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(cartQuery()).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(cartColumns()).
			AddRow(1, 3, "Weekly Bonanza", model.LotteryActive, 50, draw,
				`["15-19/2549","15-19/2550"]`, `["2025-09-05"]`))

	// two numbers x one date = two order+ticket pairs
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO orders`)).
		WillReturnResult(sqlmock.NewResult(101, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO booked_tickets`)).
		WillReturnResult(sqlmock.NewResult(201, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO orders`)).
		WillReturnResult(sqlmock.NewResult(102, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO booked_tickets`)).
		WillReturnResult(sqlmock.NewResult(202, 1))

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cart_items WHERE user_id = ?`)).
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// post-commit notification lookup
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id,name,phone,email,password_hash,role,is_active,created_at,updated_at FROM users`)).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "email", "password_hash",
			"role", "is_active", "created_at", "updated_at"}).
			AddRow(7, "Asha Rao", "9876543210", "asha@example.com", "x", "CUSTOMER", true,
				time.Now(), time.Now()))

	var published []queue.OrderConfirmedEvent
	h := NewPaymentHandler(config.Config{SettlementTimeout: 5},
		repository.NewCartRepo(db), repository.NewOrderRepo(db), repository.NewUserRepo(db),
		func(ctx context.Context, ev queue.OrderConfirmedEvent) error {
			published = append(published, ev)
			return nil
		})

	c, rec := settlementContext(t, 7)
	require.NoError(t, h.Process(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success  bool     `json:"success"`
		OrderIDs []uint64 `json:"order_ids"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, []uint64{101, 102}, body.OrderIDs)

	require.Len(t, published, 1)
	ev := published[0]
	assert.Equal(t, "Asha Rao", ev.UserName)
	assert.Equal(t, "9876543210", ev.Phone)
	assert.Equal(t, "Weekly Bonanza", ev.LotteryName)
	assert.Equal(t, []string{"15-19/2549", "15-19/2550"}, ev.TicketNumbers)
	assert.Equal(t, "2025-09-05", ev.DrawDate)
	assert.Equal(t, uint64(100), ev.TotalAmount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcess_TicketConflictRollsBackBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	draw := time.Date(2025, 9, 5, 18, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(cartQuery()).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(cartColumns()).
			AddRow(1, 3, "Weekly Bonanza", model.LotteryActive, 50, draw,
				`["15-19/2549","15-19/2550"]`, `["2025-09-05"]`))

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO orders`)).
		WillReturnResult(sqlmock.NewResult(101, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO booked_tickets`)).
		WillReturnResult(sqlmock.NewResult(201, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO orders`)).
		WillReturnResult(sqlmock.NewResult(102, 1))
	// second number was settled by another buyer first
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO booked_tickets`)).
		WillReturnError(duplicateTicketErr())
	mock.ExpectRollback()

	published := 0
	h := NewPaymentHandler(config.Config{SettlementTimeout: 5},
		repository.NewCartRepo(db), repository.NewOrderRepo(db), repository.NewUserRepo(db),
		func(ctx context.Context, ev queue.OrderConfirmedEvent) error {
			published++
			return nil
		})

	c, rec := settlementContext(t, 7)
	require.NoError(t, h.Process(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "ticket already booked")
	assert.Contains(t, rec.Body.String(), "15-19/2550")
	assert.Zero(t, published)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcess_ClosedLotteryAborts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	draw := time.Date(2025, 9, 5, 18, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(cartQuery()).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(cartColumns()).
			AddRow(1, 3, "Weekly Bonanza", model.LotteryCompleted, 50, draw,
				`["15-19/2549"]`, `["2025-09-05"]`))
	mock.ExpectRollback()

	h := NewPaymentHandler(config.Config{SettlementTimeout: 5},
		repository.NewCartRepo(db), repository.NewOrderRepo(db), repository.NewUserRepo(db), nil)

	c, rec := settlementContext(t, 7)
	require.NoError(t, h.Process(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "no longer open for sale")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcess_MissingIdentity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/payment/process", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := NewPaymentHandler(config.Config{SettlementTimeout: 5},
		repository.NewCartRepo(db), repository.NewOrderRepo(db), repository.NewUserRepo(db), nil)
	require.NoError(t, h.Process(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
