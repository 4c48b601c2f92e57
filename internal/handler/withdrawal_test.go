package handler

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lottostack/lottery-booking/internal/repository"
)

const claimBody = `{
	"ticket_number": "15-19/2549",
	"draw_date": "2025-09-05",
	"amount": 100000,
	"name": "Asha Rao",
	"email": "asha@example.com",
	"bank_name": "State Bank",
	"branch": "MG Road",
	"account_number": "12345678901234567",
	"ifsc_code": "SBIN0001234",
	"pan_number": "ABCDE1234F",
	"aadhar_number": "123456789012"
}`

func claimContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/withdrawals", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(7))
	return c, rec
}

func TestWithdrawalCreate_Accepted(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM booked_tickets`)).
		WithArgs(uint64(7), "15-19/2549", "2025-09-05").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM withdrawals`)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO withdrawals`)).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectCommit()

	h := NewWithdrawalHandler(repository.NewWithdrawalRepo(db), repository.NewOrderRepo(db))
	c, rec := claimContext(t, claimBody)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalCreate_InvalidAccountNumber(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	body := strings.Replace(claimBody, "12345678901234567", "12345678", 1)
	h := NewWithdrawalHandler(repository.NewWithdrawalRepo(db), repository.NewOrderRepo(db))
	c, rec := claimContext(t, body)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "account_number")
}

func TestWithdrawalCreate_NoWinningTicket(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// intake must join declared results; a merely held ticket (or one
	// for a draw with no result yet) cannot back a claim
	mock.ExpectQuery(regexp.QuoteMeta(`JOIN lottery_results res ON res.lottery_id = bt.lottery_id`)).
		WithArgs(uint64(7), "15-19/2549", "2025-09-05").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	h := NewWithdrawalHandler(repository.NewWithdrawalRepo(db), repository.NewOrderRepo(db))
	c, rec := claimContext(t, claimBody)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "no winning ticket")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalCreate_DuplicateClaim(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM booked_tickets`)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM withdrawals`)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectRollback()

	h := NewWithdrawalHandler(repository.NewWithdrawalRepo(db), repository.NewOrderRepo(db))
	c, rec := claimContext(t, claimBody)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}
