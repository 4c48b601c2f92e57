package handler

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lottostack/lottery-booking/internal/config"
	"github.com/lottostack/lottery-booking/internal/model"
	"github.com/lottostack/lottery-booking/internal/repository"
)

func cartAddContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/cart", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(7))
	return c, rec
}

func lotteryRow(status string) *sqlmock.Rows {
	draw := time.Date(2025, 9, 5, 18, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{"id", "name", "lottery_type", "draw_date", "ticket_price",
		"first_prize", "second_prize", "third_prize", "total_tickets", "status",
		"created_at", "updated_at"}).
		AddRow(3, "Weekly Bonanza", model.TypeWeekly, draw, 50,
			100000, nil, nil, 5000, status, time.Now(), time.Now())
}

func TestCartAdd_Accepted(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM lotteries WHERE id = ?`)).
		WithArgs(uint64(3)).
		WillReturnRows(lotteryRow(model.LotteryActive))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO cart_items`)).
		WithArgs(uint64(7), uint64(3), []byte(`["15-19/2549","15-19/2550"]`), []byte(`["2025-09-05"]`)).
		WillReturnResult(sqlmock.NewResult(9, 1))

	h := NewCartHandler(config.Config{BunchLimit: 100},
		repository.NewCartRepo(db), repository.NewLotteryRepo(db))
	c, rec := cartAddContext(t,
		`{"lottery_id":3,"ticket_numbers":["15-19/2549","15-19/2550"],"draw_dates":["2025-09-05"]}`)
	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":9`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartAdd_BlankNumbersRejected(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// blanks dedupe to an empty set; nothing may be persisted
	h := NewCartHandler(config.Config{BunchLimit: 100},
		repository.NewCartRepo(db), repository.NewLotteryRepo(db))
	c, rec := cartAddContext(t,
		`{"lottery_id":3,"ticket_numbers":["",""],"draw_dates":["2025-09-05"]}`)
	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ticket_numbers is required")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartAdd_BlankDatesRejected(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := NewCartHandler(config.Config{BunchLimit: 100},
		repository.NewCartRepo(db), repository.NewLotteryRepo(db))
	c, rec := cartAddContext(t,
		`{"lottery_id":3,"ticket_numbers":["15-19/2549"],"draw_dates":["",""]}`)
	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "draw_dates is required")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartAdd_MalformedNumberRejected(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := NewCartHandler(config.Config{BunchLimit: 100},
		repository.NewCartRepo(db), repository.NewLotteryRepo(db))
	c, rec := cartAddContext(t,
		`{"lottery_id":3,"ticket_numbers":["DROP TABLE"],"draw_dates":["2025-09-05"]}`)
	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ticket numbers must look like")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartAdd_ClosedLotteryRejected(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM lotteries WHERE id = ?`)).
		WithArgs(uint64(3)).
		WillReturnRows(lotteryRow(model.LotteryCompleted))

	h := NewCartHandler(config.Config{BunchLimit: 100},
		repository.NewCartRepo(db), repository.NewLotteryRepo(db))
	c, rec := cartAddContext(t,
		`{"lottery_id":3,"ticket_numbers":["15-19/2549"],"draw_dates":["2025-09-05"]}`)
	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
