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
	"golang.org/x/crypto/bcrypt"

	"github.com/lottostack/lottery-booking/internal/config"
	"github.com/lottostack/lottery-booking/internal/repository"
)

func authConfig() config.Config {
	return config.Config{
		JWTSecret:      "test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     bcrypt.MinCost,
	}
}

func TestRegister_IgnoresClientSuppliedRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// role in the body carries no weight; the insert is always CUSTOMER
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("Asha Rao", "9876543210", "asha@example.com", sqlmock.AnyArg(), "CUSTOMER").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO refresh_tokens`)).
		WithArgs(uint64(7), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	e := echo.New()
	body := `{"name":"Asha Rao","email":"asha@example.com","phone":"9876543210",
		"password":"s3cret-pass","role":"ADMIN"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewAuthHandler(authConfig(), repository.NewUserRepo(db), repository.NewTokenRepo(db))
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"CUSTOMER"`)
	assert.NotContains(t, rec.Body.String(), "ADMIN")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_ValidationErrors(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	e := echo.New()
	body := `{"name":"Asha Rao","email":"not-an-email","phone":"12345","password":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewAuthHandler(authConfig(), repository.NewUserRepo(db), repository.NewTokenRepo(db))
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email")
	assert.Contains(t, rec.Body.String(), "phone")
	assert.Contains(t, rec.Body.String(), "password")
}
