package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lottostack/lottery-booking/internal/model"
	"github.com/lottostack/lottery-booking/internal/repository"
)

// AdminWithdrawalHandler lets administrators review and decide payout
// claims.
type AdminWithdrawalHandler struct {
	Withdrawals *repository.WithdrawalRepo
}

func NewAdminWithdrawalHandler(w *repository.WithdrawalRepo) *AdminWithdrawalHandler {
	if w == nil {
		panic("nil repository passed to NewAdminWithdrawalHandler")
	}
	return &AdminWithdrawalHandler{Withdrawals: w}
}

// List handles GET /v1/admin/withdrawals?status=.
func (h *AdminWithdrawalHandler) List(c echo.Context) error {
	status := c.QueryParam("status")
	switch status {
	case "", model.WithdrawalPending, model.WithdrawalApproved, model.WithdrawalRejected:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
	}
	items, err := h.Withdrawals.ListAll(c.Request().Context(), status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load withdrawals"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/admin/withdrawals/:id.
func (h *AdminWithdrawalHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid withdrawal id"})
	}
	w, err := h.Withdrawals.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrWithdrawalNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "withdrawal not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load withdrawal"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": w})
}

type decideReq struct {
	Status string `json:"status"` // approved | rejected
}

// Decide handles PATCH /v1/admin/withdrawals/:id. Only pending claims
// can be decided; a claim someone else already decided comes back 409.
// The deciding admin and time are stamped on the row.
func (h *AdminWithdrawalHandler) Decide(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid withdrawal id"})
	}
	var req decideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Status != model.WithdrawalApproved && req.Status != model.WithdrawalRejected {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be approved or rejected"})
	}

	err = h.Withdrawals.Decide(c.Request().Context(), id, req.Status, adminID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrWithdrawalNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "withdrawal not found"})
		}
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "withdrawal already decided"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to decide withdrawal"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": req.Status})
}
