package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lottostack/lottery-booking/internal/model"
	"github.com/lottostack/lottery-booking/internal/repository"
	"github.com/lottostack/lottery-booking/internal/validation"
)

// WithdrawalHandler serves payout claim intake and the caller's claim
// history.
type WithdrawalHandler struct {
	Withdrawals *repository.WithdrawalRepo
	Orders      *repository.OrderRepo
}

func NewWithdrawalHandler(w *repository.WithdrawalRepo, orders *repository.OrderRepo) *WithdrawalHandler {
	if w == nil || orders == nil {
		panic("nil repository passed to NewWithdrawalHandler")
	}
	return &WithdrawalHandler{Withdrawals: w, Orders: orders}
}

type withdrawalReq struct {
	validation.WithdrawalInput
	Amount uint64 `json:"amount"`
}

// Create handles POST /v1/withdrawals. The claim must reference a
// declared winning ticket the caller actually holds; bank and identity
// fields are validated with field-level errors. One non-rejected claim
// per (ticket, draw date).
func (h *WithdrawalHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req withdrawalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := validation.ValidateWithdrawal(req.WithdrawalInput); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": errs})
	}
	if req.Amount == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed",
			"fields": map[string]string{"amount": "amount is required"}})
	}

	ctx := c.Request().Context()
	holds, err := h.Orders.HasWinningTicket(ctx, userID, req.TicketNumber, req.DrawDate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify ticket"})
	}
	if !holds {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no winning ticket matches this claim"})
	}

	w := model.Withdrawal{
		UserID:        userID,
		TicketNumber:  req.TicketNumber,
		DrawDate:      req.DrawDate,
		Amount:        req.Amount,
		Name:          req.Name,
		Email:         req.Email,
		BankName:      req.BankName,
		Branch:        req.Branch,
		AccountNumber: req.AccountNumber,
		IFSCCode:      req.IFSCCode,
		PANNumber:     req.PANNumber,
		AadharNumber:  req.AadharNumber,
	}
	if err := h.Withdrawals.Create(ctx, &w); err != nil {
		if errors.Is(err, repository.ErrDuplicateClaim) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "withdrawal already requested for this ticket"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create withdrawal"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": w.ID, "status": w.Status})
}

// ListMine handles GET /v1/my-withdrawals.
func (h *WithdrawalHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Withdrawals.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load withdrawals"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
