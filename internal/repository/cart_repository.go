package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lottostack/lottery-booking/internal/model"
)

// CartRepo provides CRUD operations for cart items.  Ticket numbers and
// draw dates are stored as JSON arrays in the cart_items row; every
// number is bought for every date when the cart is settled.  Cart rows
// are owned exclusively by one user and the queries here always scope by
// user_id so one user can never read or delete another's selections.
type CartRepo struct {
	db *sql.DB
}

// NewCartRepo returns a new CartRepo bound to the given database.
func NewCartRepo(db *sql.DB) *CartRepo { return &CartRepo{db: db} }

// CartItemDetail is a cart row joined with the current lottery data the
// UI needs to render the cart.  The price here is for display only —
// settlement re-reads the lotteries row inside its own transaction and
// never trusts a previously shown price.
type CartItemDetail struct {
	ID            uint64    `json:"id"`
	LotteryID     uint64    `json:"lottery_id"`
	LotteryName   string    `json:"lottery_name"`
	LotteryStatus string    `json:"lottery_status"`
	TicketPrice   uint32    `json:"ticket_price"`
	DrawDate      time.Time `json:"draw_date"`
	TicketNumbers []string  `json:"ticket_numbers"`
	DrawDates     []string  `json:"draw_dates"`
}

// Add appends one cart item for the user and populates the generated ID.
// The slices must already be validated (non-empty, within the bunch limit).
func (r *CartRepo) Add(ctx context.Context, item *model.CartItem) error {
	numbersJSON, err := json.Marshal(item.TicketNumbers)
	if err != nil {
		return err
	}
	datesJSON, err := json.Marshal(item.DrawDates)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO cart_items (user_id, lottery_id, ticket_numbers, draw_dates) VALUES (?, ?, ?, ?)`,
		item.UserID, item.LotteryID, numbersJSON, datesJSON)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	item.ID = uint64(id)
	return nil
}

// ListByUser returns the user's cart joined with current lottery pricing
// for display, oldest first.
func (r *CartRepo) ListByUser(ctx context.Context, userID uint64) ([]CartItemDetail, error) {
	const q = `SELECT ci.id, ci.lottery_id, l.name, l.status, l.ticket_price, l.draw_date,
	                  ci.ticket_numbers, ci.draw_dates
	           FROM cart_items ci
	           JOIN lotteries l ON l.id = ci.lottery_id
	           WHERE ci.user_id = ?
	           ORDER BY ci.created_at ASC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]CartItemDetail, 0)
	for rows.Next() {
		var (
			d           CartItemDetail
			numbersJSON []byte
			datesJSON   []byte
		)
		if err := rows.Scan(&d.ID, &d.LotteryID, &d.LotteryName, &d.LotteryStatus,
			&d.TicketPrice, &d.DrawDate, &numbersJSON, &datesJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(numbersJSON, &d.TicketNumbers); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(datesJSON, &d.DrawDates); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// DeleteByIDAndUser removes one cart item if owned by the caller.  It
// returns sql.ErrNoRows when nothing matched, which handlers map to 404
// so a user probing other people's cart ids learns nothing.
func (r *CartRepo) DeleteByIDAndUser(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SettlementItem is one cart row joined with its lottery as read inside
// the settlement transaction.  Name and price come straight from the
// lotteries row at settlement time, never from a client-cached copy.
type SettlementItem struct {
	CartItemID    uint64
	LotteryID     uint64
	LotteryName   string
	LotteryStatus string
	TicketPrice   uint32
	DrawTime      time.Time
	TicketNumbers []string
	DrawDates     []string
}

// ListForSettlementTx loads the user's cart joined with the referenced
// lotteries inside the settlement transaction.  FOR UPDATE locks the
// lottery rows so pricing cannot change mid-settlement.
func (r *CartRepo) ListForSettlementTx(ctx context.Context, tx *sql.Tx, userID uint64) ([]SettlementItem, error) {
	const q = `SELECT ci.id, ci.lottery_id, l.name, l.status, l.ticket_price, l.draw_date,
	                  ci.ticket_numbers, ci.draw_dates
	           FROM cart_items ci
	           JOIN lotteries l ON l.id = ci.lottery_id
	           WHERE ci.user_id = ?
	           ORDER BY ci.id ASC
	           FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]SettlementItem, 0)
	for rows.Next() {
		var (
			it          SettlementItem
			numbersJSON []byte
			datesJSON   []byte
		)
		if err := rows.Scan(&it.CartItemID, &it.LotteryID, &it.LotteryName, &it.LotteryStatus,
			&it.TicketPrice, &it.DrawTime, &numbersJSON, &datesJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(numbersJSON, &it.TicketNumbers); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(datesJSON, &it.DrawDates); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// DeleteByUserTx removes every cart row for the user within the
// settlement transaction.  Called only after all orders and booked
// tickets were inserted without error.
func (r *CartRepo) DeleteByUserTx(ctx context.Context, tx *sql.Tx, userID uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = ?`, userID)
	return err
}
