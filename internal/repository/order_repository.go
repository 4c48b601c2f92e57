package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/lottostack/lottery-booking/internal/model"
)

// OrderRepo provides persistence for orders and booked tickets.  Both
// tables are append-only: an order is the priced, immutable record of one
// (ticket number, draw date) purchase and a booked ticket is the
// permanent proof that the number is held for that draw.  All writes are
// Tx variants because they only ever happen inside the settlement
// transaction.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// DB exposes the underlying sql.DB so the settlement handler can open a
// transaction spanning cart, order and ticket writes.
func (r *OrderRepo) DB() *sql.DB { return r.db }

// CreateOrderTx inserts one order within the settlement transaction and
// populates the generated ID on the record.  The transaction_id column
// carries a unique key, so an (astronomically unlikely) generator
// collision surfaces as ErrConflict instead of a silent duplicate.
func (r *OrderRepo) CreateOrderTx(ctx context.Context, tx *sql.Tx, o *model.Order) error {
	const q = `INSERT INTO orders (user_id, lottery_id, lottery_name, ticket_price,
	                               draw_time, transaction_id, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, o.UserID, o.LotteryID, o.LotteryName, o.TicketPrice,
		o.DrawTime.UTC().Format("2006-01-02 15:04:05"), o.TransactionID, o.Status)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	return nil
}

// CreateTicketTx inserts one booked ticket within the settlement
// transaction.  A duplicate on (lottery_id, draw_date, ticket_number)
// means another buyer settled the same number first; that is returned as
// ErrTicketTaken so the caller can roll back and report the conflict.
func (r *OrderRepo) CreateTicketTx(ctx context.Context, tx *sql.Tx, t *model.BookedTicket) error {
	const q = `INSERT INTO booked_tickets (user_id, order_id, lottery_id, ticket_number, draw_date)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, t.UserID, t.OrderID, t.LotteryID, t.TicketNumber, t.DrawDate)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrTicketTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// BookedNumbersForDraw returns the set of ticket numbers already booked
// for a lottery on a given draw date.  The ticket number generator uses
// this to exclude taken numbers from the candidate pool.
func (r *OrderRepo) BookedNumbersForDraw(ctx context.Context, lotteryID uint64, drawDate string) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ticket_number FROM booked_tickets WHERE lottery_id = ? AND draw_date = ?`,
		lotteryID, drawDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	booked := make(map[string]struct{})
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		booked[n] = struct{}{}
	}
	return booked, rows.Err()
}

// TicketDetail is a booked ticket joined with its order for the
// "my tickets" listing.
type TicketDetail struct {
	ID            uint64    `json:"id"`
	TicketNumber  string    `json:"ticket_number"`
	DrawDate      string    `json:"draw_date"`
	LotteryID     uint64    `json:"lottery_id"`
	LotteryName   string    `json:"lottery_name"`
	TicketPrice   uint32    `json:"ticket_price"`
	TransactionID string    `json:"transaction_id"`
	PurchasedAt   time.Time `json:"purchased_at"`
}

// ListTicketsByUser returns all of the user's booked tickets with their
// order details, newest first.
func (r *OrderRepo) ListTicketsByUser(ctx context.Context, userID uint64) ([]TicketDetail, error) {
	const q = `SELECT bt.id, bt.ticket_number, DATE_FORMAT(bt.draw_date, '%Y-%m-%d'),
	                  o.lottery_id, o.lottery_name, o.ticket_price, o.transaction_id, bt.created_at
	           FROM booked_tickets bt
	           JOIN orders o ON o.id = bt.order_id
	           WHERE bt.user_id = ?
	           ORDER BY bt.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]TicketDetail, 0)
	for rows.Next() {
		var d TicketDetail
		if err := rows.Scan(&d.ID, &d.TicketNumber, &d.DrawDate, &d.LotteryID,
			&d.LotteryName, &d.TicketPrice, &d.TransactionID, &d.PurchasedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// TicketNumbersByUser returns just the ticket number strings the user
// holds, for intersecting with declared winning numbers.
func (r *OrderRepo) TicketNumbersByUser(ctx context.Context, userID uint64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ticket_number FROM booked_tickets WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var numbers []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}

// HasWinningTicket reports whether the user holds the given ticket number
// for the given draw date and the number was declared a winner for its
// lottery.  Withdrawal intake uses it so a claim can only be filed
// against a winning ticket the caller actually owns; holding a losing
// ticket, or a ticket for a draw with no declared result, is not enough.
func (r *OrderRepo) HasWinningTicket(ctx context.Context, userID uint64, ticketNumber, drawDate string) (bool, error) {
	const q = `SELECT 1 FROM booked_tickets bt
	           JOIN lottery_results res ON res.lottery_id = bt.lottery_id
	           WHERE bt.user_id = ? AND bt.ticket_number = ? AND bt.draw_date = ?
	             AND bt.ticket_number IN (res.first_prize_number,
	                 COALESCE(res.second_prize_number, ''),
	                 COALESCE(res.third_prize_number, ''))
	           LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, userID, ticketNumber, drawDate).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
