// Package repository contains data access logic for the lottery domain.
// This file defines repository methods for the lotteries table. A Lottery
// represents one scheduled draw that tickets are sold against. Rows are
// never deleted; administrators only transition the status column.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lottostack/lottery-booking/internal/model"
)

// ErrLotteryNotFound indicates that a lottery was not located in the DB.
var ErrLotteryNotFound = errors.New("lottery not found")

// LotteryRepo manages persistence for lotteries.
type LotteryRepo struct {
	db *sql.DB
}

// NewLotteryRepo constructs a LotteryRepo given a DB handle.
func NewLotteryRepo(db *sql.DB) *LotteryRepo { return &LotteryRepo{db: db} }

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.  Use this method to
// obtain a *sql.DB when you need fine-grained transaction control.
func (r *LotteryRepo) DB() *sql.DB { return r.db }

const lotteryColumns = `id, name, lottery_type, draw_date, ticket_price,
	first_prize, second_prize, third_prize, total_tickets, status,
	created_at, updated_at`

func scanLottery(row interface{ Scan(...interface{}) error }) (model.Lottery, error) {
	var (
		l            model.Lottery
		secondPrize  sql.NullInt64
		thirdPrize   sql.NullInt64
	)
	err := row.Scan(&l.ID, &l.Name, &l.LotteryType, &l.DrawDate, &l.TicketPrice,
		&l.FirstPrize, &secondPrize, &thirdPrize, &l.TotalTickets, &l.Status,
		&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return model.Lottery{}, err
	}
	if secondPrize.Valid {
		v := uint64(secondPrize.Int64)
		l.SecondPrize = &v
	}
	if thirdPrize.Valid {
		v := uint64(thirdPrize.Int64)
		l.ThirdPrize = &v
	}
	return l, nil
}

// Create inserts a new lottery and populates its generated ID.
func (r *LotteryRepo) Create(ctx context.Context, l *model.Lottery) error {
	var second, third interface{}
	if l.SecondPrize != nil {
		second = *l.SecondPrize
	}
	if l.ThirdPrize != nil {
		third = *l.ThirdPrize
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO lotteries (name, lottery_type, draw_date, ticket_price,
			first_prize, second_prize, third_prize, total_tickets, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.Name, l.LotteryType, l.DrawDate.UTC().Format("2006-01-02 15:04:05"),
		l.TicketPrice, l.FirstPrize, second, third, l.TotalTickets, l.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	return nil
}

// GetByID returns one lottery or ErrLotteryNotFound.
func (r *LotteryRepo) GetByID(ctx context.Context, id uint64) (model.Lottery, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+lotteryColumns+` FROM lotteries WHERE id = ?`, id)
	l, err := scanLottery(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Lottery{}, ErrLotteryNotFound
	}
	return l, err
}

// List returns lotteries ordered by draw date ascending, optionally
// filtered by status.  An empty status returns everything.
func (r *LotteryRepo) List(ctx context.Context, status string) ([]model.Lottery, error) {
	q := `SELECT ` + lotteryColumns + ` FROM lotteries`
	args := []interface{}{}
	if status != "" {
		q += ` WHERE status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY draw_date ASC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Lottery, 0)
	for rows.Next() {
		l, err := scanLottery(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// UpdateStatus transitions a lottery's status.  The caller is expected to
// have validated the transition against the current status; the WHERE
// clause re-checks it so a concurrent admin action cannot slip an invalid
// transition through.  Returns ErrConflict when the row was not in the
// expected prior status.
func (r *LotteryRepo) UpdateStatus(ctx context.Context, id uint64, from, to string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE lotteries SET status = ? WHERE id = ? AND status = ?`, to, id, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// MarkCompletedTx forces a lottery to completed within the provided
// transaction.  Used by result declaration, which is terminal for the
// draw regardless of its prior (non-terminal) status.
func (r *LotteryRepo) MarkCompletedTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE lotteries SET status = 'completed'
		 WHERE id = ? AND status IN ('upcoming','active')`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}
