package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lottostack/lottery-booking/internal/model"
)

// ErrResultExists indicates a result was already declared for the lottery.
var ErrResultExists = errors.New("result already declared")

// ResultRepo provides persistence for declared lottery results.  A result
// is written once per lottery inside the declaration transaction and is
// never edited or retracted afterwards.
type ResultRepo struct {
	db *sql.DB
}

// NewResultRepo returns a new ResultRepo bound to the given database.
func NewResultRepo(db *sql.DB) *ResultRepo { return &ResultRepo{db: db} }

// DB exposes the underlying sql.DB for declaration transactions that also
// touch the lotteries table.
func (r *ResultRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a result within the declaration transaction.  The
// unique key on lottery_id makes a second declaration fail with
// ErrResultExists.
func (r *ResultRepo) CreateTx(ctx context.Context, tx *sql.Tx, rec *model.LotteryResult) error {
	var second, third interface{}
	if rec.SecondPrizeNumber != nil && *rec.SecondPrizeNumber != "" {
		second = *rec.SecondPrizeNumber
	}
	if rec.ThirdPrizeNumber != nil && *rec.ThirdPrizeNumber != "" {
		third = *rec.ThirdPrizeNumber
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO lottery_results (lottery_id, first_prize_number, second_prize_number, third_prize_number)
		 VALUES (?, ?, ?, ?)`,
		rec.LotteryID, rec.FirstPrizeNumber, second, third)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrResultExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	return nil
}

// ResultDetail joins a declared result with its lottery's prize amounts
// for display.  The optional tiers are nil when the draw had no such
// tier.
type ResultDetail struct {
	ID                uint64    `json:"id"`
	LotteryID         uint64    `json:"lottery_id"`
	LotteryName       string    `json:"lottery_name"`
	DrawDate          time.Time `json:"draw_date"`
	FirstPrizeNumber  string    `json:"first_prize_number"`
	SecondPrizeNumber *string   `json:"second_prize_number,omitempty"`
	ThirdPrizeNumber  *string   `json:"third_prize_number,omitempty"`
	FirstPrize        uint64    `json:"first_prize"`
	SecondPrize       *uint64   `json:"second_prize,omitempty"`
	ThirdPrize        *uint64   `json:"third_prize,omitempty"`
	DeclaredAt        time.Time `json:"declared_at"`
}

// ListByDrawDate returns results whose lottery draw_date falls within
// [from, to] inclusive, newest declaration first.
func (r *ResultRepo) ListByDrawDate(ctx context.Context, from, to time.Time) ([]ResultDetail, error) {
	const q = `SELECT res.id, res.lottery_id, l.name, l.draw_date,
	                  res.first_prize_number, res.second_prize_number, res.third_prize_number,
	                  l.first_prize, l.second_prize, l.third_prize, res.declared_at
	           FROM lottery_results res
	           JOIN lotteries l ON l.id = res.lottery_id
	           WHERE l.draw_date >= ? AND l.draw_date <= ?
	           ORDER BY res.declared_at DESC`
	rows, err := r.db.QueryContext(ctx, q,
		from.UTC().Format("2006-01-02 15:04:05"), to.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ResultDetail, 0)
	for rows.Next() {
		var (
			d            ResultDetail
			secondNumber sql.NullString
			thirdNumber  sql.NullString
			secondPrize  sql.NullInt64
			thirdPrize   sql.NullInt64
		)
		if err := rows.Scan(&d.ID, &d.LotteryID, &d.LotteryName, &d.DrawDate,
			&d.FirstPrizeNumber, &secondNumber, &thirdNumber,
			&d.FirstPrize, &secondPrize, &thirdPrize, &d.DeclaredAt); err != nil {
			return nil, err
		}
		if secondNumber.Valid {
			v := secondNumber.String
			d.SecondPrizeNumber = &v
		}
		if thirdNumber.Valid {
			v := thirdNumber.String
			d.ThirdPrizeNumber = &v
		}
		if secondPrize.Valid {
			v := uint64(secondPrize.Int64)
			d.SecondPrize = &v
		}
		if thirdPrize.Valid {
			v := uint64(thirdPrize.Int64)
			d.ThirdPrize = &v
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
