package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lottostack/lottery-booking/internal/model"
)

// ErrDuplicateClaim indicates the user already has a pending or approved
// withdrawal for the same winning ticket.  One booked ticket backs at
// most one non-rejected claim.
var ErrDuplicateClaim = errors.New("withdrawal already requested for this ticket")

// ErrWithdrawalNotFound indicates the claim does not exist.
var ErrWithdrawalNotFound = errors.New("withdrawal not found")

// WithdrawalRepo provides persistence for payout claims.
type WithdrawalRepo struct {
	db *sql.DB
}

// NewWithdrawalRepo returns a new WithdrawalRepo bound to the database.
func NewWithdrawalRepo(db *sql.DB) *WithdrawalRepo { return &WithdrawalRepo{db: db} }

// Create inserts a pending claim.  The existence check and the insert run
// in one transaction so two rapid submissions for the same ticket cannot
// both slip through.
func (r *WithdrawalRepo) Create(ctx context.Context, w *model.Withdrawal) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	var one int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM withdrawals
		 WHERE user_id = ? AND ticket_number = ? AND draw_date = ? AND status <> 'rejected'
		 LIMIT 1 FOR UPDATE`,
		w.UserID, w.TicketNumber, w.DrawDate).Scan(&one)
	if err == nil {
		return ErrDuplicateClaim
	}
	if err != sql.ErrNoRows {
		return err
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO withdrawals (user_id, ticket_number, draw_date, amount, name, email,
		                          bank_name, branch, account_number, ifsc_code, pan_number,
		                          aadhar_number, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'pending')`,
		w.UserID, w.TicketNumber, w.DrawDate, w.Amount, w.Name, w.Email,
		w.BankName, w.Branch, w.AccountNumber, w.IFSCCode, w.PANNumber, w.AadharNumber)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	w.ID = uint64(id)
	w.Status = model.WithdrawalPending
	return nil
}

const withdrawalColumns = `id, user_id, ticket_number, DATE_FORMAT(draw_date, '%Y-%m-%d'),
	amount, name, email, bank_name, branch, account_number, ifsc_code,
	pan_number, aadhar_number, status, processed_by, processed_at, created_at`

func scanWithdrawal(row interface{ Scan(...interface{}) error }) (model.Withdrawal, error) {
	var (
		w           model.Withdrawal
		processedBy sql.NullInt64
		processedAt sql.NullTime
	)
	err := row.Scan(&w.ID, &w.UserID, &w.TicketNumber, &w.DrawDate, &w.Amount,
		&w.Name, &w.Email, &w.BankName, &w.Branch, &w.AccountNumber,
		&w.IFSCCode, &w.PANNumber, &w.AadharNumber, &w.Status,
		&processedBy, &processedAt, &w.CreatedAt)
	if err != nil {
		return model.Withdrawal{}, err
	}
	if processedBy.Valid {
		v := uint64(processedBy.Int64)
		w.ProcessedBy = &v
	}
	if processedAt.Valid {
		v := processedAt.Time
		w.ProcessedAt = &v
	}
	return w, nil
}

// ListByUser returns the user's claims, newest first.
func (r *WithdrawalRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Withdrawal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+withdrawalColumns+` FROM withdrawals WHERE user_id = ? ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Withdrawal, 0)
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// ListAll returns every claim for the admin view, optionally filtered by
// status, newest first.
func (r *WithdrawalRepo) ListAll(ctx context.Context, status string) ([]model.Withdrawal, error) {
	q := `SELECT ` + withdrawalColumns + ` FROM withdrawals`
	args := []interface{}{}
	if status != "" {
		q += ` WHERE status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Withdrawal, 0)
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// GetByID returns one claim or ErrWithdrawalNotFound.
func (r *WithdrawalRepo) GetByID(ctx context.Context, id uint64) (model.Withdrawal, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = ?`, id)
	w, err := scanWithdrawal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Withdrawal{}, ErrWithdrawalNotFound
	}
	return w, err
}

// Decide moves a pending claim to approved or rejected and stamps the
// processing admin and time.  The WHERE status='pending' guard makes the
// decision first-writer-wins; a second decision gets ErrConflict.
func (r *WithdrawalRepo) Decide(ctx context.Context, id uint64, status string, adminID uint64, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE withdrawals SET status = ?, processed_by = ?, processed_at = ?
		 WHERE id = ? AND status = 'pending'`,
		status, adminID, at.UTC().Format("2006-01-02 15:04:05"), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// either missing or already decided
		var exists int
		if err := r.db.QueryRowContext(ctx,
			`SELECT 1 FROM withdrawals WHERE id = ? LIMIT 1`, id).Scan(&exists); err == sql.ErrNoRows {
			return ErrWithdrawalNotFound
		} else if err != nil {
			return err
		}
		return ErrConflict
	}
	return nil
}
