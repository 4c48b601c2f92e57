// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by
// someone else, while ErrTicketTaken signals that a ticket number
// was booked by another buyer for the same draw date.
package repository

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update cannot be performed because of
// conflicting state, such as deciding a withdrawal that is no longer
// pending or declaring a second result for the same lottery. Handlers
// should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrTicketTaken is returned when inserting a booked ticket violates the
// unique key on (lottery_id, draw_date, ticket_number), meaning another
// buyer settled the same number for the same draw first. Settlement
// rolls the whole transaction back and surfaces this as 409.
var ErrTicketTaken = errors.New("ticket already booked")

// isDuplicateKey reports whether err is the MySQL duplicate-entry error
// (1062). The driver's error string is stable enough to match on the
// error number.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
