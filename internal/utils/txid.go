package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewTransactionID returns an identifier of the form
// TXN<unix-millis>-<8 hex chars>. The millisecond timestamp orders IDs
// roughly by creation time and the random suffix keeps two orders settled
// in the same millisecond distinct. The orders table additionally carries
// a unique index on the column, so an improbable collision surfaces as an
// insert error instead of a silent overwrite.
func NewTransactionID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("TXN%d-%s", time.Now().UnixMilli(), suffix)
}
