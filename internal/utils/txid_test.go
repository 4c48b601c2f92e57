package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var txidRe = regexp.MustCompile(`^TXN[0-9]{13,}-[0-9A-F]{8}$`)

func TestNewTransactionIDFormat(t *testing.T) {
	id := NewTransactionID()
	assert.Regexp(t, txidRe, id)
}

func TestNewTransactionIDUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewTransactionID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate transaction id %q", id)
		seen[id] = struct{}{}
	}
}
