// Package draw generates candidate ticket numbers for a draw and matches
// booked tickets against declared results.
package draw

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/lottostack/lottery-booking/internal/model"
)

// ErrPoolExhausted indicates the scan bound was reached before enough free
// numbers were found for the draw.
var ErrPoolExhausted = errors.New("ticket number pool exhausted for this draw")

// Series describes one draw series: the prefix printed on every ticket and
// the base the sequential counter starts from.
type Series struct {
	Prefix string
	Base   int
}

// SeriesFor maps a lottery category to its draw series.
func SeriesFor(lotteryType string) Series {
	switch lotteryType {
	case model.TypeWeekly:
		return Series{Prefix: "50-19", Base: 5000}
	case model.TypeMonthly:
		return Series{Prefix: "20-19", Base: 2000}
	case model.TypeSpecial:
		return Series{Prefix: "10-19", Base: 1000}
	default:
		return Series{Prefix: "15-19", Base: 2548}
	}
}

// GeneratePool returns up to count distinct ticket numbers of the form
// <prefix>/<seq>, counting upward from a randomized base and skipping any
// number already in taken. The scan stops after maxScan candidates; if the
// pool is too dense to fill count within the bound, ErrPoolExhausted is
// returned. Pure apart from rnd; no number is reserved by generating it.
func GeneratePool(series Series, count, maxScan int, taken map[string]struct{}, rnd *rand.Rand) ([]string, error) {
	if count <= 0 {
		return []string{}, nil
	}
	if maxScan < count {
		maxScan = count
	}
	// randomize the starting point so concurrent buyers are not all offered
	// the same window of the sequence
	start := series.Base + rnd.Intn(maxScan)
	out := make([]string, 0, count)
	for i := 0; i < maxScan; i++ {
		num := fmt.Sprintf("%s/%d", series.Prefix, start+i)
		if _, booked := taken[num]; booked {
			continue
		}
		out = append(out, num)
		if len(out) == count {
			return out, nil
		}
	}
	return nil, ErrPoolExhausted
}
