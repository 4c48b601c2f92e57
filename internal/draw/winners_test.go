package draw

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWinningTicketsIntersection(t *testing.T) {
	booked := []string{"10-19/1001", "10-19/1002"}
	results := [][]string{{"10-19/1001", "10-19/2999"}}

	won := WinningTickets(booked, results)
	assert.Equal(t, []string{"10-19/1001"}, won)
}

func TestWinningTicketsNoOverlap(t *testing.T) {
	won := WinningTickets([]string{"15-19/2550"}, [][]string{{"15-19/2551", "15-19/2552"}})
	assert.Empty(t, won)
}

func TestWinningTicketsEmptyInputs(t *testing.T) {
	assert.Empty(t, WinningTickets(nil, [][]string{{"10-19/1001"}}))
	assert.Empty(t, WinningTickets([]string{"10-19/1001"}, nil))
}

func TestWinningTicketsDeduplicates(t *testing.T) {
	// the same number declared across two results counts once
	booked := []string{"20-19/2001"}
	results := [][]string{
		{"20-19/2001", "20-19/2002"},
		{"20-19/2001"},
	}
	assert.Equal(t, []string{"20-19/2001"}, WinningTickets(booked, results))
}

func TestWinningTicketsOrderIndependent(t *testing.T) {
	booked := []string{"10-19/1001", "10-19/1005", "10-19/1009"}
	results := [][]string{
		{"10-19/1009", "10-19/1234"},
		{"10-19/1001", "10-19/1005"},
	}
	want := WinningTickets(booked, results)

	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		b := append([]string(nil), booked...)
		rnd.Shuffle(len(b), func(i, j int) { b[i], b[j] = b[j], b[i] })
		r := append([][]string(nil), results...)
		rnd.Shuffle(len(r), func(i, j int) { r[i], r[j] = r[j], r[i] })
		assert.Equal(t, want, WinningTickets(b, r))
	}
}
