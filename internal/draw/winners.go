package draw

import "sort"

// WinningTickets intersects the declared winning numbers of a batch of
// results with the user's booked ticket numbers. The return value is a
// sorted set: each winning number the user holds appears once, no matter
// how many results or tiers declare it. Pure function.
func WinningTickets(booked []string, winningNumbers [][]string) []string {
	held := make(map[string]struct{}, len(booked))
	for _, n := range booked {
		held[n] = struct{}{}
	}
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, result := range winningNumbers {
		for _, n := range result {
			if _, ok := held[n]; !ok {
				continue
			}
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
