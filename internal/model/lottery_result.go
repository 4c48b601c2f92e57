package model

import "time"

// LotteryResult records the declared outcome of one draw.  Declaration is
// terminal: it forces the lottery to completed and a result is never
// edited or retracted afterwards.  The winning numbers are ranked by
// position — first, then optional second and third.
//
// Fields:
//  ID                – primary key identifier.
//  LotteryID         – the lottery this result belongs to (one result per lottery).
//  FirstPrizeNumber  – winning number of the first tier.
//  SecondPrizeNumber – optional winning number of the second tier.
//  ThirdPrizeNumber  – optional winning number of the third tier.
//  DeclaredAt        – when the administrator declared the result.
//  CreatedAt         – creation timestamp.
type LotteryResult struct {
	ID                uint64    // lottery_results.id
	LotteryID         uint64    // lottery_results.lottery_id
	FirstPrizeNumber  string    // lottery_results.first_prize_number
	SecondPrizeNumber *string   // lottery_results.second_prize_number (nullable)
	ThirdPrizeNumber  *string   // lottery_results.third_prize_number (nullable)
	DeclaredAt        time.Time // lottery_results.declared_at
	CreatedAt         time.Time // lottery_results.created_at
}

// WinningNumbers returns the declared winners in tier order, skipping
// absent tiers.  Position in the slice is the prize rank.
func (r LotteryResult) WinningNumbers() []string {
	nums := []string{r.FirstPrizeNumber}
	if r.SecondPrizeNumber != nil && *r.SecondPrizeNumber != "" {
		nums = append(nums, *r.SecondPrizeNumber)
	}
	if r.ThirdPrizeNumber != nil && *r.ThirdPrizeNumber != "" {
		nums = append(nums, *r.ThirdPrizeNumber)
	}
	return nums
}
