package domain

import "time"

// DateLayout is the UTC calendar day format used for quota bookkeeping.
const DateLayout = "2006-01-02"

// DefaultDailyLimit is how many credentials one user may claim per UTC day.
const DefaultDailyLimit = 10

// QuotaProfile tracks how many claims a user made on LastClaimDate.
type QuotaProfile struct {
	UserID        string
	ClaimedToday  int
	LastClaimDate string // "" when the user never claimed
}

// Day formats t as a UTC calendar day.
func Day(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// EffectiveCount is the number of claims that count against today. A count
// recorded on any other day is stale and reads as zero.
func (p QuotaProfile) EffectiveCount(today string) int {
	if p.LastClaimDate != today {
		return 0
	}
	return p.ClaimedToday
}

// QuotaStatus is the read-only view of a user's quota for today.
type QuotaStatus struct {
	Used      int
	Remaining int
	Limit     int
	Date      string
}

// NewQuotaStatus derives today's status from a profile.
func NewQuotaStatus(p QuotaProfile, today string, limit int) QuotaStatus {
	used := p.EffectiveCount(today)
	return QuotaStatus{
		Used:      used,
		Remaining: max(limit-used, 0),
		Limit:     limit,
		Date:      today,
	}
}
