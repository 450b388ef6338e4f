package wallet

import "time"

// ActivityLevel buckets a wallet by overall transaction volume.
type ActivityLevel string

const (
	ActivityInactive  ActivityLevel = "inactive"
	ActivityBeginner  ActivityLevel = "beginner"
	ActivityActive    ActivityLevel = "active"
	ActivityPowerUser ActivityLevel = "power_user"
	ActivityWhale     ActivityLevel = "whale"
)

// CategorizeActivity maps a transaction count to its activity level.
func CategorizeActivity(txCount int) ActivityLevel {
	switch {
	case txCount == 0:
		return ActivityInactive
	case txCount < 10:
		return ActivityBeginner
	case txCount < 100:
		return ActivityActive
	case txCount < 500:
		return ActivityPowerUser
	default:
		return ActivityWhale
	}
}

// Analysis is a point-in-time inspection of a wallet: the normalized
// metrics plus derived presentation fields and the observation time.
type Analysis struct {
	Metrics

	IsActive      bool          `json:"is_active"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	Timestamp     time.Time     `json:"timestamp"`
}
