package trivia

import "github.com/senceapptr/SenceApp-sub004/internal/domain"

// TierRule awards Tier when the score percentage is at least MinPercent.
type TierRule struct {
	MinPercent float64
	Tier       domain.Tier
}

// DefaultTiers are the flat reward brackets, highest first.
var DefaultTiers = []TierRule{
	{MinPercent: 90, Tier: domain.Tier{Label: "Trivia Master", Reward: 100}},
	{MinPercent: 70, Tier: domain.Tier{Label: "Sharp Mind", Reward: 50}},
	{MinPercent: 50, Tier: domain.Tier{Label: "Good Effort", Reward: 25}},
	{MinPercent: 0, Tier: domain.Tier{Label: "Keep Practicing", Reward: 10}},
}

// Percentage is 100*score/answered, treating zero answered as one.
func Percentage(score, answered int) float64 {
	if answered < 1 {
		answered = 1
	}
	return 100 * float64(score) / float64(answered)
}

// TierFor maps a score against the answered count onto DefaultTiers.
func TierFor(score, answered int) domain.Tier {
	return tierFrom(DefaultTiers, score, answered)
}

func tierFrom(rules []TierRule, score, answered int) domain.Tier {
	pct := Percentage(score, answered)
	for _, r := range rules {
		if pct >= r.MinPercent {
			return r.Tier
		}
	}
	// rules are expected to end with a 0% bracket
	return rules[len(rules)-1].Tier
}
