package trivia

import "time"

// Settings holds the fixed round parameters.
type Settings struct {
	RoundSize        int
	RoundSeconds     int
	CountdownSeconds int
	Tick             time.Duration
	RevealDelay      time.Duration
	Tiers            []TierRule
}

// DefaultSettings returns ten questions, a 30 second round clock, a 3 second
// pre-round countdown, one second ticks and a one second reveal window.
func DefaultSettings() Settings {
	return Settings{
		RoundSize:        10,
		RoundSeconds:     30,
		CountdownSeconds: 3,
		Tick:             time.Second,
		RevealDelay:      time.Second,
		Tiers:            DefaultTiers,
	}
}

// normalized fills zero fields from DefaultSettings.
func (s Settings) normalized() Settings {
	def := DefaultSettings()
	if s.RoundSize <= 0 {
		s.RoundSize = def.RoundSize
	}
	if s.RoundSeconds <= 0 {
		s.RoundSeconds = def.RoundSeconds
	}
	if s.CountdownSeconds <= 0 {
		s.CountdownSeconds = def.CountdownSeconds
	}
	if s.Tick <= 0 {
		s.Tick = def.Tick
	}
	if s.RevealDelay <= 0 {
		s.RevealDelay = def.RevealDelay
	}
	if len(s.Tiers) == 0 {
		s.Tiers = def.Tiers
	}
	return s
}
