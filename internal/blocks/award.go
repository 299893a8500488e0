package blocks

import "time"

// Award is one block earned during a session.
type Award struct {
	Kind      Kind
	Rarity    Rarity
	SessionID string
	ProblemID string // empty for streak and completion blocks
	Reason    string // e.g. "Mastered 7 + 5"
	AwardedAt time.Time
}
