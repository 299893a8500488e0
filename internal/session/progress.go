package session

// Progress is how far a session has come, for progress bars.
type Progress struct {
	Mastered int
	Total    int
}

// Fraction returns Mastered/Total in [0, 1].
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Mastered) / float64(p.Total)
}
