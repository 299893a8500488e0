package blocks

// BaseStreakThreshold is the first streak length that earns a glass block.
const BaseStreakThreshold = 5

// NextStreakThreshold returns the next milestone above current.
func NextStreakThreshold(current int) int {
	for _, t := range []int{5, 10, 15, 20} {
		if t > current {
			return t
		}
	}
	// Beyond 20, every 5.
	return ((current / 5) + 1) * 5
}

// Streak counts consecutive correct answers across problems and reports
// when a milestone is reached.
type Streak struct {
	length int
	next   int
}

// Record adds one answer. It returns true when the streak just reached a
// milestone.
func (s *Streak) Record(correct bool) bool {
	if s.next == 0 {
		s.next = BaseStreakThreshold
	}
	if !correct {
		s.length = 0
		s.next = BaseStreakThreshold
		return false
	}
	s.length++
	if s.length >= s.next {
		s.next = NextStreakThreshold(s.length)
		return true
	}
	return false
}

// Len returns the current streak length.
func (s *Streak) Len() int {
	return s.length
}
