package core

// BestMove returns the possible move that pops the most tiles straight away.
// Ties go to the first move in row-major order.
func BestMove(v KindView, det Detector) (Move, bool) {
	var best Move
	bestN := 0
	for _, m := range det.FindPossibleMoves(v) {
		if n := len(det.MatchesAfterSwap(v, m.A, m.B)); n > bestN {
			best, bestN = m, n
		}
	}
	return best, bestN > 0
}

// AutoplayOptions bounds an autoplay run.
type AutoplayOptions struct {
	MaxMoves       int     // Safety cap on swaps; 0 means 1000
	SecondsPerMove float64 // Play time charged per move for time limits
}

// Autoplay plays a started session greedily until the run is decided or the
// move cap is reached. A stuck board is reshuffled once per occurrence; if
// that fails the run is marked failed.
func Autoplay(s *Session, opts AutoplayOptions) Status {
	if s.engine == nil {
		return s.Status()
	}
	maxMoves := opts.MaxMoves
	if maxMoves <= 0 {
		maxMoves = 1000
	}
	for moves := 0; s.Playing() && moves < maxMoves; moves++ {
		if s.Stuck() {
			if err := s.Reshuffle(); err != nil {
				s.run.Fail()
				break
			}
		}
		m, ok := BestMove(s.engine.Board(), s.engine.Detector())
		if !ok {
			s.run.Fail()
			break
		}
		if opts.SecondsPerMove > 0 {
			s.Tick(opts.SecondsPerMove)
			if !s.Playing() {
				break
			}
		}
		if !s.Swap(m.A, m.B) {
			s.run.Fail()
			break
		}
		s.Settle()
	}
	return s.Status()
}
