package dice

import "go.uber.org/zap"

// Stream is the ordered draw handle threaded through a combat turn. Every
// probability check is one or more draws from it, so replay requires the same
// seed and the same draw order.
//
// Not safe for concurrent use.
type Stream struct {
	src    Source
	logger *zap.Logger
	draws  int
}

// NewStream wraps src. logger may be nil, in which case rolls are not logged.
//
// Precondition: src must be non-nil.
func NewStream(src Source, logger *zap.Logger) *Stream {
	if src == nil {
		panic("dice: NewStream requires a non-nil source")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stream{src: src, logger: logger}
}

// Draws returns how many raw draws have been taken from the stream.
func (s *Stream) Draws() int { return s.draws }

// Randint0 returns a value in [0, n). n <= 0 yields 0 without drawing.
func (s *Stream) Randint0(n int) int {
	if n <= 0 {
		return 0
	}
	s.draws++
	return s.src.Intn(n)
}

// Randint1 returns a value in [1, n]. n <= 0 yields 0 without drawing.
func (s *Stream) Randint1(n int) int {
	if n <= 0 {
		return 0
	}
	return s.Randint0(n) + 1
}

// OneIn reports a 1-in-n success. n <= 1 always succeeds.
func (s *Stream) OneIn(n int) bool {
	if n <= 1 {
		return true
	}
	return s.Randint0(n) == 0
}

// Damroll sums count rolls of a sides-sided die.
func (s *Stream) Damroll(count, sides int) int {
	total := 0
	for i := 0; i < count; i++ {
		total += s.Randint1(sides)
	}
	return total
}

// Roll evaluates d and logs the audit trail at debug level.
//
// Postcondition: len(result.Dice) == d.Count when Sides > 0.
func (s *Stream) Roll(d Dice) RollResult {
	result := RollResult{Expression: d.String()}
	if d.Sides > 0 {
		result.Dice = make([]int, d.Count)
		for i := range result.Dice {
			result.Dice[i] = s.Randint1(d.Sides)
		}
	}
	s.logger.Debug("dice roll",
		zap.Stringer("roll", result),
		zap.Int("total", result.Total()),
	)
	return result
}

// Read fills p from the stream so identifiers derived from it (loot instance
// uuids) are reproducible under replay. It never fails.
func (s *Stream) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(s.Randint0(256))
	}
	return len(p), nil
}
