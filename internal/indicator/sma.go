package indicator

// SMA is a rolling simple moving average over a fixed window.
// Uses a preallocated circular buffer for an O(1) update path.
type SMA struct {
	period  int
	buf     []float64
	idx     int
	count   int
	sum     float64
	current float64
}

// NewSMA creates a rolling average with the given period.
func NewSMA(period int) *SMA {
	return &SMA{
		period: period,
		buf:    make([]float64, period),
	}
}

// Update feeds the next price and recalculates.
func (s *SMA) Update(price float64) {
	if s.count >= s.period {
		// Subtract the oldest value being overwritten
		s.sum -= s.buf[s.idx]
	}

	s.buf[s.idx] = price
	s.sum += price
	s.idx = (s.idx + 1) % s.period
	s.count++

	if s.count >= s.period {
		s.current = s.sum / float64(s.period)
	}
}

// Value returns the current average. Returns 0 until Ready.
func (s *SMA) Value() float64 { return s.current }

// Ready reports whether a full window has been accumulated.
func (s *SMA) Ready() bool { return s.count >= s.period }

// Reset clears the state for reuse.
func (s *SMA) Reset() {
	s.idx = 0
	s.count = 0
	s.sum = 0
	s.current = 0
	for i := range s.buf {
		s.buf[i] = 0
	}
}
