package clockx

// Slots is the table a Clock sweeps. Slot state is owned by the caller;
// the clock only reads it and clears reference bits.
type Slots interface {
	Len() int
	Occupied(id int) bool
	Referenced(id int) bool
	ClearRef(id int)
	SetRef(id int)
	Pinned(id int) bool
}

// Clock implements CLOCK (second-chance) victim selection over slot IDs [0..n).
type Clock struct {
	n    int
	hand int
	// scratch, reused across sweeps
	busy    []bool
	cleared []int
}

// New returns a clock over n slots whose first Advance lands on slot 0.
func New(n int) *Clock {
	if n <= 0 {
		n = 1
	}
	return &Clock{
		n:    n,
		hand: n - 1,
		busy: make([]bool, n),
	}
}

func (c *Clock) Capacity() int { return c.n }

// Hand returns the slot the hand currently points at.
func (c *Clock) Hand() int { return c.hand }

// Advance moves the hand to the next slot.
func (c *Clock) Advance() {
	c.hand = (c.hand + 1) % c.n
}

// Victim sweeps from the slot after the hand and returns the first slot that
// is empty, or occupied with a clear reference bit and no pins. Referenced
// slots lose their bit and are skipped. ok is false once every slot has been
// seen pinned; the reference bits cleared by that failed sweep are restored.
func (c *Clock) Victim(s Slots) (id int, ok bool) {
	n := min(c.n, s.Len())
	if n == 0 {
		return -1, false
	}
	clear(c.busy)
	c.cleared = c.cleared[:0]

	busy := 0
	for busy < n {
		c.Advance()
		idx := c.hand
		if idx >= n {
			continue
		}

		switch {
		case !s.Occupied(idx):
			return idx, true
		case s.Referenced(idx):
			// Second chance.
			s.ClearRef(idx)
			c.cleared = append(c.cleared, idx)
		case s.Pinned(idx):
			if !c.busy[idx] {
				c.busy[idx] = true
				busy++
			}
		default:
			return idx, true
		}
	}

	for _, idx := range c.cleared {
		s.SetRef(idx)
	}
	return -1, false
}
