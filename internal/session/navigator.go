package session

import "sync"

// Navigator abstracts the horizontally-paginated carousel the wizard
// pages with. Indices are 1-based. The navigator holds no answer state;
// the session is the source of truth and follows the navigator's moves
// through the change callback.
type Navigator interface {
	// Advance moves one slide forward, stopping at the last slide.
	Advance()
	// SlideTo jumps to the given slide, clamped to the valid range.
	SlideTo(index int)
	// OnChange registers the callback invoked after every move.
	OnChange(fn func(index int))
	// Current returns the 1-based slide index.
	Current() int
}

// SlideDeck is an in-memory Navigator used by kiosk builds and tests.
type SlideDeck struct {
	mu       sync.Mutex
	index    int
	total    int
	onChange func(int)
}

// NewSlideDeck creates a deck of the given size, positioned on slide 1.
func NewSlideDeck(total int) *SlideDeck {
	return &SlideDeck{index: 1, total: total}
}

func (d *SlideDeck) Advance() {
	d.mu.Lock()
	if d.index >= d.total {
		d.mu.Unlock()
		return
	}
	d.index++
	index, fn := d.index, d.onChange
	d.mu.Unlock()

	if fn != nil {
		fn(index)
	}
}

func (d *SlideDeck) SlideTo(index int) {
	d.mu.Lock()
	if index < 1 {
		index = 1
	}
	if d.total > 0 && index > d.total {
		index = d.total
	}
	changed := index != d.index
	d.index = index
	fn := d.onChange
	d.mu.Unlock()

	if changed && fn != nil {
		fn(index)
	}
}

func (d *SlideDeck) OnChange(fn func(index int)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onChange = fn
}

func (d *SlideDeck) Current() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.index
}
