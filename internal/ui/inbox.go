package ui

import (
	"cart3d/internal/cart"
)

// inbox hands cart snapshots from the writer goroutine to the UI loop. Only
// the latest snapshot is kept; older ones are superseded.
type inbox struct {
	ch chan []cart.Product
}

func newInbox() *inbox {
	return &inbox{ch: make(chan []cart.Product, 1)}
}

// put never blocks.
func (in *inbox) put(products []cart.Product) {
	for {
		select {
		case in.ch <- products:
			return
		default:
		}
		select {
		case <-in.ch:
		default:
		}
	}
}

// take returns the newest snapshot, if one arrived since the last call.
func (in *inbox) take() ([]cart.Product, bool) {
	select {
	case p := <-in.ch:
		return p, true
	default:
		return nil, false
	}
}
