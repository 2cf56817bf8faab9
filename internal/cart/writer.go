package cart

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
)

// write is one queued persistence operation.
type write struct {
	op  string
	run func(ctx context.Context) error
}

// Writer applies store writes on a background goroutine. Callers never wait
// for a write and learn about its effect through Store.Observe. Writes run
// one at a time in submission order; a failed write is handed to the error
// handler and dropped.
type Writer struct {
	store   *Store
	onError func(op string, err error)

	mu           sync.Mutex
	backlog      []write
	notify       chan struct{}
	done         chan struct{}
	shuttingDown atomic.Bool

	applied atomic.Uint64
	failed  atomic.Uint64
}

// NewWriter starts a writer for store. A nil onError logs failures.
func NewWriter(store *Store, onError func(op string, err error)) *Writer {
	if onError == nil {
		onError = func(op string, err error) {
			log.Printf("Cart: %s failed: %v", op, err)
		}
	}
	w := &Writer{
		store:   store,
		onError: onError,
		notify:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w
}

func (w *Writer) loop() {
	defer close(w.done)
	for {
		for {
			item, ok := w.next()
			if !ok {
				break
			}
			// Writes run to completion even if the UI has gone away.
			if err := item.run(context.Background()); err != nil {
				w.failed.Add(1)
				w.onError(item.op, err)
				continue
			}
			w.applied.Add(1)
		}
		if w.shuttingDown.Load() && w.BacklogSize() == 0 {
			return
		}
		<-w.notify
	}
}

func (w *Writer) next() (write, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.backlog) == 0 {
		return write{}, false
	}
	item := w.backlog[0]
	w.backlog = w.backlog[1:]
	return item, true
}

func (w *Writer) enqueue(op string, run func(ctx context.Context) error) bool {
	w.mu.Lock()
	if w.shuttingDown.Load() {
		w.mu.Unlock()
		log.Printf("Cart: %s dropped, writer closed", op)
		return false
	}
	w.backlog = append(w.backlog, write{op: op, run: run})
	w.mu.Unlock()
	select {
	case w.notify <- struct{}{}:
	default:
	}
	return true
}

func (w *Writer) Insert(products ...Product) bool {
	return w.enqueue("insert", func(ctx context.Context) error {
		return w.store.Insert(ctx, products...)
	})
}

func (w *Writer) Update(p Product) bool {
	return w.enqueue("update", func(ctx context.Context) error {
		return w.store.Update(ctx, p)
	})
}

func (w *Writer) Delete(p Product) bool {
	return w.enqueue("delete", func(ctx context.Context) error {
		return w.store.Delete(ctx, p)
	})
}

// Reset replaces the whole cart with products.
func (w *Writer) Reset(products ...Product) bool {
	return w.enqueue("reset", func(ctx context.Context) error {
		return w.store.Reset(ctx, products...)
	})
}

// BacklogSize returns the number of writes not started yet.
func (w *Writer) BacklogSize() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.backlog)
}

// Stats returns how many writes succeeded and failed.
func (w *Writer) Stats() (applied, failed uint64) {
	return w.applied.Load(), w.failed.Load()
}

// Close stops intake and waits for queued writes to finish.
func (w *Writer) Close() {
	w.mu.Lock()
	w.shuttingDown.Store(true)
	w.mu.Unlock()
	select {
	case w.notify <- struct{}{}:
	default:
	}
	<-w.done
}
