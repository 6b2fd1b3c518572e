// Package input produces key events for the navigation loop.
package input

import (
	"github.com/kk-code-lab/qpreview/internal/keys"
)

// Source is a stream of key events. Start may be called once; the returned
// channel is closed when the source ends. Close ends the source and is safe
// to call more than once.
type Source interface {
	Start() (<-chan keys.Event, error)
	Close() error
}

// Merge combines sources into one ordered, unbounded stream. The stream ends
// when primary ends; events still queued at that point are delivered first.
// Closing stop tells Merge the consumer is gone: queued events are dropped
// and every goroutine exits.
func Merge(stop <-chan struct{}, primary <-chan keys.Event, extra ...<-chan keys.Event) <-chan keys.Event {
	in := make(chan keys.Event)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for ev := range primary {
			select {
			case in <- ev:
			case <-stop:
				return
			}
		}
	}()

	for _, ch := range extra {
		if ch == nil {
			continue
		}
		go func(ch <-chan keys.Event) {
			for {
				select {
				case ev, ok := <-ch:
					if !ok {
						return
					}
					select {
					case in <- ev:
					case <-done:
						return
					case <-stop:
						return
					}
				case <-done:
					return
				case <-stop:
					return
				}
			}
		}(ch)
	}

	out := make(chan keys.Event)
	go pump(in, done, stop, out)
	return out
}

// pump moves events from in to out through a growing queue so producers never
// wait on a slow consumer.
func pump(in <-chan keys.Event, done, stop <-chan struct{}, out chan<- keys.Event) {
	defer close(out)
	var queue []keys.Event
	for {
		var send chan<- keys.Event
		var next keys.Event
		if len(queue) > 0 {
			send = out
			next = queue[0]
		}
		select {
		case ev := <-in:
			queue = append(queue, ev)
		case send <- next:
			queue = queue[1:]
		case <-stop:
			return
		case <-done:
			for _, ev := range queue {
				select {
				case out <- ev:
				case <-stop:
					return
				}
			}
			return
		}
	}
}
