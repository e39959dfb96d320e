package http

import (
	"context"
	"sync"
)

// subscriberBuffer bounds the backlog of a slow SSE client; further changes are dropped for it.
const subscriberBuffer = 16

// hub shares one engine watch among all /events subscribers. The watch starts
// with the first subscriber and is cancelled when the last one leaves.
type hub struct {
	watch func(ctx context.Context) (<-chan string, error)

	mu      sync.Mutex
	current *feed
}

// feed is one running watch and its subscribers.
type feed struct {
	cancel context.CancelFunc
	subs   map[chan string]struct{}
}

func newHub(watch func(ctx context.Context) (<-chan string, error)) *hub {
	return &hub{watch: watch}
}

// subscribe registers a subscriber. The returned channel is closed when the
// underlying watch ends; stop must be called once the subscriber is done.
func (h *hub) subscribe() (<-chan string, func(), error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	f := h.current
	if f == nil {
		ctx, cancel := context.WithCancel(context.Background())
		events, err := h.watch(ctx)
		if err != nil {
			cancel()
			return nil, nil, err
		}
		f = &feed{cancel: cancel, subs: make(map[chan string]struct{})}
		h.current = f
		go h.run(f, events)
	}

	ch := make(chan string, subscriberBuffer)
	f.subs[ch] = struct{}{}
	return ch, func() { h.unsubscribe(f, ch) }, nil
}

func (h *hub) unsubscribe(f *feed, ch chan string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := f.subs[ch]; ok {
		delete(f.subs, ch)
		close(ch)
	}
	if len(f.subs) == 0 && h.current == f {
		h.current = nil
		f.cancel()
	}
}

func (h *hub) run(f *feed, events <-chan string) {
	for id := range events {
		h.mu.Lock()
		for ch := range f.subs {
			select {
			case ch <- id:
			default:
			}
		}
		h.mu.Unlock()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range f.subs {
		delete(f.subs, ch)
		close(ch)
	}
	if h.current == f {
		h.current = nil
	}
	f.cancel()
}
