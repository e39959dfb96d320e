package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/automata/pkg/ports"
)

// Watch follows loader changes, dropping each changed automaton from the
// cache before forwarding its ID. It fails if the loader cannot be watched.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	w, ok := e.loader.(ports.Watchable)
	if !ok {
		return nil, fmt.Errorf("current loader does not support watching")
	}
	events, err := w.Watch(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan string, 1)
	go func() {
		defer close(out)
		for id := range events {
			e.Invalidate(id)
			e.logger.Info("Definition changed", "automaton", id)
			select {
			case out <- id:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
