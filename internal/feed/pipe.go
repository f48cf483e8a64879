package feed

import (
	"context"
	"time"

	"github.com/syntrixbase/notes/pkg/model"
)

// closeTimeout bounds how long releasing server-side cursors may take.
var closeTimeout = 5 * time.Second

// Pipe drives it from its own goroutine and forwards every event on the
// returned channel, which is unbuffered so a slow reader slows the
// iterator down. The channel is closed when iteration ends; wait then
// returns the terminal error. The iterator is closed before the channel is.
func Pipe(ctx context.Context, it Iterator) (events <-chan Event, wait func() error) {
	out := make(chan Event)
	done := make(chan struct{})
	var err error

	go func() {
		defer close(done)
		defer close(out)
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
			defer cancel()
			_ = it.Close(closeCtx)
		}()

		for it.Next(ctx) {
			select {
			case out <- it.Event():
			case <-ctx.Done():
				err = model.ErrCanceled
				return
			}
		}
		err = it.Err()
	}()

	return out, func() error {
		<-done
		return err
	}
}
