package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Loop reads r and feeds everything it receives to the Handler until ctx
// is cancelled or r fails. Handlers run on the Loop goroutine, as does the
// work queued with Do and Submit, so nothing else may touch the Handler
// while Loop runs.
//
// Reading happens on a separate goroutine, which means Loop can return on
// cancellation while a Read is still blocked. Closing r releases it.
//
// Loop returns ctx.Err() on cancellation, io.EOF when r is exhausted, and a
// wrapped read error otherwise.
//
// Usage:
//
//	t, err := handler.SerialDialer{PortName: "/dev/ttyUSB0"}.Dial(ctx)
//	if err != nil { return err }
//	defer t.Close()
//
//	h.SetOutput(t)
//	go h.Loop(ctx, t)
func (h *Handler) Loop(ctx context.Context, r io.Reader) error {
	h.mu.Lock()
	if h.quit != nil {
		h.mu.Unlock()
		return ErrLoopRunning
	}
	quit := make(chan struct{})
	h.quit = quit
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		close(quit)
		h.quit = nil
		h.mu.Unlock()
	}()

	chunks := make(chan []byte, 10)
	readErrs := make(chan error, 1)

	go func() {
		defer close(chunks)
		buf := make([]byte, 256)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				p := make([]byte, n)
				copy(p, buf[:n])
				select {
				case chunks <- p:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					readErrs <- err
				}
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case fn := <-h.work:
			fn()

		case p, ok := <-chunks:
			if !ok {
				select {
				case err := <-readErrs:
					return fmt.Errorf("read error: %w", err)
				default:
					return io.EOF
				}
			}
			h.ProcessBytes(p)
		}
	}
}

// Do runs fn on the Loop goroutine and waits for it to finish. It returns
// ErrLoopStopped if no Loop is running or the Loop exits first.
func (h *Handler) Do(ctx context.Context, fn func(h *Handler)) error {
	h.mu.Lock()
	quit := h.quit
	h.mu.Unlock()
	if quit == nil {
		return ErrLoopStopped
	}

	done := make(chan struct{})
	task := func() {
		defer close(done)
		fn(h)
	}

	select {
	case h.work <- task:
	case <-quit:
		return ErrLoopStopped
	case <-ctx.Done():
		return fmt.Errorf("work cancelled before start: %w", ctx.Err())
	}

	select {
	case <-done:
		return nil
	case <-quit:
		select {
		case <-done:
			return nil
		default:
			return ErrLoopStopped
		}
	case <-ctx.Done():
		return fmt.Errorf("work cancelled: %w", ctx.Err())
	}
}

// Submit feeds text to the Handler on the Loop goroutine, as if it had
// arrived on the transport.
func (h *Handler) Submit(ctx context.Context, text string) error {
	return h.Do(ctx, func(h *Handler) { h.ProcessString(text) })
}
