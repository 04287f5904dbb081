package notifier

import (
	"fmt"
	"io"
)

// Notifier delivers a formatted message.
type Notifier interface {
	Send(text string) error
}

// WriterNotifier prints messages, used when Telegram is not configured.
type WriterNotifier struct {
	W io.Writer
}

func (w *WriterNotifier) Send(text string) error {
	_, err := fmt.Fprintln(w.W, text)
	return err
}
