package notifier

import "context"

// Notifier delivers a user-visible notification.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// Multi fans a notification out to several notifiers. Every notifier is
// tried; the first error is returned.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, title, message string) error {
	var first error
	for _, n := range m {
		if err := n.Notify(ctx, title, message); err != nil && first == nil {
			first = err
		}
	}
	return first
}
