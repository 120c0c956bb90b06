package auth

import (
	"context"
	"sync/atomic"
)

// Session is the signed-in identity of a client.
type Session struct {
	UserID  string
	Token   string
	Premium bool
}

// SessionHolder holds the current session. It is fed by one subscription
// to identity changes and read by everything else.
type SessionHolder struct {
	current atomic.Pointer[Session]
}

// Current returns the signed-in session, or nil when signed out.
func (h *SessionHolder) Current() *Session {
	return h.current.Load()
}

// Set replaces the current session. A nil session signs out.
func (h *SessionHolder) Set(s *Session) {
	h.current.Store(s)
}

// Follow stores every session received on updates until the channel is
// closed or ctx is done. A nil value on the channel signs out.
func (h *SessionHolder) Follow(ctx context.Context, updates <-chan *Session) {
	for {
		select {
		case <-ctx.Done():
			return
		case s, ok := <-updates:
			if !ok {
				return
			}
			h.Set(s)
		}
	}
}
