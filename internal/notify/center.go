// Package notify keeps the stack of transient user notifications.
package notify

import (
	"slices"
	"sync"
	"time"

	"github.com/fakhrymubarak/weather-dashboard/internal/model"
	"github.com/google/uuid"
)

// Center stores notifications until their TTL elapses. Active returns newest first.
type Center struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items []model.Notification
}

func NewCenter(ttl time.Duration) *Center {
	return &Center{ttl: ttl, now: time.Now}
}

func (c *Center) Push(level model.NotificationLevel, text string) model.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := model.Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Text:      text,
		CreatedAt: c.now(),
	}
	c.prune()
	c.items = append(c.items, n)
	return n
}

func (c *Center) Success(text string) model.Notification { return c.Push(model.LevelSuccess, text) }
func (c *Center) Warning(text string) model.Notification { return c.Push(model.LevelWarning, text) }
func (c *Center) Error(text string) model.Notification   { return c.Push(model.LevelError, text) }

// Active returns the notifications that have not yet auto-dismissed, most recent first.
func (c *Center) Active() []model.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.prune()
	out := slices.Clone(c.items)
	slices.Reverse(out)
	return out
}

// Dismiss removes a notification before its TTL. It reports whether id was active.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := slices.IndexFunc(c.items, func(n model.Notification) bool { return n.ID == id })
	if i < 0 {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	return true
}

func (c *Center) prune() {
	cutoff := c.now().Add(-c.ttl)
	c.items = slices.DeleteFunc(c.items, func(n model.Notification) bool {
		return !n.CreatedAt.After(cutoff)
	})
}
