// Package notifycenter is the client side of the notification pipeline:
// it consumes the realtime insert stream, reconciles server read-state
// with the device-local read set, applies per-type display preferences,
// and exposes the mark-read/clear operations the notification center UI
// calls. Exactly one goroutine consumes each center instance's stream,
// so state mutation needs no coordination beyond the internal mutex
// guarding reads from other goroutines.
package notifycenter

import (
	"context"
	"sync"

	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/models"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/pkg/localstore"
)

// ServerAPI is the slice of the backend the center talks to. For
// anonymous sessions only FetchRecent is ever called.
type ServerAPI interface {
	FetchRecent(ctx context.Context, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id uint) error
	MarkAllRead(ctx context.Context, ids []uint) error
	ClearAll(ctx context.Context) error
}

// Option configures a Center.
type Option func(*Center)

// WithPushPermission injects the platform push permission state. The
// push echo only fires when permission was previously granted AND the
// local pushEnabled preference is on.
func WithPushPermission(granted bool) Option {
	return func(c *Center) { c.pushGranted = granted }
}

// WithOnPush sets the local push echo callback invoked on realtime
// receipt of a deliverable record.
func WithOnPush(fn func(models.Notification)) Option {
	return func(c *Center) { c.onPush = fn }
}

// WithOnSound sets the new-notification sound callback.
func WithOnSound(fn func()) Option {
	return func(c *Center) { c.onSound = fn }
}

// Center is one mounted notification center instance.
type Center struct {
	store localstore.Store
	api   ServerAPI
	// authed is whether a recipient identity exists; it decides whether
	// read-state writes also go to the server.
	authed      bool
	fetchLimit  int
	pushGranted bool
	onPush      func(models.Notification)
	onSound     func()

	mu     sync.RWMutex
	items  []models.Notification // newest first
	cancel context.CancelFunc
	done   chan struct{}
}

func New(store localstore.Store, api ServerAPI, authenticated bool, fetchLimit int, opts ...Option) *Center {
	c := &Center{
		store:      store,
		api:        api,
		authed:     authenticated,
		fetchLimit: fetchLimit,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Start fetches the initial page and consumes the realtime stream until
// Close is called or the stream ends.
func (c *Center) Start(ctx context.Context, events <-chan models.Notification) error {
	initial, err := c.api.FetchRecent(ctx, c.fetchLimit)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.items = initial
	c.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	go func() {
		defer close(c.done)
		for {
			select {
			case <-runCtx.Done():
				return
			case n, ok := <-events:
				if !ok {
					return
				}
				c.handleInsert(n)
			}
		}
	}()
	return nil
}

// Close unsubscribes from the stream. Safe to call more than once.
func (c *Center) Close() {
	if c.cancel != nil {
		c.cancel()
		<-c.done
		c.cancel = nil
	}
}

// handleInsert records a realtime arrival. A locally disabled type is
// fully suppressed: stored but never badged, sounded, or echoed as push.
func (c *Center) handleInsert(n models.Notification) {
	c.mu.Lock()
	c.items = append([]models.Notification{n}, c.items...)
	c.mu.Unlock()

	if !c.typeEnabled(n.Type) {
		return
	}
	if c.onSound != nil {
		c.onSound()
	}
	if c.onPush != nil && c.pushGranted && c.store.PushEnabled() {
		c.onPush(n)
	}
}

func (c *Center) typeEnabled(notifType string) bool {
	prefs := c.store.Preferences()
	enabled, ok := prefs[notifType]
	return !ok || enabled
}

// Visible returns the loaded notifications whose type the user has not
// disabled, newest first.
func (c *Center) Visible() []models.Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Notification, 0, len(c.items))
	for _, n := range c.items {
		if c.typeEnabled(n.Type) {
			out = append(out, n)
		}
	}
	return out
}

// IsRead merges both read-state sources: a record is read when the
// server marked it or its ID is in the local read set.
func (c *Center) IsRead(n models.Notification) bool {
	if n.IsRead {
		return true
	}
	for _, id := range c.store.ReadIDs() {
		if id == n.ID {
			return true
		}
	}
	return false
}

// UnreadCount counts visible notifications neither source marks read.
func (c *Center) UnreadCount() int {
	read := make(map[uint]struct{})
	for _, id := range c.store.ReadIDs() {
		read[id] = struct{}{}
	}
	count := 0
	for _, n := range c.Visible() {
		if n.IsRead {
			continue
		}
		if _, ok := read[n.ID]; ok {
			continue
		}
		count++
	}
	return count
}

// MarkRead always writes the local set; the server record is updated
// only when an identity exists.
func (c *Center) MarkRead(ctx context.Context, id uint) error {
	c.store.AddReadIDs(id)
	if !c.authed {
		return nil
	}
	return c.api.MarkRead(ctx, id)
}

// MarkAllRead writes every currently-loaded unread ID into the local
// set, and batch-updates the server records when authenticated.
func (c *Center) MarkAllRead(ctx context.Context) error {
	c.mu.RLock()
	var ids []uint
	for _, n := range c.items {
		if !c.IsRead(n) {
			ids = append(ids, n.ID)
		}
	}
	c.mu.RUnlock()
	if len(ids) == 0 {
		return nil
	}
	c.store.AddReadIDs(ids...)
	if !c.authed {
		return nil
	}
	return c.api.MarkAllRead(ctx, ids)
}

// ClearAll empties the visible list and the local read set. When
// authenticated it also asks the server to clear, which deletes global
// records only and leaves personal records server-side.
func (c *Center) ClearAll(ctx context.Context) error {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
	c.store.ClearReadIDs()
	if !c.authed {
		return nil
	}
	return c.api.ClearAll(ctx)
}

// SetPreference flips a type's local display preference.
func (c *Center) SetPreference(notifType string, enabled bool) {
	c.store.SetPreference(notifType, enabled)
}
