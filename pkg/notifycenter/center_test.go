package notifycenter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/models"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/pkg/localstore"
)

type fakeAPI struct {
	mu          sync.Mutex
	initial     []models.Notification
	markedRead  []uint
	markedAll   []uint
	clearCalled bool
}

func (f *fakeAPI) FetchRecent(_ context.Context, limit int) ([]models.Notification, error) {
	if len(f.initial) > limit {
		return f.initial[:limit], nil
	}
	return f.initial, nil
}

func (f *fakeAPI) MarkRead(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markedRead = append(f.markedRead, id)
	return nil
}

func (f *fakeAPI) MarkAllRead(_ context.Context, ids []uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markedAll = append(f.markedAll, ids...)
	return nil
}

func (f *fakeAPI) ClearAll(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearCalled = true
	return nil
}

func notif(id uint, notifType string, serverRead bool) models.Notification {
	return models.Notification{ID: id, Type: notifType, Title: "n", IsRead: serverRead}
}

func startCenter(t *testing.T, api *fakeAPI, store localstore.Store, authed bool, opts ...Option) (*Center, chan models.Notification) {
	t.Helper()
	c := New(store, api, authed, 20, opts...)
	events := make(chan models.Notification, 8)
	if err := c.Start(context.Background(), events); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(c.Close)
	return c, events
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestReadStateMergesServerAndLocal(t *testing.T) {
	api := &fakeAPI{initial: []models.Notification{
		notif(1, "info", true),  // read on server
		notif(2, "info", false), // read only locally
		notif(3, "info", false), // unread everywhere
	}}
	store := localstore.NewMemoryStore()
	store.AddReadIDs(2)

	c, _ := startCenter(t, api, store, true)

	if !c.IsRead(api.initial[0]) {
		t.Error("server-read record reported unread")
	}
	if !c.IsRead(api.initial[1]) {
		t.Error("locally-read record reported unread")
	}
	if c.IsRead(api.initial[2]) {
		t.Error("unread record reported read")
	}
	if got := c.UnreadCount(); got != 1 {
		t.Errorf("UnreadCount = %d, want 1", got)
	}
}

func TestDisabledTypeIsSuppressedEverywhere(t *testing.T) {
	api := &fakeAPI{initial: []models.Notification{
		notif(1, "promo", false),
		notif(2, "order", false),
	}}
	store := localstore.NewMemoryStore()
	store.SetPreference("promo", false)
	store.SetPushEnabled(true)

	var pushed, sounded int
	c, events := startCenter(t, api, store, true,
		WithPushPermission(true),
		WithOnPush(func(models.Notification) { pushed++ }),
		WithOnSound(func() { sounded++ }),
	)

	visible := c.Visible()
	if len(visible) != 1 || visible[0].Type != "order" {
		t.Fatalf("Visible = %v, want only the order record", visible)
	}
	if got := c.UnreadCount(); got != 1 {
		t.Errorf("UnreadCount = %d, want 1 (promo excluded)", got)
	}

	// A realtime promo must be stored but never badge, sound, or push.
	events <- notif(3, "promo", false)
	events <- notif(4, "order", false)
	waitFor(t, func() bool { return len(c.Visible()) == 2 })

	if pushed != 1 {
		t.Errorf("push echo fired %d time(s), want 1 (order only)", pushed)
	}
	if sounded != 1 {
		t.Errorf("sound fired %d time(s), want 1 (order only)", sounded)
	}
	if got := c.UnreadCount(); got != 2 {
		t.Errorf("UnreadCount after inserts = %d, want 2", got)
	}

	// Re-enabling the type brings the stored records back.
	c.SetPreference("promo", true)
	if got := len(c.Visible()); got != 4 {
		t.Errorf("Visible after re-enable = %d records, want 4", got)
	}
}

func TestPushEchoRequiresPermissionAndOptIn(t *testing.T) {
	cases := []struct {
		name       string
		permission bool
		optIn      bool
		want       int
	}{
		{"both granted", true, true, 1},
		{"no platform permission", false, true, 0},
		{"no local opt-in", true, false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := localstore.NewMemoryStore()
			store.SetPushEnabled(tc.optIn)
			pushed := 0
			c, events := startCenter(t, &fakeAPI{}, store, false,
				WithPushPermission(tc.permission),
				WithOnPush(func(models.Notification) { pushed++ }),
			)
			events <- notif(1, "info", false)
			waitFor(t, func() bool { return len(c.Visible()) == 1 })
			if pushed != tc.want {
				t.Errorf("push fired %d time(s), want %d", pushed, tc.want)
			}
		})
	}
}

func TestMarkReadAnonymousStaysLocal(t *testing.T) {
	api := &fakeAPI{initial: []models.Notification{notif(1, "info", false)}}
	store := localstore.NewMemoryStore()
	c, _ := startCenter(t, api, store, false)

	if err := c.MarkRead(context.Background(), 1); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if len(api.markedRead) != 0 {
		t.Error("anonymous MarkRead reached the server")
	}
	if got := store.ReadIDs(); len(got) != 1 || got[0] != 1 {
		t.Errorf("local read set = %v, want [1]", got)
	}
	if got := c.UnreadCount(); got != 0 {
		t.Errorf("UnreadCount = %d, want 0", got)
	}
}

func TestMarkReadAuthenticatedWritesBoth(t *testing.T) {
	api := &fakeAPI{initial: []models.Notification{notif(1, "info", false)}}
	store := localstore.NewMemoryStore()
	c, _ := startCenter(t, api, store, true)

	if err := c.MarkRead(context.Background(), 1); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if len(api.markedRead) != 1 || api.markedRead[0] != 1 {
		t.Errorf("server MarkRead calls = %v, want [1]", api.markedRead)
	}
	if got := store.ReadIDs(); len(got) != 1 || got[0] != 1 {
		t.Errorf("local read set = %v, want [1]", got)
	}
}

func TestMarkAllReadSkipsAlreadyRead(t *testing.T) {
	api := &fakeAPI{initial: []models.Notification{
		notif(1, "info", true),
		notif(2, "info", false),
		notif(3, "promo", false),
	}}
	store := localstore.NewMemoryStore()
	store.AddReadIDs(3)
	c, _ := startCenter(t, api, store, true)

	if err := c.MarkAllRead(context.Background()); err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if len(api.markedAll) != 1 || api.markedAll[0] != 2 {
		t.Errorf("server batch = %v, want [2]", api.markedAll)
	}
	if got := c.UnreadCount(); got != 0 {
		t.Errorf("UnreadCount = %d, want 0", got)
	}
}

func TestClearAll(t *testing.T) {
	api := &fakeAPI{initial: []models.Notification{
		notif(1, "info", false),
		notif(2, "promo", false),
	}}
	store := localstore.NewMemoryStore()
	store.AddReadIDs(1)
	c, _ := startCenter(t, api, store, true)

	if err := c.ClearAll(context.Background()); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if len(c.Visible()) != 0 {
		t.Error("list not emptied")
	}
	if len(store.ReadIDs()) != 0 {
		t.Error("local read set not cleared")
	}
	if !api.clearCalled {
		t.Error("server clear not invoked for authenticated session")
	}
}

func TestClearAllAnonymousSkipsServer(t *testing.T) {
	api := &fakeAPI{initial: []models.Notification{notif(1, "info", false)}}
	c, _ := startCenter(t, api, localstore.NewMemoryStore(), false)

	if err := c.ClearAll(context.Background()); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if api.clearCalled {
		t.Error("anonymous ClearAll reached the server")
	}
}

func TestCloseStopsConsumingStream(t *testing.T) {
	c, events := startCenter(t, &fakeAPI{}, localstore.NewMemoryStore(), false)

	events <- notif(1, "info", false)
	waitFor(t, func() bool { return len(c.Visible()) == 1 })

	c.Close()
	events <- notif(2, "info", false)
	time.Sleep(30 * time.Millisecond)
	if got := len(c.Visible()); got != 1 {
		t.Errorf("records after Close = %d, want 1", got)
	}
	c.Close() // second close must be a no-op
}
