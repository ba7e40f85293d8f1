package localstore

import (
	"path/filepath"
	"testing"
)

func TestMemoryStoreReadIDs(t *testing.T) {
	s := NewMemoryStore()

	if got := s.ReadIDs(); len(got) != 0 {
		t.Fatalf("fresh store ReadIDs = %v, want empty", got)
	}

	s.AddReadIDs(1, 2, 3)
	s.AddReadIDs(2, 4) // 2 must not duplicate

	got := s.ReadIDs()
	want := []uint{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("ReadIDs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ReadIDs[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	s.ClearReadIDs()
	if got := s.ReadIDs(); len(got) != 0 {
		t.Errorf("after clear ReadIDs = %v, want empty", got)
	}
}

func TestMemoryStorePreferences(t *testing.T) {
	s := NewMemoryStore()

	if prefs := s.Preferences(); len(prefs) != 0 {
		t.Fatalf("fresh store Preferences = %v, want empty", prefs)
	}

	s.SetPreference("promo", false)
	s.SetPreference("order", true)

	prefs := s.Preferences()
	if v, ok := prefs["promo"]; !ok || v {
		t.Errorf("promo preference = %v/%v, want false/true", v, ok)
	}
	if v, ok := prefs["order"]; !ok || !v {
		t.Errorf("order preference = %v/%v, want true/true", v, ok)
	}

	// Returned map is a copy; mutating it must not leak back.
	prefs["promo"] = true
	if s.Preferences()["promo"] {
		t.Error("mutating returned map changed store state")
	}
}

func TestMemoryStorePushAndDeviceID(t *testing.T) {
	s := NewMemoryStore()

	if s.PushEnabled() {
		t.Error("push should default to disabled")
	}
	s.SetPushEnabled(true)
	if !s.PushEnabled() {
		t.Error("SetPushEnabled(true) not persisted")
	}

	id := s.DeviceID()
	if id == "" {
		t.Fatal("DeviceID is empty")
	}
	if s.DeviceID() != id {
		t.Error("DeviceID changed between reads")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "center.json")

	first, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	first.AddReadIDs(10, 11)
	first.SetPreference("promo", false)
	first.SetPushEnabled(true)
	deviceID := first.DeviceID()

	second, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := second.ReadIDs(); len(got) != 2 || got[0] != 10 || got[1] != 11 {
		t.Errorf("ReadIDs after reopen = %v, want [10 11]", got)
	}
	if second.Preferences()["promo"] {
		t.Error("promo preference lost across reopen")
	}
	if !second.PushEnabled() {
		t.Error("push flag lost across reopen")
	}
	if second.DeviceID() != deviceID {
		t.Errorf("DeviceID changed across reopen: %s vs %s", second.DeviceID(), deviceID)
	}
}

func TestFileStoreMissingFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore on missing file: %v", err)
	}
	if s.DeviceID() == "" {
		t.Error("fresh file store has no device ID")
	}
	if len(s.ReadIDs()) != 0 {
		t.Error("fresh file store has read IDs")
	}
}
