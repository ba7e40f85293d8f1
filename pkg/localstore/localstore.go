// Package localstore is the device-local state a notification center
// instance owns: the anonymous read-ID set, per-type display
// preferences, and the push opt-in flag. It stands in for browser
// localStorage behind a narrow interface so the center can be tested
// without any storage shim.
package localstore

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/google/uuid"
)

// Preferences maps a notification type to whether the user wants to see
// it. Types absent from the map default to enabled.
type Preferences map[string]bool

// Store is device-local persisted state.
type Store interface {
	ReadIDs() []uint
	AddReadIDs(ids ...uint)
	ClearReadIDs()

	Preferences() Preferences
	SetPreference(notifType string, enabled bool)

	PushEnabled() bool
	SetPushEnabled(enabled bool)

	// DeviceID is a stable anonymous identity for this store.
	DeviceID() string
}

type state struct {
	DeviceID    string      `json:"device_id"`
	ReadIDs     []uint      `json:"read_ids"`
	Preferences Preferences `json:"preferences"`
	PushEnabled bool        `json:"push_enabled"`
}

// MemoryStore keeps everything in process memory. Suitable for tests and
// for embedding in short-lived clients.
type MemoryStore struct {
	mu sync.RWMutex
	s  state
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{s: state{
		DeviceID:    uuid.NewString(),
		Preferences: Preferences{},
	}}
}

func (m *MemoryStore) ReadIDs() []uint {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]uint, len(m.s.ReadIDs))
	copy(out, m.s.ReadIDs)
	return out
}

func (m *MemoryStore) AddReadIDs(ids ...uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[uint]struct{}, len(m.s.ReadIDs))
	for _, id := range m.s.ReadIDs {
		seen[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			m.s.ReadIDs = append(m.s.ReadIDs, id)
			seen[id] = struct{}{}
		}
	}
}

func (m *MemoryStore) ClearReadIDs() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s.ReadIDs = nil
}

func (m *MemoryStore) Preferences() Preferences {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(Preferences, len(m.s.Preferences))
	for k, v := range m.s.Preferences {
		out[k] = v
	}
	return out
}

func (m *MemoryStore) SetPreference(notifType string, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s.Preferences[notifType] = enabled
}

func (m *MemoryStore) PushEnabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.s.PushEnabled
}

func (m *MemoryStore) SetPushEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s.PushEnabled = enabled
}

func (m *MemoryStore) DeviceID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.s.DeviceID
}

// FileStore persists the same state as a JSON file, written through on
// every mutation.
type FileStore struct {
	mem  *MemoryStore
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	fs := &FileStore{mem: NewMemoryStore(), path: path}
	data, err := os.ReadFile(path)
	if err == nil {
		var s state
		if jsonErr := json.Unmarshal(data, &s); jsonErr == nil {
			if s.DeviceID == "" {
				s.DeviceID = uuid.NewString()
			}
			if s.Preferences == nil {
				s.Preferences = Preferences{}
			}
			fs.mem.s = s
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	return fs, nil
}

func (f *FileStore) flush() {
	f.mem.mu.RLock()
	data, err := json.MarshalIndent(f.mem.s, "", "  ")
	f.mem.mu.RUnlock()
	if err != nil {
		return
	}
	_ = os.WriteFile(f.path, data, 0o600)
}

func (f *FileStore) ReadIDs() []uint          { return f.mem.ReadIDs() }
func (f *FileStore) AddReadIDs(ids ...uint)   { f.mem.AddReadIDs(ids...); f.flush() }
func (f *FileStore) ClearReadIDs()            { f.mem.ClearReadIDs(); f.flush() }
func (f *FileStore) Preferences() Preferences { return f.mem.Preferences() }
func (f *FileStore) SetPreference(t string, e bool) {
	f.mem.SetPreference(t, e)
	f.flush()
}
func (f *FileStore) PushEnabled() bool { return f.mem.PushEnabled() }
func (f *FileStore) SetPushEnabled(enabled bool) {
	f.mem.SetPushEnabled(enabled)
	f.flush()
}
func (f *FileStore) DeviceID() string { return f.mem.DeviceID() }
