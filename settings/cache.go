package settings

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

// cachedSnapshot is the on-disk shape persisted to badger: the full
// resolved value set plus the protocol version, so a cold start can
// reconstruct a Store without re-contacting the backing source.
type cachedSnapshot struct {
	Version Version           `json:"version"`
	Values  map[string]string `json:"values"`
}

const badgerSnapshotKey = "a2a:settings:snapshot"

// CachedStore wraps a backing Store with an embedded badger database that
// remembers the last successfully read snapshot. A transient failure of
// the backing source (a remote config service unreachable, a file
// temporarily missing) falls back to the cached snapshot instead of
// failing every call — the same resilience shape as the teacher's
// BadgerStore, repurposed here from KV storage to settings-snapshot
// caching rather than left unwired.
type CachedStore struct {
	backing Store
	db      *badger.DB

	mu       sync.RWMutex
	snapshot *cachedSnapshot
}

// NewCachedStore opens (or creates) a badger database at dir and wraps
// backing with it. If dir is empty, badger runs purely in memory — useful
// for tests that want the caching behavior without touching disk.
func NewCachedStore(backing Store, dir string) (*CachedStore, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("settings: failed to open cache database: %w", err)
	}

	cs := &CachedStore{backing: backing, db: db}
	cs.snapshot, _ = cs.loadCached()
	return cs, nil
}

func (cs *CachedStore) Close() error {
	return cs.db.Close()
}

// refresh pulls a fresh snapshot from the backing store and persists it.
// On failure it falls back to whatever snapshot is already cached.
func (cs *CachedStore) refresh() (*cachedSnapshot, error) {
	version := cs.backing.ProtocolVersion()
	values := make(map[string]string, 4)
	for _, key := range []string{KeyRemoteToSDKVerkey, KeySDKToRemoteVerkey, KeyAgencyVerkey, KeyRemoteToSDKDID} {
		v, err := cs.backing.Get(key)
		if err != nil {
			return cs.fallback(err)
		}
		values[key] = v
	}

	snap := &cachedSnapshot{Version: version, Values: values}
	if err := cs.store(snap); err != nil {
		return nil, fmt.Errorf("settings: failed to persist cache snapshot: %w", err)
	}

	cs.mu.Lock()
	cs.snapshot = snap
	cs.mu.Unlock()
	return snap, nil
}

func (cs *CachedStore) fallback(cause error) (*cachedSnapshot, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if cs.snapshot != nil {
		return cs.snapshot, nil
	}
	return nil, cause
}

func (cs *CachedStore) store(snap *cachedSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return cs.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(badgerSnapshotKey), data)
	})
}

func (cs *CachedStore) loadCached() (*cachedSnapshot, error) {
	var snap cachedSnapshot
	err := cs.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerSnapshotKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snap)
		})
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (cs *CachedStore) current() (*cachedSnapshot, error) {
	snap, err := cs.refresh()
	if err == nil {
		return snap, nil
	}

	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if cs.snapshot != nil {
		return cs.snapshot, nil
	}
	return nil, err
}

func (cs *CachedStore) ProtocolVersion() Version {
	snap, err := cs.current()
	if err != nil {
		return cs.backing.ProtocolVersion()
	}
	return snap.Version
}

func (cs *CachedStore) Get(key string) (string, error) {
	snap, err := cs.current()
	if err != nil {
		return "", err
	}
	value, ok := snap.Values[key]
	if !ok || value == "" {
		return "", &ErrKeyNotFound{Key: key}
	}
	return value, nil
}
