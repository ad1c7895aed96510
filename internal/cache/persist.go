package cache

import (
	"encoding/hex"

	"github.com/openscad-lang/scadast/pkg/persist"
)

const snapshotBasename = "scadast-parse-cache"

// Snapshot is the on-disk representation of a ResultCache, keyed by the
// hex-encoded ContentHash since map keys must be JSON object members.
type Snapshot[T any] struct {
	Entries map[string]T `json:"entries"`
}

// SaveSnapshot persists the cache to dir using persist.JSONCodec, so that a
// later LoadSnapshot can restore it. No command in this module calls it.
func SaveSnapshot[T any](dir string, c *ResultCache[T]) error {
	c.mu.RLock()
	snap := Snapshot[T]{Entries: make(map[string]T, len(c.data))}

	for hash, val := range c.data {
		snap.Entries[hex.EncodeToString(hash[:])] = val
	}
	c.mu.RUnlock()

	p := persist.NewPersister[Snapshot[T]](snapshotBasename, persist.NewJSONCodec())

	return p.Save(dir, func() *Snapshot[T] { return &snap })
}

// LoadSnapshot restores a previously saved cache from dir. A missing or
// undecodable snapshot file is returned as an error and leaves the cache
// unchanged; entries whose key is not a hex-encoded ContentHash are skipped.
func LoadSnapshot[T any](dir string, c *ResultCache[T]) error {
	p := persist.NewPersister[Snapshot[T]](snapshotBasename, persist.NewJSONCodec())

	return p.Load(dir, func(snap *Snapshot[T]) {
		c.mu.Lock()
		defer c.mu.Unlock()

		for hexHash, val := range snap.Entries {
			raw, decodeErr := hex.DecodeString(hexHash)
			if decodeErr != nil || len(raw) != len(ContentHash{}) {
				continue
			}

			var hash ContentHash

			copy(hash[:], raw)
			c.data[hash] = val
		}
	})
}
