// Package codec centralizes coordinate encoding.
//
// Codec selection is a compatibility boundary: persisted bytes created with
// one codec only decode with the same codec. Snapshots and catalog items
// therefore record the codec name next to the payload and look the codec up
// again with ByName when reading.
package codec

import (
	"fmt"
	"slices"
	"sync"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	// Name is stored next to encoded bytes and must never change.
	Name() string
}

// Default is the codec used for newly written snapshots, catalog items and
// topology files. Existing data keeps decoding with the codec it names.
var Default Codec = GoJSON{}

var (
	registryMu sync.RWMutex
	registry   = map[string]Codec{
		JSON{}.Name():    JSON{},
		GoJSON{}.Name():  GoJSON{},
		Msgpack{}.Name(): Msgpack{},
	}
)

// Register makes c available to ByName. Registering a second codec under a
// taken name fails, since data written with the first would no longer decode.
func Register(c Codec) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := registry[c.Name()]; ok {
		return fmt.Errorf("codec: %q already registered", c.Name())
	}
	registry[c.Name()] = c
	return nil
}

// ByName returns the codec registered under name.
func ByName(name string) (Codec, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	c, ok := registry[name]
	return c, ok
}

// Names returns the registered codec names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// MustMarshal encodes v with c, or Default if c is nil, and panics on error.
// Meant for tests and fixed inputs.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s: %w", c.Name(), err))
	}
	return b
}
