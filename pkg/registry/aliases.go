package registry

import (
	"github.com/rs/zerolog"

	"github.com/weblayers/weblayers/pkg/logging"
)

// aliasTable accumulates alias registrations for one resolution pass.
// First registration wins; later attempts for the same key are dropped
// with a warning, never overwritten. The table is owned by the resolver
// for the duration of one pass, so repeated passes stay independent.
type aliasTable struct {
	entries map[string]string
	keys    []string
	logger  zerolog.Logger
}

func newAliasTable() *aliasTable {
	return &aliasTable{
		entries: make(map[string]string),
		logger:  logging.GetLogger("registry.aliases"),
	}
}

// register attempts to bind key to path. Returns false when the key was
// already taken.
func (t *aliasTable) register(key, path string) bool {
	if key == "" {
		return false
	}
	if existing, taken := t.entries[key]; taken {
		if existing == path {
			return false
		}
		t.logger.Warn().
			Str("alias", key).
			Str("kept", existing).
			Str("dropped", path).
			Msg("Alias key already registered, keeping first")
		return false
	}
	t.entries[key] = path
	t.keys = append(t.keys, key)
	return true
}

// snapshot returns the final alias map.
func (t *aliasTable) snapshot() map[string]string {
	out := make(map[string]string, len(t.entries))
	for k, v := range t.entries {
		out[k] = v
	}
	return out
}
