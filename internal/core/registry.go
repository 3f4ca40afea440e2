package core

import (
	"fmt"
	"sort"
	"sync"

	"github.com/JonMunkholm/salesdesk/internal/datatable"
)

var (
	registry   = make(map[string]ScreenDefinition)
	registryMu sync.RWMutex
)

// Register adds a screen definition to the registry.
// Panics if the definition is invalid or the key is already registered.
func Register(def ScreenDefinition) {
	if err := TryRegister(def); err != nil {
		panic(err.Error())
	}
}

// TryRegister is Register for definitions that come from user input, such as
// the YAML catalog.
func TryRegister(def ScreenDefinition) error {
	if def.Info.Key == "" {
		return fmt.Errorf("register screen: empty key")
	}
	if def.Info.Table == "" {
		return fmt.Errorf("register screen %s: empty table", def.Info.Key)
	}
	if _, err := datatable.NewRegistry(def.Columns); err != nil {
		return fmt.Errorf("register screen %s: %w", def.Info.Key, err)
	}
	if def.Info.Label == "" {
		def.Info.Label = def.Info.Key
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Info.Key]; exists {
		return fmt.Errorf("screen already registered: %s", def.Info.Key)
	}
	registry[def.Info.Key] = def
	return nil
}

// Get returns a screen definition by key.
func Get(key string) (ScreenDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// All returns every registered screen sorted by group, then key.
func All() []ScreenDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]ScreenDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Info.Group != result[j].Info.Group {
			return result[i].Info.Group < result[j].Info.Group
		}
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// ByGroup returns the screens of one group sorted by key.
func ByGroup(group string) []ScreenDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	var result []ScreenDefinition
	for _, def := range registry {
		if def.Info.Group == group {
			result = append(result, def)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// Groups returns all group names, sorted.
func Groups() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	seen := make(map[string]bool)
	for _, def := range registry {
		seen[def.Info.Group] = true
	}

	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}

	sort.Strings(groups)
	return groups
}

// ScreenCount returns the number of registered screens.
func ScreenCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered screens. Tests use it to start clean.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]ScreenDefinition)
}
