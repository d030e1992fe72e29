package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]CategoryDefinition)
	keywords   = NewOrderedMap[[]string]()
	registryMu sync.RWMutex
)

// Register adds a category definition to the registry.
// Panics if a category with the same key is already registered, or if its
// leading digits overlap with an existing category.
func Register(def CategoryDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Key]; exists {
		panic(fmt.Sprintf("category already registered: %s", def.Key))
	}
	for _, other := range registry {
		for i := 0; i < len(def.LeadingDigits); i++ {
			if other.Owns(def.LeadingDigits[i : i+1]) {
				panic(fmt.Sprintf("category %s: leading digit %c already owned by %s",
					def.Key, def.LeadingDigits[i], other.Key))
			}
		}
	}

	registry[def.Key] = def
}

// RegisterKeywords adds a tag and its synonyms to the static keyword table.
// Tags keep their registration order in the output.
func RegisterKeywords(tag string, synonyms ...string) {
	registryMu.Lock()
	defer registryMu.Unlock()

	list := make([]string, len(synonyms))
	copy(list, synonyms)
	keywords.Set(tag, list)
}

// All returns all registered category definitions.
// Sorted by Order then by key, which is also the output order.
func All() []CategoryDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]CategoryDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sortDefinitions(result)
	return result
}

// Keywords returns a copy of the keyword table.
func Keywords() *OrderedMap[[]string] {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := NewOrderedMap[[]string]()
	keywords.Each(func(tag string, syn []string) {
		list := make([]string, len(syn))
		copy(list, syn)
		out.Set(tag, list)
	})
	return out
}

// CategoryCount returns the number of registered categories.
func CategoryCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

func sortDefinitions(defs []CategoryDefinition) {
	sort.SliceStable(defs, func(i, j int) bool {
		if defs[i].Order != defs[j].Order {
			return defs[i].Order < defs[j].Order
		}
		return defs[i].Key < defs[j].Key
	})
}
