// Package registry provides a global registry of collision policies.
// Policies register themselves by name so hosts and config files can select
// one without hardcoding the physics package's functions.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// DefaultPolicy is used when configuration leaves the policy empty.
const DefaultPolicy = "min-overlap"

// PolicyInfo contains metadata about a registered policy.
type PolicyInfo struct {
	Name        string
	Description string
}

type entry struct {
	policy      physics.Policy
	description string
}

var (
	policies = make(map[string]entry)
	mu       sync.RWMutex
)

// Register adds a named policy.
// Panics if a policy with the same name is already registered.
func Register(name, description string, p physics.Policy) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := policies[name]; exists {
		panic(fmt.Sprintf("registry: policy %q already registered", name))
	}
	policies[name] = entry{policy: p, description: description}
}

// List returns information about all registered policies, sorted by name.
func List() []PolicyInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PolicyInfo, 0, len(policies))
	for name, e := range policies {
		result = append(result, PolicyInfo{Name: name, Description: e.description})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Lookup returns the policy registered under name. The empty name selects
// DefaultPolicy.
func Lookup(name string) (physics.Policy, error) {
	if name == "" {
		name = DefaultPolicy
	}

	mu.RLock()
	defer mu.RUnlock()

	e, ok := policies[name]
	if !ok {
		return nil, fmt.Errorf("registry: unknown policy %q", name)
	}
	return e.policy, nil
}

// Exists checks if a policy with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := policies[name]
	return ok
}

func init() {
	Register("min-overlap", "resolve along the axis with the smaller penetration", physics.MinOverlap)
	Register("edge-distance", "resolve through the platform face with the smallest edge crossing", physics.MinEdgeDistance)
}
