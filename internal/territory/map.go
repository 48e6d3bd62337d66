package territory

import (
	"fmt"
	"strings"
)

// Map describes a territory: the states animals can be placed in, the fixed
// order in which states are tried during planning, and which states border
// each other. The adjacency is stored exactly as configured (directed) and is
// never auto-symmetrized.
type Map struct {
	Name     string              `yaml:"name" json:"name"`
	Default  string              `yaml:"default" json:"default"`
	Order    []string            `yaml:"order" json:"order"`
	Adjacent map[string][]string `yaml:"adjacent" json:"adjacent"`
}

// AdjacentTo returns the states bordering the given state. Unknown states
// have no neighbors.
func (m *Map) AdjacentTo(state string) []string {
	return m.Adjacent[state]
}

// Contains reports whether state is a placement state or the default.
func (m *Map) Contains(state string) bool {
	if state == m.Default {
		return true
	}
	_, ok := m.Adjacent[state]
	return ok
}

// Validate checks the map for the structural problems that would make a
// planning pass ill-defined.
func (m *Map) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("territory: map has no name")
	}
	if strings.TrimSpace(m.Default) == "" {
		return fmt.Errorf("territory: %s has no default state", m.Name)
	}
	if len(m.Order) == 0 {
		return fmt.Errorf("territory: %s has an empty state order", m.Name)
	}
	seen := make(map[string]bool, len(m.Order))
	for _, state := range m.Order {
		if state == m.Default {
			return fmt.Errorf("territory: %s lists the default state %s in its order", m.Name, state)
		}
		if seen[state] {
			return fmt.Errorf("territory: %s lists %s twice in its order", m.Name, state)
		}
		seen[state] = true
		if _, ok := m.Adjacent[state]; !ok {
			return fmt.Errorf("territory: %s has no adjacency entry for %s", m.Name, state)
		}
	}
	if _, ok := m.Adjacent[m.Default]; ok {
		return fmt.Errorf("territory: %s places the default state %s in the adjacency graph", m.Name, m.Default)
	}
	for state, neighbors := range m.Adjacent {
		for _, n := range neighbors {
			if n == m.Default {
				return fmt.Errorf("territory: %s lists the default state as a neighbor of %s", m.Name, state)
			}
			if !m.Contains(n) {
				return fmt.Errorf("territory: %s: %s borders unknown state %s", m.Name, state, n)
			}
		}
	}
	return nil
}

// ReachableFrom walks the directed adjacency from start and returns every
// state it can reach, mapped to its hop distance (start included at 0).
// Display helper only; planning never consults it.
func (m *Map) ReachableFrom(start string) map[string]int {
	result := make(map[string]int)
	result[start] = 0

	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		dist := result[current]
		for _, neighbor := range m.Adjacent[current] {
			if _, visited := result[neighbor]; !visited {
				result[neighbor] = dist + 1
				queue = append(queue, neighbor)
			}
		}
	}
	return result
}
