package engine

import (
	"log"
	"slices"

	"fauna-warden/internal/roster"
	"fauna-warden/internal/territory"
)

// Planner runs placement passes over a single territory. The territory map
// is injected at construction and never mutated.
type Planner struct {
	tmap *territory.Map
}

// NewPlanner returns a planner bound to the given territory map.
func NewPlanner(tmap *territory.Map) *Planner {
	return &Planner{tmap: tmap}
}

// Baseline returns the pre-placement view of a roster: every animal still
// sitting in the territory's default state.
func (p *Planner) Baseline(animals []roster.Animal) *Plan {
	plan := &Plan{
		Territory:   p.tmap.Name,
		Assignments: make([]Assignment, len(animals)),
		Occupied:    map[string]string{},
		Total:       len(animals),
	}
	for i, a := range animals {
		plan.Assignments[i] = Assignment{Name: a.Name, Habitat: a.Habitat, Threat: a.Threat, State: p.tmap.Default}
	}
	return plan
}

// Plan walks the roster once, in input order, and greedily gives each animal
// the first state in the territory's candidate order that passes every
// safety check. A state already claimed is skipped outright. A candidate
// fails when the animal's threat currently sits on it, when the threat sits
// on a state the candidate borders, or when an already-settled neighbor
// names this animal as its own threat. Animals that exhaust every candidate
// stay in the default state; that is a normal outcome, not a failure.
// Placements are permanent within a pass, a later animal never displaces an
// earlier one.
func (p *Planner) Plan(animals []roster.Animal) *Plan {
	current := make([]string, len(animals))
	for i := range current {
		current[i] = p.tmap.Default
	}

	// First occurrence wins for every name lookup: resolving an animal's
	// threat and resolving a neighbor's occupant both go through this index.
	byName := make(map[string]int, len(animals))
	for i, a := range animals {
		if _, ok := byName[a.Name]; !ok {
			byName[a.Name] = i
		}
	}

	occupied := make(map[string]string)

	for i, a := range animals {
		// The threat may appear anywhere in the roster, including after
		// this animal or as the animal itself. One not yet placed still
		// sits in the default state and blocks nothing.
		threatIdx := -1
		if idx, ok := byName[a.Threat]; ok {
			threatIdx = idx
		}

		for _, candidate := range p.tmap.Order {
			if _, taken := occupied[candidate]; taken {
				continue
			}
			if threatIdx >= 0 {
				threatLoc := current[threatIdx]
				if threatLoc == candidate {
					continue
				}
				if slices.Contains(p.tmap.AdjacentTo(candidate), threatLoc) {
					continue
				}
			}
			if p.threatensNeighbor(a.Name, candidate, occupied, byName, animals) {
				continue
			}
			current[i] = candidate
			occupied[candidate] = a.Name
			break
		}
	}

	plan := &Plan{
		Territory:   p.tmap.Name,
		Assignments: make([]Assignment, len(animals)),
		Occupied:    occupied,
		Total:       len(animals),
	}
	for i, a := range animals {
		moved := current[i] != p.tmap.Default
		plan.Assignments[i] = Assignment{
			Name:    a.Name,
			Habitat: a.Habitat,
			Threat:  a.Threat,
			State:   current[i],
			Moved:   moved,
		}
		if moved {
			plan.Relocated++
		}
	}

	log.Printf("[Plan] Relocated %d/%d animals in %s", plan.Relocated, plan.Total, p.tmap.Name)
	return plan
}

// threatensNeighbor reports whether settling name on candidate would put it
// next to an already-placed animal that lists name as its threat.
func (p *Planner) threatensNeighbor(name, candidate string, occupied map[string]string, byName map[string]int, animals []roster.Animal) bool {
	for _, neighbor := range p.tmap.AdjacentTo(candidate) {
		occupant, ok := occupied[neighbor]
		if !ok {
			continue
		}
		idx, ok := byName[occupant]
		if !ok {
			continue
		}
		if animals[idx].Threat == name {
			return true
		}
	}
	return false
}
