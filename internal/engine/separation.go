package engine

// Separation reports how far an animal landed from the animal it fears.
// Hops counts border crossings along the territory graph between the two
// states; -1 means no connecting path.
type Separation struct {
	Name        string `json:"name"`
	State       string `json:"state"`
	Threat      string `json:"threat"`
	ThreatState string `json:"threat_state"`
	Hops        int    `json:"hops"`
}

// Separations measures, after a pass, the distance between each relocated
// animal and its threat. Only pairs where both ended up on real states can
// be measured; everything else is left out, as is an animal that names
// itself. Purely informational, the pass never reads distances.
func (p *Planner) Separations(plan *Plan) []Separation {
	var out []Separation
	for _, a := range plan.Assignments {
		if !a.Moved || a.Threat == "" || a.Threat == a.Name {
			continue
		}
		threatState, ok := plan.StateOf(a.Threat)
		if !ok || threatState == p.tmap.Default {
			continue
		}
		out = append(out, Separation{
			Name:        a.Name,
			State:       a.State,
			Threat:      a.Threat,
			ThreatState: threatState,
			Hops:        p.tmap.Distance(a.State, threatState),
		})
	}
	return out
}

// MinSeparation returns the tightest measured distance in seps, skipping
// disconnected pairs. The bool result is false when nothing was measurable.
func MinSeparation(seps []Separation) (int, bool) {
	min := -1
	for _, s := range seps {
		if s.Hops < 0 {
			continue
		}
		if min < 0 || s.Hops < min {
			min = s.Hops
		}
	}
	return min, min >= 0
}
