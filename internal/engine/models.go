package engine

// Assignment is the planned outcome for a single animal. Roster fields are
// carried forward so a plan is self-contained.
type Assignment struct {
	Name    string `json:"name"`
	Habitat string `json:"habitat"`
	Threat  string `json:"threat"`
	State   string `json:"state"`
	Moved   bool   `json:"moved"`
}

// Plan is the result of one planning pass over a roster. Assignments keep
// the roster's input order; Occupied maps each claimed state to the name of
// the animal holding it.
type Plan struct {
	Territory   string            `json:"territory"`
	Assignments []Assignment      `json:"assignments"`
	Occupied    map[string]string `json:"occupied"`
	Relocated   int               `json:"relocated"`
	Total       int               `json:"total"`
}

// StateOf returns the state assigned to the first animal with the given
// name. The second result is false when no such animal is in the plan.
func (p *Plan) StateOf(name string) (string, bool) {
	for _, a := range p.Assignments {
		if a.Name == name {
			return a.State, true
		}
	}
	return "", false
}
