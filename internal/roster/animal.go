package roster

// Animal is one entry from a relocation roster. Animals are immutable once
// parsed; the state an animal ends up in lives in the planning result, not
// here.
type Animal struct {
	Name    string `json:"name"`
	Habitat string `json:"habitat"`
	Threat  string `json:"threat"`
}
