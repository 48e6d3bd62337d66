package territory

import (
	"reflect"
	"testing"
)

func validMap() *Map {
	return &Map{
		Name:    "australia",
		Default: "ACT",
		Order:   []string{"NSW", "QLD", "VIC", "TAS", "SA", "NT", "WA"},
		Adjacent: map[string][]string{
			"NSW": {"VIC", "SA", "QLD"},
			"QLD": {"NT", "SA", "NSW"},
			"VIC": {"SA", "NSW"},
			"TAS": {},
			"SA":  {"WA", "NT", "QLD", "NSW", "VIC"},
			"NT":  {"WA", "SA", "QLD"},
			"WA":  {"SA", "NT"},
		},
	}
}

func TestValidate_AcceptsWellFormedMap(t *testing.T) {
	if err := validMap().Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidate_RejectsBrokenMaps(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Map)
	}{
		{"blank name", func(m *Map) { m.Name = "  " }},
		{"no default", func(m *Map) { m.Default = "" }},
		{"empty order", func(m *Map) { m.Order = nil }},
		{"default listed in order", func(m *Map) { m.Order = append(m.Order, "ACT") }},
		{"duplicate order entry", func(m *Map) { m.Order = append(m.Order, "NSW") }},
		{"order entry without adjacency", func(m *Map) { m.Order = append(m.Order, "NZ") }},
		{"default in adjacency graph", func(m *Map) { m.Adjacent["ACT"] = nil }},
		{"default as a neighbor", func(m *Map) { m.Adjacent["TAS"] = []string{"ACT"} }},
		{"neighbor missing from graph", func(m *Map) { m.Adjacent["TAS"] = []string{"NZ"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMap()
			tt.mutate(m)
			if err := m.Validate(); err == nil {
				t.Fatal("Validate() = nil, want error")
			}
		})
	}
}

func TestAdjacentTo_UnknownStateHasNoNeighbors(t *testing.T) {
	m := validMap()
	if got := m.AdjacentTo("NZ"); len(got) != 0 {
		t.Fatalf("AdjacentTo(NZ) = %v, want empty", got)
	}
	// The default state is deliberately outside the graph.
	if got := m.AdjacentTo("ACT"); len(got) != 0 {
		t.Fatalf("AdjacentTo(ACT) = %v, want empty", got)
	}
}

func TestContains(t *testing.T) {
	m := validMap()
	for _, state := range []string{"ACT", "NSW", "TAS", "WA"} {
		if !m.Contains(state) {
			t.Errorf("Contains(%s) = false, want true", state)
		}
	}
	for _, state := range []string{"NZ", "", "nsw"} {
		if m.Contains(state) {
			t.Errorf("Contains(%q) = true, want false", state)
		}
	}
}

func TestReachableFrom_MainlandExcludesIsland(t *testing.T) {
	got := validMap().ReachableFrom("NSW")
	want := map[string]int{"NSW": 0, "VIC": 1, "SA": 1, "QLD": 1, "WA": 2, "NT": 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ReachableFrom(NSW) = %v, want %v", got, want)
	}
}

func TestReachableFrom_IslandReachesOnlyItself(t *testing.T) {
	got := validMap().ReachableFrom("TAS")
	if len(got) != 1 || got["TAS"] != 0 {
		t.Fatalf("ReachableFrom(TAS) = %v, want only TAS at 0", got)
	}
}
