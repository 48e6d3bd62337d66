package report

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"fauna-warden/internal/db"
	"fauna-warden/internal/engine"
	"fauna-warden/internal/territory"
)

var (
	nameStyle  = color.New(color.Bold)
	movedStyle = color.New(color.FgGreen)
	heldStyle  = color.New(color.FgYellow)
)

// Blocks renders one detail block per animal, in roster order:
//
//	koala
//	   Habitat : eucalypt forest
//	   Threat  : eagle
//	   State   : NSW
//
// Blocks are separated by a blank line. States are green once an animal has
// moved, yellow while it sits in the default state.
func Blocks(plan *engine.Plan) string {
	var b strings.Builder
	for i, a := range plan.Assignments {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\n", nameStyle.Sprint(a.Name))
		fmt.Fprintf(&b, "   Habitat : %s\n", a.Habitat)
		fmt.Fprintf(&b, "   Threat  : %s\n", a.Threat)
		fmt.Fprintf(&b, "   State   : %s\n", stateStyle(a).Sprint(a.State))
	}
	return b.String()
}

// Summary renders one "name: state" line per animal.
func Summary(plan *engine.Plan) string {
	var b strings.Builder
	for _, a := range plan.Assignments {
		fmt.Fprintf(&b, "%s: %s\n", a.Name, stateStyle(a).Sprint(a.State))
	}
	return b.String()
}

func stateStyle(a engine.Assignment) *color.Color {
	if a.Moved {
		return movedStyle
	}
	return heldStyle
}

// History renders saved runs as an aligned table, newest first.
func History(records []db.RunRecord) string {
	if len(records) == 0 {
		return "No saved runs.\n"
	}
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tTERRITORY\tSOURCE\tMOVED\tTOOK")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d/%d\t%dms\n",
			shortID(r.ID), formatWhen(r.CreatedAt), r.Territory, r.Source, r.Relocated, r.Total, r.DurationMs)
	}
	w.Flush()
	return b.String()
}

// Territory renders a territory map: its placement order, each state's
// borders, and how much of it is reachable from the first state.
func Territory(m *territory.Map) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (default %s)\n", nameStyle.Sprint(m.Name), m.Default)
	for _, state := range m.Order {
		neighbors := m.AdjacentTo(state)
		if len(neighbors) == 0 {
			fmt.Fprintf(&b, "   %-4s borders nothing\n", state)
			continue
		}
		fmt.Fprintf(&b, "   %-4s borders %s\n", state, strings.Join(neighbors, ", "))
	}
	if len(m.Order) > 0 {
		reached := m.ReachableFrom(m.Order[0])
		fmt.Fprintf(&b, "Connected: %d of %d states reachable from %s\n", len(reached), len(m.Order), m.Order[0])
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatWhen(stamp string) string {
	t, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return stamp
	}
	return t.Format("2006-01-02 15:04")
}
