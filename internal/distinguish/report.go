package distinguish

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// MemberSummary holds the invariants of one member.
type MemberSummary struct {
	Name       string     `json:"name"`
	Invariants Invariants `json:"invariants"`
}

// ContainerSummary holds every member of one container.
type ContainerSummary struct {
	Name       string          `json:"name"`
	Consistent bool            `json:"consistent"`
	Members    []MemberSummary `json:"members"`
}

// Match is a pair of containers whose invariants all agree.
type Match struct {
	A string `json:"a"`
	B string `json:"b"`
}

// Report is the outcome of Run.
type Report struct {
	RunID          string             `json:"run_id"`
	RMax           int                `json:"rmax"`
	Triangulations int                `json:"triangulations"`
	Containers     []ContainerSummary `json:"containers"`
	Disagreements  []string           `json:"disagreements"`
	Matches        []Match            `json:"matches"`
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	out := *r
	if out.Disagreements == nil {
		out.Disagreements = []string{}
	}
	if out.Matches == nil {
		out.Matches = []Match{}
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// WriteText writes the report for people: the disagreeing containers with
// every member's invariants, then the matching pairs.
func (r *Report) WriteText(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Run %s: %d containers, %d triangulations, r <= %d\n",
		r.RunID, len(r.Containers), r.Triangulations, r.RMax)

	sb.WriteString("\nInconsistent containers:\n")
	if len(r.Disagreements) == 0 {
		sb.WriteString("  none\n")
	}
	for _, c := range r.Containers {
		if c.Consistent {
			continue
		}
		fmt.Fprintf(&sb, "  %s\n", c.Name)
		for _, m := range c.Members {
			fmt.Fprintf(&sb, "    %s: %s\n", m.Name, m.Invariants.text())
		}
	}

	sb.WriteString("\nCandidate duplicates:\n")
	if len(r.Matches) == 0 {
		sb.WriteString("  none\n")
	}
	for _, m := range r.Matches {
		fmt.Fprintf(&sb, "  %s == %s\n", m.A, m.B)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func (inv Invariants) text() string {
	var sb strings.Builder
	sb.WriteString("H1 = ")
	sb.WriteString(inv.H1s)
	sb.WriteString(", H2(Z_2) rank ")
	sb.WriteString(strconv.Itoa(inv.H2Z2))
	for _, v := range inv.TV {
		fmt.Fprintf(&sb, ", TV(%d,%d) = %.6g", v.R, v.Root, v.Value)
	}
	return sb.String()
}
