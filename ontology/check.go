package ontology

import "fmt"

// IssueKind classifies a dataset consistency finding.
type IssueKind int

const (
	// IssueMalformed is a record that failed validation and was skipped while decoding.
	IssueMalformed IssueKind = iota
	// IssueUnresolvedEdge is an edge with an endpoint label that matches no node. It is dropped from the scene.
	IssueUnresolvedEdge
	// IssueUnknownCategory is a node whose category has no style. It renders with the default style at the origin cluster.
	IssueUnknownCategory
	// IssueDuplicateLabel is a label carried by more than one node. Edges bind to the first of them.
	IssueDuplicateLabel
)

func (k IssueKind) String() string {
	switch k {
	case IssueMalformed:
		return "malformed"
	case IssueUnresolvedEdge:
		return "unresolved-edge"
	case IssueUnknownCategory:
		return "unknown-category"
	case IssueDuplicateLabel:
		return "duplicate-label"
	default:
		return fmt.Sprintf("issue(%d)", int(k))
	}
}

// Issue is one finding about a dataset.
type Issue struct {
	Kind    IssueKind
	Subject string
	Detail  string
}

func (i Issue) String() string {
	if i.Detail == "" {
		return fmt.Sprintf("%s: %s", i.Kind, i.Subject)
	}
	return fmt.Sprintf("%s: %s (%s)", i.Kind, i.Subject, i.Detail)
}

// Report collects dataset findings. None of them are fatal.
type Report struct {
	Issues []Issue
}

func (r *Report) add(kind IssueKind, subject, detail string) {
	r.Issues = append(r.Issues, Issue{Kind: kind, Subject: subject, Detail: detail})
}

// Count returns how many issues of the given kind were found.
func (r Report) Count(kind IssueKind) int {
	n := 0
	for _, i := range r.Issues {
		if i.Kind == kind {
			n++
		}
	}
	return n
}

// Empty reports whether no issues were found.
func (r Report) Empty() bool { return len(r.Issues) == 0 }

// Check inspects a dataset for the conditions the scene builder tolerates silently:
// unresolved edges, unknown categories and duplicate labels.
//
// Parameters:
//   - d: the dataset to inspect
//
// Returns:
//   - Report: the findings, in node then edge order
func Check(d *Dataset) Report {
	var report Report
	seen := make(map[string]int, len(d.Nodes))
	for _, n := range d.Nodes {
		seen[n.Label]++
		if seen[n.Label] == 2 {
			report.add(IssueDuplicateLabel, n.Label, "edges bind to the first node with this label")
		}
		if _, ok := d.Category(n.Category); !ok {
			report.add(IssueUnknownCategory, n.Label, fmt.Sprintf("category %q", n.Category))
		}
	}
	for _, e := range d.Edges {
		var missing []string
		for _, l := range []string{e.From, e.To} {
			if seen[l] == 0 {
				missing = append(missing, fmt.Sprintf("%q", l))
			}
		}
		if len(missing) > 0 {
			report.add(IssueUnresolvedEdge, fmt.Sprintf("%s -> %s", e.From, e.To), fmt.Sprintf("missing %v", missing))
		}
	}
	return report
}
