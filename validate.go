package solv

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity classifies how serious a finding is.
type Severity uint8

const (
	// SeverityInfo marks inconsistencies that are removable junk rather
	// than breakage, such as configuration entries for a project that was
	// deleted from the solution.
	SeverityInfo Severity = iota
	// SeverityError marks structural breakage.
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", uint8(s))
	}
}

// MarshalJSON serializes the severity by its name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Kind identifies which check produced a finding.
type Kind string

const (
	// KindReferenceIntegrity reports a GUID referenced by a configuration
	// or nesting entry that matches no declared project.
	KindReferenceIntegrity Kind = "reference-integrity"
	// KindNestingCycle reports a cycle in the solution folder nesting.
	KindNestingCycle Kind = "nesting-cycle"
	// KindOrphanedFolder reports a nesting parent that matches no
	// declared project.
	KindOrphanedFolder Kind = "orphaned-folder"
	// KindConfigurationCompleteness reports a project configuration mapped
	// from a solution configuration the solution never declares.
	KindConfigurationCompleteness Kind = "configuration-completeness"
	// KindDuplicateIdentity reports a project GUID declared by more than
	// one project.
	KindDuplicateIdentity Kind = "duplicate-identity"
)

// Finding is one structural inconsistency found in a model. Findings are the
// validator's product, never an error path: a solution with findings still
// has a fully formed model.
type Finding struct {
	Severity Severity `json:"severity"`
	Kind     Kind     `json:"kind"`
	// Message is a human-readable diagnostic that needs no re-parse to
	// render.
	Message string `json:"message"`
	// Guid is the offending GUID, when one identifies the finding.
	Guid string `json:"guid,omitempty"`
	// Section is the section the offending entry came from.
	Section string `json:"section,omitempty"`
	// Project is the declared name of the project involved, where one
	// resolves.
	Project string `json:"project,omitempty"`
}

// Validate runs the structural checks over a built model and returns the
// findings in check order. All checks run; none short-circuits another. A
// structurally sound solution yields no findings.
func Validate(s *Solution) []Finding {
	declared := declaredProjects(s)
	var findings []Finding
	findings = append(findings, checkReferences(s, declared)...)
	findings = append(findings, checkNestingCycles(s)...)
	findings = append(findings, checkOrphanedFolders(s, declared)...)
	findings = append(findings, checkConfigurations(s)...)
	findings = append(findings, checkDuplicateIdentity(s)...)
	return findings
}

// declaredProjects indexes the declared projects by uppercased GUID. GUID
// comparison is case-insensitive everywhere; solution files are not
// consistent about hex case.
func declaredProjects(s *Solution) map[string]bool {
	declared := make(map[string]bool, len(s.Projects))
	for i := range s.Projects {
		declared[strings.ToUpper(s.Projects[i].ID)] = true
	}
	return declared
}

// checkReferences verifies that every GUID keying a project configuration
// group and every nesting child matches a declared project. One finding is
// produced per unmatched GUID per section.
func checkReferences(s *Solution, declared map[string]bool) []Finding {
	var findings []Finding
	for _, g := range s.configured {
		if declared[strings.ToUpper(g.id)] {
			continue
		}
		findings = append(findings, Finding{
			Severity: SeverityInfo,
			Kind:     KindReferenceIntegrity,
			Message:  fmt.Sprintf("configuration entries reference undeclared project %s", g.id),
			Guid:     g.id,
			Section:  g.section,
		})
	}
	seen := map[string]bool{}
	for _, n := range s.NestedProjects {
		child := strings.ToUpper(n.Child)
		if declared[child] || seen[child] {
			continue
		}
		seen[child] = true
		findings = append(findings, Finding{
			Severity: SeverityInfo,
			Kind:     KindReferenceIntegrity,
			Message:  fmt.Sprintf("nesting references undeclared project %s", n.Child),
			Guid:     n.Child,
			Section:  sectionNestedProjects,
		})
	}
	return findings
}

// checkNestingCycles finds cycles in the child-to-parent nesting relation.
// Each node has at most one parent, so following parents from every node
// visits each edge once; the walk is iterative and colors nodes to stay
// linear and to terminate on self-loops and arbitrarily long chains alike.
func checkNestingCycles(s *Solution) []Finding {
	parents := make(map[string]string, len(s.NestedProjects))
	order := make([]string, 0, len(s.NestedProjects))
	for _, n := range s.NestedProjects {
		child := strings.ToUpper(n.Child)
		if _, ok := parents[child]; !ok {
			order = append(order, child)
		}
		parents[child] = strings.ToUpper(n.Parent)
	}

	const (
		white = iota // not yet visited
		gray         // on the walk currently in progress
		black        // fully explored, known cycle-free or already reported
	)
	color := map[string]int{}
	var findings []Finding
	for _, start := range order {
		if color[start] != white {
			continue
		}
		var path []string
		node := start
		for color[node] == white {
			color[node] = gray
			path = append(path, node)
			parent, ok := parents[node]
			if !ok {
				break
			}
			node = parent
		}
		if color[node] == gray {
			// node is on the current path, so everything from its
			// first occurrence onward is the cycle.
			i := 0
			for path[i] != node {
				i++
			}
			cycle := path[i:]
			findings = append(findings, Finding{
				Severity: SeverityError,
				Kind:     KindNestingCycle,
				Message: fmt.Sprintf("project nesting forms a cycle: %s -> %s",
					strings.Join(cycle, " -> "), cycle[0]),
				Guid:    cycle[0],
				Section: sectionNestedProjects,
			})
		}
		for _, n := range path {
			color[n] = black
		}
	}
	return findings
}

// checkOrphanedFolders verifies that every nesting parent is a declared
// project. Parents are normally solution folders, but any declared project
// GUID satisfies the reference.
func checkOrphanedFolders(s *Solution, declared map[string]bool) []Finding {
	var findings []Finding
	seen := map[string]bool{}
	for _, n := range s.NestedProjects {
		parent := strings.ToUpper(n.Parent)
		if declared[parent] || seen[parent] {
			continue
		}
		seen[parent] = true
		findings = append(findings, Finding{
			Severity: SeverityError,
			Kind:     KindOrphanedFolder,
			Message:  fmt.Sprintf("nesting references undeclared parent folder %s", n.Parent),
			Guid:     n.Parent,
			Section:  sectionNestedProjects,
		})
	}
	return findings
}

// checkConfigurations verifies that every project configuration maps from a
// solution configuration name the solution declares. Names alone are
// compared: format version 8 solutions declare platforms only on the project
// side.
func checkConfigurations(s *Solution) []Finding {
	names := make(map[string]bool, len(s.Configurations))
	for _, c := range s.Configurations {
		names[c.Configuration] = true
	}
	var findings []Finding
	for i := range s.Projects {
		p := &s.Projects[i]
		for _, pc := range p.Configurations {
			if names[pc.SolutionConfiguration] {
				continue
			}
			findings = append(findings, Finding{
				Severity: SeverityError,
				Kind:     KindConfigurationCompleteness,
				Message: fmt.Sprintf("configuration %s|%s maps from undeclared solution configuration %q",
					pc.Configuration, pc.Platform, pc.SolutionConfiguration),
				Guid:    p.ID,
				Project: p.Name,
			})
		}
	}
	return findings
}

// checkDuplicateIdentity reports project GUIDs declared by more than one
// project. Both declarations stay in the model; every GUID-keyed lookup
// above is ambiguous for them.
func checkDuplicateIdentity(s *Solution) []Finding {
	byID := map[string][]string{}
	order := []string{}
	for i := range s.Projects {
		id := strings.ToUpper(s.Projects[i].ID)
		if _, ok := byID[id]; !ok {
			order = append(order, id)
		}
		byID[id] = append(byID[id], s.Projects[i].Name)
	}
	var findings []Finding
	for _, id := range order {
		names := byID[id]
		if len(names) < 2 {
			continue
		}
		findings = append(findings, Finding{
			Severity: SeverityError,
			Kind:     KindDuplicateIdentity,
			Message: fmt.Sprintf("project GUID %s declared by %d projects: %s",
				id, len(names), strings.Join(names, ", ")),
			Guid:    id,
			Project: names[0],
		})
	}
	return findings
}
