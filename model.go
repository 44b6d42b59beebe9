package solv

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Solution is the normalized model of one parsed solution file. It is built
// once per parse and never mutated afterwards; Validate only reads it.
//
// The JSON field names form a compatibility surface consumed by downstream
// tooling and must not change.
type Solution struct {
	// Path is the file the solution was parsed from, empty when parsed
	// from an in-memory string.
	Path string `json:"path"`
	// Format is the declared format version from the banner line.
	Format string `json:"format"`
	// Product is the product banner taken from the last comment line,
	// e.g. "Visual Studio Version 17".
	Product string `json:"product"`
	// Versions holds the name/value version lines in declaration order.
	Versions []Version `json:"versions"`
	// Projects holds the declared projects in declaration order, solution
	// folders included.
	Projects []Project `json:"projects"`
	// Configurations is the sorted set of solution-wide configuration and
	// platform pairs.
	Configurations []Configuration `json:"configurations"`

	// NestedProjects is the child-to-parent solution folder relation from
	// the NestedProjects global section, in declaration order. It is
	// cross-cutting rather than per-project and is not serialized.
	NestedProjects []Nesting `json:"-"`

	// configured records each distinct project GUID that keyed entries in
	// a project configuration section, with the section that declared it.
	// Dangling GUIDs have no Project to carry their configurations, so
	// reference checking needs this list rather than Projects.
	configured []configuredGroup
}

// Version is one of the version lines following the banner, e.g.
//
//	VisualStudioVersion = 15.0.26403.0
type Version struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Project is one declared project, including solution folder
// pseudo-projects.
type Project struct {
	// TypeID is the project type GUID, braces included.
	TypeID string `json:"type_id"`
	// TypeDescription is the human-readable project kind; unknown type
	// GUIDs fall back to the raw GUID.
	TypeDescription string `json:"type_description"`
	// ID is the project GUID, the identity all cross-references key on.
	ID string `json:"id"`
	// Name is the declared project name.
	Name string `json:"name"`
	// PathOrURI locates the project file; web site projects use a URI.
	PathOrURI string `json:"path_or_uri"`
	// Configurations is the sorted set of this project's configuration
	// mappings, absent when the solution declares none for it.
	Configurations []ProjectConfiguration `json:"configurations,omitempty"`
	// Items lists the files of a ProjectSection(SolutionItems) body.
	Items []string `json:"items,omitempty"`
	// DependsFrom lists the project GUIDs this project declares
	// dependencies on via ProjectSection(ProjectDependencies).
	DependsFrom []string `json:"depends_from,omitempty"`
}

// Configuration is a solution-wide configuration/platform pair.
type Configuration struct {
	Configuration string `json:"configuration"`
	Platform      string `json:"platform"`
}

// ProjectConfiguration is one project configuration mapping: the project's
// own configuration, the solution configuration it is mapped from, the
// platform, and the roles the mapping fulfills.
type ProjectConfiguration struct {
	Configuration         string `json:"configuration"`
	SolutionConfiguration string `json:"solution_configuration"`
	Platform              string `json:"platform"`
	Tags                  []Tag  `json:"tags"`
}

// Tag is a role a project configuration mapping fulfills.
type Tag uint8

const (
	// TagActiveCfg marks the mapping as selected for the solution
	// configuration.
	TagActiveCfg Tag = iota
	// TagBuild marks the mapping as built.
	TagBuild
	// TagDeploy marks the mapping as deployed.
	TagDeploy
)

func (t Tag) String() string {
	switch t {
	case TagActiveCfg:
		return "ActiveCfg"
	case TagBuild:
		return "Build"
	case TagDeploy:
		return "Deploy"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
}

// MarshalJSON serializes the tag by its name.
func (t Tag) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON parses a tag from its name.
func (t *Tag) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "ActiveCfg":
		*t = TagActiveCfg
	case "Build":
		*t = TagBuild
	case "Deploy":
		*t = TagDeploy
	default:
		return fmt.Errorf("unknown configuration tag %q", name)
	}
	return nil
}

// HasTag reports whether the mapping fulfills the given role.
func (c ProjectConfiguration) HasTag(tag Tag) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Nesting is one edge of the solution folder nesting relation: Child is
// nested under the solution folder Parent. Both are project GUIDs with
// braces.
type Nesting struct {
	Child  string
	Parent string
}

// configuredGroup identifies one group of project configuration entries: the
// project GUID that keyed them and the section that declared them.
type configuredGroup struct {
	id      string
	section string
}

// Project returns the first declared project with the given GUID, or nil.
// GUIDs compare case-insensitively.
func (s *Solution) Project(id string) *Project {
	for i := range s.Projects {
		if strings.EqualFold(s.Projects[i].ID, id) {
			return &s.Projects[i]
		}
	}
	return nil
}
