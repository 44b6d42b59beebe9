package solv

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/btree"

	"github.com/slntools/solv/ast"
	"github.com/slntools/solv/msbuild"
)

// ModelError reports a structurally required field the grammar could not
// itself guarantee, such as a project GUID that is not usable as an
// identifier. It is fatal for the file, like a lexical or syntax error.
type ModelError struct {
	Pos    ast.SourcePos
	Reason string
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Reason)
}

// Global section names the builder interprets. Format version 8 solutions
// declare configurations without platforms in the key; the platform then
// lives on the value side.
const (
	sectionSolutionConfigs        = "SolutionConfigurationPlatforms"
	sectionProjectConfigs         = "ProjectConfigurationPlatforms"
	sectionSolutionConfigsLegacy  = "SolutionConfiguration"
	sectionProjectConfigsLegacy   = "ProjectConfiguration"
	sectionNestedProjects         = "NestedProjects"
	sectionSolutionItems          = "SolutionItems"
	sectionProjectDependencies    = "ProjectDependencies"
)

// build materializes the model from a parsed syntax tree. The walk is a
// single pass over the top-level lines; project configuration groups are
// attached to projects only at the end, so declaration order between the
// Global block and the project blocks does not matter.
func build(path string, root *ast.Solution) (*Solution, error) {
	b := &builder{
		sol: &Solution{
			Path:           path,
			Format:         root.First.Format,
			Versions:       []Version{},
			Projects:       []Project{},
			Configurations: []Configuration{},
		},
		solutionConfigs: newOrderedSet(lessConfiguration),
		projectConfigs:  map[string]*orderedSet[ProjectConfiguration]{},
	}
	for _, line := range root.Lines {
		switch n := line.(type) {
		case *ast.Comment:
			// The product banner is a comment; the last one wins.
			b.sol.Product = strings.TrimLeft(n.Text, "# \t")
		case *ast.Version:
			b.sol.Versions = append(b.sol.Versions, Version{Name: n.Name, Version: n.Ver})
		case *ast.Project:
			if err := b.project(n); err != nil {
				return nil, err
			}
		case *ast.Global:
			b.global(n)
		}
	}
	b.finish()
	return b.sol, nil
}

type builder struct {
	sol             *Solution
	solutionConfigs *orderedSet[Configuration]
	projectConfigs  map[string]*orderedSet[ProjectConfiguration]
}

func (b *builder) project(n *ast.Project) error {
	begin := n.Begin
	if err := checkGUID(begin.TypeID, begin.Pos()); err != nil {
		return err
	}
	if err := checkGUID(begin.ID, begin.Pos()); err != nil {
		return err
	}
	p := Project{
		TypeID:          begin.TypeID,
		TypeDescription: msbuild.Describe(begin.TypeID),
		ID:              begin.ID,
		Name:            begin.Name,
		PathOrURI:       begin.Path,
	}
	for _, section := range n.Sections {
		switch {
		case section.Begin.Is(sectionSolutionItems):
			for _, c := range section.Content {
				p.Items = append(p.Items, c.Key)
			}
		case section.Begin.Is(sectionProjectDependencies):
			for _, c := range section.Content {
				p.DependsFrom = append(p.DependsFrom, c.Key)
			}
		}
	}
	b.sol.Projects = append(b.sol.Projects, p)
	return nil
}

// checkGUID verifies that a GUID which survived lexing is actually usable as
// an identifier. The lexer already enforces the braced hex shape, so this
// guards trees built by other means.
func checkGUID(id string, pos ast.SourcePos) error {
	if _, err := uuid.Parse(strings.Trim(id, "{}")); err != nil {
		return &ModelError{Pos: pos, Reason: fmt.Sprintf("unusable project GUID %q", id)}
	}
	return nil
}

func (b *builder) global(n *ast.Global) {
	// Legacy configuration names are declared on the value side and are
	// needed before their project entries can extend the solution set, so
	// declarations are gathered first.
	legacyNames := map[string]bool{}
	for _, section := range n.Sections {
		switch {
		case section.Begin.Is(sectionSolutionConfigs):
			for _, c := range section.Content {
				if cfg, platform, ok := splitPair(c.Key); ok {
					b.solutionConfigs.add(Configuration{Configuration: cfg, Platform: platform})
				}
			}
		case section.Begin.Is(sectionSolutionConfigsLegacy):
			for _, c := range section.Content {
				legacyNames[c.Value] = true
			}
		}
	}
	for _, section := range n.Sections {
		switch {
		case section.Begin.Is(sectionProjectConfigs):
			for _, c := range section.Content {
				b.projectConfigEntry(c, sectionProjectConfigs)
			}
		case section.Begin.Is(sectionProjectConfigsLegacy):
			for _, c := range section.Content {
				b.legacyProjectConfigEntry(c, legacyNames)
			}
		case section.Begin.Is(sectionNestedProjects):
			for _, c := range section.Content {
				b.sol.NestedProjects = append(b.sol.NestedProjects,
					Nesting{Child: c.Key, Parent: c.Value})
			}
		}
	}
}

// projectConfigEntry handles one line of ProjectConfigurationPlatforms:
//
//	{GUID}.<solution config>|<platform>.<tag> = <project config>|<platform>
//
// The solution configuration and platform come from the key, the project's
// own configuration from the value. Lines that do not fit are skipped; the
// section only loosely enforces its shape and junk entries are a validation
// concern, not a parse failure.
func (b *builder) projectConfigEntry(c *ast.SectionContent, section string) {
	id, rest, ok := splitGUIDKey(c.Key)
	if !ok {
		return
	}
	rest, tag, ok := splitTag(rest)
	if !ok {
		return
	}
	solutionConfig, platform, ok := splitPair(rest)
	if !ok {
		return
	}
	config, _, ok := splitPair(c.Value)
	if !ok {
		return
	}
	b.addProjectConfig(id, section, ProjectConfiguration{
		Configuration:         config,
		SolutionConfiguration: solutionConfig,
		Platform:              platform,
	}, tag)
}

// legacyProjectConfigEntry handles one line of the format version 8 section
// ProjectConfiguration:
//
//	{GUID}.<solution config>.<tag> = <project config>|<platform>
//
// There is no platform in the key; it comes from the value. Pairs from the
// value whose configuration name was declared in SolutionConfiguration
// extend the solution configuration set, which otherwise has no platforms
// to offer.
func (b *builder) legacyProjectConfigEntry(c *ast.SectionContent, declared map[string]bool) {
	id, rest, ok := splitGUIDKey(c.Key)
	if !ok {
		return
	}
	solutionConfig, tag, ok := splitTag(rest)
	if !ok {
		return
	}
	config, platform, ok := splitPair(c.Value)
	if !ok {
		return
	}
	b.addProjectConfig(id, sectionProjectConfigsLegacy, ProjectConfiguration{
		Configuration:         config,
		SolutionConfiguration: solutionConfig,
		Platform:              platform,
	}, tag)
	if declared[config] {
		b.solutionConfigs.add(Configuration{Configuration: config, Platform: platform})
	}
}

// addProjectConfig records one configuration tuple under its project GUID,
// merging tags of tuples that share the configuration, solution
// configuration and platform. Grouping joins on the raw GUID text.
func (b *builder) addProjectConfig(id, section string, pc ProjectConfiguration, tag Tag) {
	set, ok := b.projectConfigs[id]
	if !ok {
		set = newOrderedSet(lessProjectConfiguration)
		b.projectConfigs[id] = set
		b.sol.configured = append(b.sol.configured, configuredGroup{id: id, section: section})
	}
	if old, ok := set.get(pc); ok {
		pc.Tags = mergeTags(old.Tags, tag)
	} else {
		pc.Tags = []Tag{tag}
	}
	set.add(pc)
}

// finish attaches the grouped configurations to their projects and
// materializes the solution configuration set.
func (b *builder) finish() {
	for i := range b.sol.Projects {
		if set, ok := b.projectConfigs[b.sol.Projects[i].ID]; ok {
			b.sol.Projects[i].Configurations = set.items()
		}
	}
	b.sol.Configurations = b.solutionConfigs.items()
}

// splitGUIDKey splits a section key of shape "{GUID}.rest". GUIDs contain no
// dots, so the first "}." ends the GUID.
func splitGUIDKey(key string) (id, rest string, ok bool) {
	if !strings.HasPrefix(key, "{") {
		return "", "", false
	}
	i := strings.Index(key, "}.")
	if i < 0 {
		return "", "", false
	}
	return key[:i+1], key[i+2:], true
}

// splitTag strips the trailing role tag from a section key. Tags are matched
// as suffixes because configuration names may themselves contain dots.
func splitTag(key string) (rest string, tag Tag, ok bool) {
	switch {
	case strings.HasSuffix(key, ".ActiveCfg"):
		return strings.TrimSuffix(key, ".ActiveCfg"), TagActiveCfg, true
	case strings.HasSuffix(key, ".Build.0"):
		return strings.TrimSuffix(key, ".Build.0"), TagBuild, true
	case strings.HasSuffix(key, ".Deploy.0"):
		return strings.TrimSuffix(key, ".Deploy.0"), TagDeploy, true
	}
	return "", 0, false
}

// splitPair splits "configuration|platform" on the first '|'.
func splitPair(s string) (config, platform string, ok bool) {
	i := strings.Index(s, "|")
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}

// mergeTags adds tag to tags, keeping them sorted and unique.
func mergeTags(tags []Tag, tag Tag) []Tag {
	for i, t := range tags {
		if t == tag {
			return tags
		}
		if t > tag {
			return append(tags[:i:i], append([]Tag{tag}, tags[i:]...)...)
		}
	}
	return append(tags, tag)
}

func lessConfiguration(a, b Configuration) bool {
	if a.Configuration != b.Configuration {
		return a.Configuration < b.Configuration
	}
	return a.Platform < b.Platform
}

func lessProjectConfiguration(a, b ProjectConfiguration) bool {
	if a.Configuration != b.Configuration {
		return a.Configuration < b.Configuration
	}
	if a.SolutionConfiguration != b.SolutionConfiguration {
		return a.SolutionConfiguration < b.SolutionConfiguration
	}
	return a.Platform < b.Platform
}

// orderedSet is a sorted, deduplicated collection. The model's configuration
// collections are serialized sorted, so they are accumulated through one of
// these rather than a slice.
type orderedSet[T any] struct {
	tree *btree.BTreeG[T]
}

func newOrderedSet[T any](less func(a, b T) bool) *orderedSet[T] {
	return &orderedSet[T]{tree: btree.NewBTreeG(less)}
}

func (s *orderedSet[T]) add(item T) {
	s.tree.Set(item)
}

func (s *orderedSet[T]) get(key T) (T, bool) {
	return s.tree.Get(key)
}

func (s *orderedSet[T]) items() []T {
	out := make([]T, 0, s.tree.Len())
	s.tree.Scan(func(item T) bool {
		out = append(out, item)
		return true
	})
	return out
}
