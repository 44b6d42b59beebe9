package solv

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// expectedFinding is the corpus shape of a finding: everything but the
// message, which has its own assertions below.
type expectedFinding struct {
	Severity string `yaml:"severity"`
	Kind     string `yaml:"kind"`
	Guid     string `yaml:"guid"`
	Section  string `yaml:"section"`
	Project  string `yaml:"project"`
}

type validateCase struct {
	Name     string            `yaml:"name"`
	Solution string            `yaml:"solution"`
	Findings []expectedFinding `yaml:"findings"`
}

func TestValidateCorpus(t *testing.T) {
	data, err := os.ReadFile("testdata/validate.yaml")
	require.NoError(t, err)
	var cases []validateCase
	require.NoError(t, yaml.Unmarshal(data, &cases))
	require.NotEmpty(t, cases)

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			sol, err := Parse(tc.Solution)
			require.NoError(t, err)

			got := []expectedFinding{}
			for _, f := range Validate(sol) {
				assert.NotEmpty(t, f.Message)
				got = append(got, expectedFinding{
					Severity: f.Severity.String(),
					Kind:     string(f.Kind),
					Guid:     f.Guid,
					Section:  f.Section,
					Project:  f.Project,
				})
			}
			if tc.Findings == nil {
				tc.Findings = []expectedFinding{}
			}
			assert.Equal(t, tc.Findings, got)
		})
	}
}

// A cycle message has to name every participant, or there is nothing to act
// on when the chain is long.
func TestNestingCycleMessageNamesEveryProject(t *testing.T) {
	sol := &Solution{
		Projects: []Project{
			{ID: "{AAAAAAAA-AAAA-AAAA-AAAA-AAAAAAAAAAAA}", Name: "a"},
			{ID: "{BBBBBBBB-BBBB-BBBB-BBBB-BBBBBBBBBBBB}", Name: "b"},
			{ID: "{CCCCCCCC-CCCC-CCCC-CCCC-CCCCCCCCCCCC}", Name: "c"},
		},
		NestedProjects: []Nesting{
			{Child: "{AAAAAAAA-AAAA-AAAA-AAAA-AAAAAAAAAAAA}", Parent: "{BBBBBBBB-BBBB-BBBB-BBBB-BBBBBBBBBBBB}"},
			{Child: "{BBBBBBBB-BBBB-BBBB-BBBB-BBBBBBBBBBBB}", Parent: "{CCCCCCCC-CCCC-CCCC-CCCC-CCCCCCCCCCCC}"},
			{Child: "{CCCCCCCC-CCCC-CCCC-CCCC-CCCCCCCCCCCC}", Parent: "{AAAAAAAA-AAAA-AAAA-AAAA-AAAAAAAAAAAA}"},
		},
	}
	findings := Validate(sol)
	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, KindNestingCycle, f.Kind)
	assert.Equal(t, SeverityError, f.Severity)
	assert.Equal(t, "project nesting forms a cycle: "+
		"{AAAAAAAA-AAAA-AAAA-AAAA-AAAAAAAAAAAA} -> "+
		"{BBBBBBBB-BBBB-BBBB-BBBB-BBBBBBBBBBBB} -> "+
		"{CCCCCCCC-CCCC-CCCC-CCCC-CCCCCCCCCCCC} -> "+
		"{AAAAAAAA-AAAA-AAAA-AAAA-AAAAAAAAAAAA}", f.Message)
	assert.Equal(t, "{AAAAAAAA-AAAA-AAAA-AAAA-AAAAAAAAAAAA}", f.Guid)
}

// A chain hanging off a cycle reports the cycle once, not once per entry
// point into it.
func TestNestingCycleReportedOnce(t *testing.T) {
	sol := &Solution{
		Projects: []Project{
			{ID: "{AAAAAAAA-AAAA-AAAA-AAAA-AAAAAAAAAAAA}", Name: "a"},
			{ID: "{BBBBBBBB-BBBB-BBBB-BBBB-BBBBBBBBBBBB}", Name: "b"},
			{ID: "{CCCCCCCC-CCCC-CCCC-CCCC-CCCCCCCCCCCC}", Name: "c"},
		},
		NestedProjects: []Nesting{
			{Child: "{CCCCCCCC-CCCC-CCCC-CCCC-CCCCCCCCCCCC}", Parent: "{AAAAAAAA-AAAA-AAAA-AAAA-AAAAAAAAAAAA}"},
			{Child: "{AAAAAAAA-AAAA-AAAA-AAAA-AAAAAAAAAAAA}", Parent: "{BBBBBBBB-BBBB-BBBB-BBBB-BBBBBBBBBBBB}"},
			{Child: "{BBBBBBBB-BBBB-BBBB-BBBB-BBBBBBBBBBBB}", Parent: "{AAAAAAAA-AAAA-AAAA-AAAA-AAAAAAAAAAAA}"},
		},
	}
	findings := Validate(sol)
	require.Len(t, findings, 1)
	assert.Equal(t, KindNestingCycle, findings[0].Kind)
}
