package solv

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoProjectSolution = `Microsoft Visual Studio Solution File, Format Version 12.00
# Visual Studio Version 16
VisualStudioVersion = 16.0.30114.105
MinimumVisualStudioVersion = 10.0.40219.1
Project("{9A19103F-16F7-4668-BE54-9A1E7A4F7556}") = "Client", "Client\Client.csproj", "{40FF7353-043E-4BBD-8D91-693FA0FE67F7}"
EndProject
Project("{9A19103F-16F7-4668-BE54-9A1E7A4F7556}") = "Server", "Server\Server.csproj", "{4EF25BE0-9D2F-4C5A-9B2B-8AAA1B9A0D9A}"
EndProject
Global
	GlobalSection(SolutionConfigurationPlatforms) = preSolution
		Debug|Any CPU = Debug|Any CPU
		Release|Any CPU = Release|Any CPU
	EndGlobalSection
	GlobalSection(ProjectConfigurationPlatforms) = postSolution
		{40FF7353-043E-4BBD-8D91-693FA0FE67F7}.Debug|Any CPU.ActiveCfg = Debug|Any CPU
		{40FF7353-043E-4BBD-8D91-693FA0FE67F7}.Debug|Any CPU.Build.0 = Debug|Any CPU
		{40FF7353-043E-4BBD-8D91-693FA0FE67F7}.Release|Any CPU.ActiveCfg = Release|Any CPU
		{40FF7353-043E-4BBD-8D91-693FA0FE67F7}.Release|Any CPU.Build.0 = Release|Any CPU
		{4EF25BE0-9D2F-4C5A-9B2B-8AAA1B9A0D9A}.Debug|Any CPU.ActiveCfg = Debug|Any CPU
		{4EF25BE0-9D2F-4C5A-9B2B-8AAA1B9A0D9A}.Debug|Any CPU.Build.0 = Debug|Any CPU
		{4EF25BE0-9D2F-4C5A-9B2B-8AAA1B9A0D9A}.Release|Any CPU.ActiveCfg = Release|Any CPU
		{4EF25BE0-9D2F-4C5A-9B2B-8AAA1B9A0D9A}.Release|Any CPU.Build.0 = Release|Any CPU
	EndGlobalSection
	GlobalSection(SolutionProperties) = preSolution
		HideSolutionNode = FALSE
	EndGlobalSection
EndGlobal
`

// The canonical two-project round trip: parse, then validate. Two C#
// projects, two configurations each, both built, nothing to report.
func TestParseAndValidateTwoProjects(t *testing.T) {
	sol, err := Parse(twoProjectSolution)
	require.NoError(t, err)

	assert.Empty(t, sol.Path)
	assert.Equal(t, "12.00", sol.Format)
	assert.Equal(t, "Visual Studio Version 16", sol.Product)
	assert.Equal(t, []Version{
		{Name: "VisualStudioVersion", Version: "16.0.30114.105"},
		{Name: "MinimumVisualStudioVersion", Version: "10.0.40219.1"},
	}, sol.Versions)
	assert.Equal(t, []Configuration{
		{Configuration: "Debug", Platform: "Any CPU"},
		{Configuration: "Release", Platform: "Any CPU"},
	}, sol.Configurations)

	require.Len(t, sol.Projects, 2)
	assert.Equal(t, "Client", sol.Projects[0].Name)
	assert.Equal(t, "Server", sol.Projects[1].Name)
	for _, p := range sol.Projects {
		assert.Equal(t, "C#", p.TypeDescription)
		require.Len(t, p.Configurations, 2)
		for _, pc := range p.Configurations {
			assert.True(t, pc.HasTag(TagBuild))
			assert.True(t, pc.HasTag(TagActiveCfg))
			assert.Equal(t, "Any CPU", pc.Platform)
			assert.Equal(t, pc.Configuration, pc.SolutionConfiguration)
		}
	}

	assert.Empty(t, Validate(sol))
}

// Parsing has no hidden state: the same text parses to structurally
// identical models every time.
func TestParseIsIdempotent(t *testing.T) {
	first, err := Parse(twoProjectSolution)
	require.NoError(t, err)
	second, err := Parse(twoProjectSolution)
	require.NoError(t, err)

	diff := cmp.Diff(first, second, cmp.AllowUnexported(Solution{}, configuredGroup{}))
	assert.Empty(t, diff)
}

func TestParseFailuresYieldNoModel(t *testing.T) {
	sol, err := Parse("Microsoft Visual Studio Solution File, Format Version 12.00\n\"oops")
	assert.Error(t, err)
	assert.Nil(t, sol)
}

func TestProjectLookup(t *testing.T) {
	sol, err := Parse(twoProjectSolution)
	require.NoError(t, err)

	p := sol.Project("{40ff7353-043e-4bbd-8d91-693fa0fe67f7}")
	require.NotNil(t, p)
	assert.Equal(t, "Client", p.Name)
	assert.Nil(t, sol.Project("{00000000-0000-0000-0000-000000000000}"))
}

func TestTagRoundTrip(t *testing.T) {
	for _, tag := range []Tag{TagActiveCfg, TagBuild, TagDeploy} {
		data, err := tag.MarshalJSON()
		require.NoError(t, err)
		var back Tag
		require.NoError(t, back.UnmarshalJSON(data))
		assert.Equal(t, tag, back)
	}
	var tag Tag
	assert.Error(t, tag.UnmarshalJSON([]byte(`"Rebuild"`)))
}
