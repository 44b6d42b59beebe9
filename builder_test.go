package solv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slntools/solv/ast"
)

const format8Solution = `Microsoft Visual Studio Solution File, Format Version 8.00
Project("{8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942}") = "gtest", "gtest.vcproj", "{C8F6C172-56F2-4E76-B5FA-C3B423B31BE7}"
	ProjectSection(ProjectDependencies) = postProject
	EndProjectSection
EndProject
Global
	GlobalSection(SolutionConfiguration) = preSolution
		Debug = Debug
		Release = Release
	EndGlobalSection
	GlobalSection(ProjectConfiguration) = postSolution
		{C8F6C172-56F2-4E76-B5FA-C3B423B31BE7}.Debug.ActiveCfg = Debug|Win32
		{C8F6C172-56F2-4E76-B5FA-C3B423B31BE7}.Debug.Build.0 = Debug|Win32
		{C8F6C172-56F2-4E76-B5FA-C3B423B31BE7}.Release.ActiveCfg = Release|Win32
		{C8F6C172-56F2-4E76-B5FA-C3B423B31BE7}.Release.Build.0 = Release|Win32
	EndGlobalSection
EndGlobal
`

// Format version 8 declares configurations without platforms; the platforms
// join in from the project configuration values.
func TestBuildFormat8Solution(t *testing.T) {
	sol, err := Parse(format8Solution)
	require.NoError(t, err)

	assert.Equal(t, "8.00", sol.Format)
	assert.Empty(t, sol.Product)
	assert.Equal(t, []Configuration{
		{Configuration: "Debug", Platform: "Win32"},
		{Configuration: "Release", Platform: "Win32"},
	}, sol.Configurations)

	require.Len(t, sol.Projects, 1)
	p := sol.Projects[0]
	assert.Equal(t, "C++", p.TypeDescription)
	assert.Equal(t, []ProjectConfiguration{
		{Configuration: "Debug", SolutionConfiguration: "Debug", Platform: "Win32", Tags: []Tag{TagActiveCfg, TagBuild}},
		{Configuration: "Release", SolutionConfiguration: "Release", Platform: "Win32", Tags: []Tag{TagActiveCfg, TagBuild}},
	}, p.Configurations)

	assert.Empty(t, Validate(sol))
}

const nestedSolution = `Microsoft Visual Studio Solution File, Format Version 12.00
# Visual Studio 15
Project("{2150E333-8FDC-42A3-9474-1A3956D46DE8}") = "solution items", "solution items", "{3B960F8F-AD5D-45E7-92C0-05B65E200AC4}"
	ProjectSection(SolutionItems) = preProject
		.editorconfig = .editorconfig
		appveyor.yml = appveyor.yml
	EndProjectSection
EndProject
Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "app", "app\app.csproj", "{40FF7353-043E-4BBD-8D91-693FA0FE67F7}"
	ProjectSection(ProjectDependencies) = postProject
		{4EF25BE0-9D2F-4C5A-9B2B-8AAA1B9A0D9A} = {4EF25BE0-9D2F-4C5A-9B2B-8AAA1B9A0D9A}
	EndProjectSection
EndProject
Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "lib", "lib\lib.csproj", "{4EF25BE0-9D2F-4C5A-9B2B-8AAA1B9A0D9A}"
EndProject
Global
	GlobalSection(NestedProjects) = preSolution
		{40FF7353-043E-4BBD-8D91-693FA0FE67F7} = {3B960F8F-AD5D-45E7-92C0-05B65E200AC4}
		{4EF25BE0-9D2F-4C5A-9B2B-8AAA1B9A0D9A} = {3B960F8F-AD5D-45E7-92C0-05B65E200AC4}
	EndGlobalSection
EndGlobal
`

func TestBuildItemsDependenciesAndNesting(t *testing.T) {
	sol, err := Parse(nestedSolution)
	require.NoError(t, err)

	require.Len(t, sol.Projects, 3)
	folder := sol.Projects[0]
	assert.Equal(t, "Solution Folder", folder.TypeDescription)
	assert.Equal(t, []string{".editorconfig", "appveyor.yml"}, folder.Items)
	assert.Nil(t, folder.Configurations)

	app := sol.Projects[1]
	assert.Equal(t, []string{"{4EF25BE0-9D2F-4C5A-9B2B-8AAA1B9A0D9A}"}, app.DependsFrom)

	assert.Equal(t, []Nesting{
		{Child: "{40FF7353-043E-4BBD-8D91-693FA0FE67F7}", Parent: "{3B960F8F-AD5D-45E7-92C0-05B65E200AC4}"},
		{Child: "{4EF25BE0-9D2F-4C5A-9B2B-8AAA1B9A0D9A}", Parent: "{3B960F8F-AD5D-45E7-92C0-05B65E200AC4}"},
	}, sol.NestedProjects)
}

func TestBuildProductIsLastComment(t *testing.T) {
	sol, err := Parse("Microsoft Visual Studio Solution File, Format Version 12.00\n" +
		"# Visual Studio 14\n" +
		"# Visual Studio 15\n")
	require.NoError(t, err)
	assert.Equal(t, "Visual Studio 15", sol.Product)
}

// Duplicate entries collapse and the collections come out sorted, no matter
// the declaration order.
func TestBuildConfigurationsSortedAndDeduplicated(t *testing.T) {
	sol, err := Parse("Microsoft Visual Studio Solution File, Format Version 12.00\n" +
		"Global\n" +
		"	GlobalSection(SolutionConfigurationPlatforms) = preSolution\n" +
		"		Release|x86 = Release|x86\n" +
		"		Debug|x86 = Debug|x86\n" +
		"		Release|x86 = Release|x86\n" +
		"	EndGlobalSection\n" +
		"EndGlobal\n")
	require.NoError(t, err)
	assert.Equal(t, []Configuration{
		{Configuration: "Debug", Platform: "x86"},
		{Configuration: "Release", Platform: "x86"},
	}, sol.Configurations)
}

// Entries that do not fit the section's key shape are skipped, not fatal.
func TestBuildSkipsMalformedConfigurationEntries(t *testing.T) {
	sol, err := Parse("Microsoft Visual Studio Solution File, Format Version 12.00\n" +
		"Global\n" +
		"	GlobalSection(SolutionConfigurationPlatforms) = preSolution\n" +
		"		NoPlatformHere = NoPlatformHere\n" +
		"	EndGlobalSection\n" +
		"	GlobalSection(ProjectConfigurationPlatforms) = postSolution\n" +
		"		notaguid.Debug|x86.ActiveCfg = Debug|x86\n" +
		"		{40FF7353-043E-4BBD-8D91-693FA0FE67F7}.Debug|x86.Rebuild.7 = Debug|x86\n" +
		"	EndGlobalSection\n" +
		"EndGlobal\n")
	require.NoError(t, err)
	assert.Empty(t, sol.Configurations)
	assert.Empty(t, sol.configured)
}

func TestBuildRejectsUnusableGUID(t *testing.T) {
	pos := ast.SourcePos{Line: 2, Col: 1}
	root := &ast.Solution{
		First: ast.NewFirstLine([]string{"Microsoft"}, "12.00", ast.SourcePos{Line: 1, Col: 1}),
		Lines: []ast.Node{
			&ast.Project{Begin: ast.NewProjectBegin("{}", "app", "app.csproj", "{}", pos)},
		},
	}
	sol, err := build("", root)
	assert.Nil(t, sol)
	var modelErr *ModelError
	require.ErrorAs(t, err, &modelErr)
	assert.Equal(t, pos, modelErr.Pos)
	assert.Contains(t, modelErr.Reason, "unusable project GUID")
}
