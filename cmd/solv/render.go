package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/rivo/uniseg"

	"github.com/slntools/solv"
	"github.com/slntools/solv/ast"
	"github.com/slntools/solv/parser"
)

var (
	pathStyle  = color.New(color.FgCyan, color.Bold)
	errStyle   = color.New(color.FgRed, color.Bold)
	infoStyle  = color.New(color.FgYellow)
	okStyle    = color.New(color.FgGreen)
	titleStyle = color.New(color.Bold)
)

// tabstop renders tabs in source excerpts as four spaces, the way the
// terminal output expects them.
const tabstop = "    "

func renderValidation(w io.Writer, report *solv.BatchReport, onlyProblems bool) {
	for i := range report.Results {
		r := &report.Results[i]
		if r.Err != nil {
			pathStyle.Fprintln(w, r.Path)
			renderFailure(w, r.Path, r.Err)
			fmt.Fprintln(w)
			continue
		}
		if onlyProblems && len(r.Findings) == 0 {
			continue
		}
		renderSolution(w, r.Path, r.Findings)
	}
}

func renderSolution(w io.Writer, path string, findings []solv.Finding) {
	pathStyle.Fprintln(w, path)
	if len(findings) == 0 {
		okStyle.Fprintln(w, "  no problems found")
	} else {
		renderFindings(w, findings)
	}
	fmt.Fprintln(w)
}

func renderFindings(w io.Writer, findings []solv.Finding) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range findings {
		style := infoStyle
		if f.Severity == solv.SeverityError {
			style = errStyle
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n",
			style.Sprint(f.Severity), f.Kind, f.Message)
	}
	tw.Flush()
}

// renderFailure prints the failure that stopped a file's parse and, when the
// error carries a position, an excerpt of the offending line with a caret
// under the failing column.
func renderFailure(w io.Writer, path string, err error) {
	errStyle.Fprintf(w, "  %v\n", err)

	var pos ast.SourcePos
	var lexErr *parser.LexicalError
	var parseErr *parser.ParseError
	var modelErr *solv.ModelError
	switch {
	case errors.As(err, &lexErr):
		pos = lexErr.Pos
	case errors.As(err, &parseErr):
		pos = parseErr.Pos
	case errors.As(err, &modelErr):
		pos = modelErr.Pos
	default:
		return
	}
	line, ok := sourceLine(path, pos.Line)
	if !ok {
		return
	}
	fmt.Fprintf(w, "    %s\n", strings.ReplaceAll(line, "\t", tabstop))
	fmt.Fprintf(w, "    %s^\n", strings.Repeat(" ", caretWidth(line, pos.Col)))
}

// caretWidth is the on-screen width of the line up to the failing column.
// Columns count runes, but the terminal advances by cell widths, which
// uniseg knows how to measure.
func caretWidth(line string, col int) int {
	runes := []rune(line)
	if col-1 < len(runes) {
		runes = runes[:col-1]
	}
	return uniseg.StringWidth(strings.ReplaceAll(string(runes), "\t", tabstop))
}

// sourceLine re-reads one line of the file for the excerpt. The BOM is
// dropped the way the lexer drops it, so positions line up.
func sourceLine(path string, line int) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	lines := strings.Split(string(data), "\n")
	if line < 1 || line > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[line-1], "\r"), true
}

func renderReportInfo(w io.Writer, report *solv.BatchReport) {
	for i := range report.Results {
		r := &report.Results[i]
		if r.Err != nil {
			pathStyle.Fprintln(w, r.Path)
			renderFailure(w, r.Path, r.Err)
			fmt.Fprintln(w)
			continue
		}
		renderSolutionInfo(w, r.Solution)
	}
}

func renderSolutionInfo(w io.Writer, sol *solv.Solution) {
	if sol.Path != "" {
		pathStyle.Fprintln(w, sol.Path)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  format\t%s\n", sol.Format)
	if sol.Product != "" {
		fmt.Fprintf(tw, "  product\t%s\n", sol.Product)
	}
	for _, v := range sol.Versions {
		fmt.Fprintf(tw, "  %s\t%s\n", v.Name, v.Version)
	}
	tw.Flush()

	if len(sol.Projects) > 0 {
		titleStyle.Fprintln(w, "  projects")
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, line := range projectCounts(sol) {
			fmt.Fprintf(tw, "    %s\t%s\n", line.description, humanize.Comma(line.count))
		}
		tw.Flush()
	}
	if len(sol.Configurations) > 0 {
		titleStyle.Fprintln(w, "  configurations")
		for _, c := range sol.Configurations {
			fmt.Fprintf(w, "    %s|%s\n", c.Configuration, c.Platform)
		}
	}
	fmt.Fprintln(w)
}

type projectCount struct {
	description string
	count       int64
}

func projectCounts(sol *solv.Solution) []projectCount {
	byDescription := map[string]int64{}
	for i := range sol.Projects {
		byDescription[sol.Projects[i].TypeDescription]++
	}
	counts := make([]projectCount, 0, len(byDescription))
	for description, count := range byDescription {
		counts = append(counts, projectCount{description: description, count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		return counts[i].description < counts[j].description
	})
	return counts
}

func renderSummary(w io.Writer, report *solv.BatchReport, elapsed time.Duration) {
	titleStyle.Fprintln(w, "summary")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  solutions\t%s\n", humanize.Comma(int64(report.Files)))
	fmt.Fprintf(tw, "  parsed\t%s\n", humanize.Comma(int64(report.Parsed)))
	fmt.Fprintf(tw, "  failed\t%s\n", humanize.Comma(int64(report.Failed)))
	fmt.Fprintf(tw, "  projects\t%s\n", humanize.Comma(int64(report.Projects)))
	fmt.Fprintf(tw, "  error findings\t%s\n", humanize.Comma(int64(report.ErrorFindings)))
	fmt.Fprintf(tw, "  info findings\t%s\n", humanize.Comma(int64(report.InfoFindings)))
	tw.Flush()
	fmt.Fprintf(w, "elapsed: %s\n", elapsed.Round(time.Millisecond))
}

// fileJSON is the machine-readable shape of one scanned file.
type fileJSON struct {
	Path     string         `json:"path"`
	Solution *solv.Solution `json:"solution,omitempty"`
	Findings []solv.Finding `json:"findings,omitempty"`
	Error    string         `json:"error,omitempty"`
}

func renderReportJSON(w io.Writer, report *solv.BatchReport) error {
	files := make([]fileJSON, len(report.Results))
	for i := range report.Results {
		r := &report.Results[i]
		files[i] = fileJSON{Path: r.Path, Solution: r.Solution, Findings: r.Findings}
		if r.Err != nil {
			files[i].Error = r.Err.Error()
		}
	}
	return writeJSON(w, files)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
