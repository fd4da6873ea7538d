package formatter

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swlin/swlin/internal"
	tt "github.com/swlin/swlin/internal/types"
)

func init() {
	color.NoColor = true
}

func sourceCode(lines ...string) *internal.SourceCode {
	return &internal.SourceCode{Lines: lines}
}

func TestGenerateFormattedIssue(t *testing.T) {
	issue := tt.Issue{
		Rule:       "strong_iboutlet",
		Filename:   "View.swift",
		Severity:   tt.SeverityWarning,
		Message:    "@IBOutlet property should not be declared weak or unowned",
		Suggestion: "remove the weak modifier",
		Start:      tt.Position{Offset: 20, Line: 1, Column: 21},
		End:        tt.Position{Offset: 24, Line: 1, Column: 25},
	}
	snippet := sourceCode(`class C { @IBOutlet weak var label: UILabel? }`)

	output := GenerateFormattedIssue([]tt.Issue{issue}, snippet)

	assert.Contains(t, output, "warning: strong_iboutlet")
	assert.Contains(t, output, "View.swift:1:21")
	assert.Contains(t, output, "class C { @IBOutlet weak var label: UILabel? }")
	assert.Contains(t, output, "@IBOutlet property should not be declared weak or unowned")
	assert.Contains(t, output, "Suggestion:")
	assert.Contains(t, output, "remove the weak modifier")
}

func TestGenerateFormattedIssueErrorSeverity(t *testing.T) {
	issue := tt.Issue{
		Rule:     "empty_enum_arguments",
		Filename: "Switch.swift",
		Severity: tt.SeverityError,
		Message:  "arguments can be omitted when all of them are unused",
		Start:    tt.Position{Offset: 22, Line: 1, Column: 23},
		End:      tt.Position{Offset: 25, Line: 1, Column: 26},
	}
	snippet := sourceCode(`switch foo { case .bar(_): break }`)

	output := GenerateFormattedIssue([]tt.Issue{issue}, snippet)
	assert.Contains(t, output, "error: empty_enum_arguments")
}

func TestGenerateFormattedIssueUnderline(t *testing.T) {
	issue := tt.Issue{
		Rule:     "strong_iboutlet",
		Filename: "View.swift",
		Severity: tt.SeverityWarning,
		Message:  "message",
		Start:    tt.Position{Offset: 20, Line: 1, Column: 21},
		End:      tt.Position{Offset: 24, Line: 1, Column: 25},
	}
	snippet := sourceCode(`class C { @IBOutlet weak var label: UILabel? }`)

	output := GenerateFormattedIssue([]tt.Issue{issue}, snippet)

	var underline string
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "~") {
			underline = line
			break
		}
	}
	require.NotEmpty(t, underline, "expected an underline row")
	assert.Contains(t, underline, "~~~~~", "underline should span the modifier")
}

func TestLineLengthFormatterSkipsUnderline(t *testing.T) {
	long := strings.Repeat("x", 130)
	issue := tt.Issue{
		Rule:     "line_length",
		Filename: "Long.swift",
		Severity: tt.SeverityWarning,
		Message:  "line should be 120 characters or less; currently it has 130",
		Start:    tt.Position{Offset: 0, Line: 1, Column: 1},
		End:      tt.Position{Offset: 130, Line: 1, Column: 131},
	}
	snippet := sourceCode(long)

	output := GenerateFormattedIssue([]tt.Issue{issue}, snippet)
	assert.Contains(t, output, "warning: line_length")
	assert.Contains(t, output, "line should be 120 characters or less")
	assert.NotContains(t, output, "~~~", "line_length does not underline the whole line")
}

func TestGenerateFormattedIssueOutOfRangePosition(t *testing.T) {
	issue := tt.Issue{
		Rule:     "todo",
		Filename: "View.swift",
		Severity: tt.SeverityWarning,
		Message:  "marker",
		Start:    tt.Position{Offset: 0, Line: 99, Column: 1},
		End:      tt.Position{Offset: 0, Line: 99, Column: 2},
	}
	snippet := sourceCode(`let a = 1`)

	output := GenerateFormattedIssue([]tt.Issue{issue}, snippet)
	assert.Contains(t, output, "marker", "message survives even when the snippet range is invalid")
}
