package formatter

import "strings"

type LineLengthFormatter struct{}

func (f *LineLengthFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{lengthInfo .Message .Padding}}

{{- if .Note }}
{{note .Note}}
{{- end }}
`
}

// lengthInfo reports the measured length instead of underlining the whole
// line, which would just repeat it.
func lengthInfo(message string, padding string) string {
	var endString string
	endString = lineStyle.Sprintf("%s| ", padding)
	endString += messageStyle.Sprintf("%s\n", strings.TrimSpace(message))

	return endString
}
