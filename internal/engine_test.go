package internal

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/swlin/swlin/internal/types"
)

func newTestEngine(t *testing.T, cfg *tt.Config) *Engine {
	t.Helper()
	engine, err := NewEngine(".", cfg)
	require.NoError(t, err)
	return engine
}

func TestEngineRunSource(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, &tt.Config{})

	src := []byte(`class C { @IBOutlet weak var label: UILabel? }`)
	issues, err := engine.RunSource(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "strong_iboutlet", issues[0].Rule)
	assert.Equal(t, tt.SeverityWarning, issues[0].Severity)
}

func TestEngineIssuesSorted(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, &tt.Config{})

	src := []byte("switch foo { case .bar(_): break }\nclass C { @IBOutlet weak var label: UILabel? }\n")
	issues, err := engine.RunSource(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, "empty_enum_arguments", issues[0].Rule)
	assert.Equal(t, "strong_iboutlet", issues[1].Rule)
	assert.Less(t, issues[0].Start.Offset, issues[1].Start.Offset)
}

func TestEngineDisabledRegions(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, &tt.Config{})

	src := []byte(`// swlin:disable strong_iboutlet
class C { @IBOutlet weak var label: UILabel? }
`)
	issues, err := engine.RunSource(context.Background(), src)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngineOptInRule(t *testing.T) {
	t.Parallel()
	src := []byte("// TODO: later\nlet a = 1\n")

	engine := newTestEngine(t, &tt.Config{})
	issues, err := engine.RunSource(context.Background(), src)
	require.NoError(t, err)
	assert.Empty(t, issues, "todo is opt-in and stays off by default")

	enabled := true
	engine = newTestEngine(t, &tt.Config{
		Rules: map[string]tt.ConfigRule{
			"todo": {Enabled: &enabled},
		},
	})
	issues, err = engine.RunSource(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "todo", issues[0].Rule)
}

func TestEngineDisableRuleViaConfig(t *testing.T) {
	t.Parallel()
	disabled := false
	engine := newTestEngine(t, &tt.Config{
		Rules: map[string]tt.ConfigRule{
			"strong_iboutlet": {Enabled: &disabled},
		},
	})

	src := []byte(`class C { @IBOutlet weak var label: UILabel? }`)
	issues, err := engine.RunSource(context.Background(), src)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngineSeverityOverride(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, &tt.Config{
		Rules: map[string]tt.ConfigRule{
			"strong_iboutlet": {Severity: "error"},
		},
	})

	src := []byte(`class C { @IBOutlet weak var label: UILabel? }`)
	issues, err := engine.RunSource(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, tt.SeverityError, issues[0].Severity)
}

func TestEngineParamOverride(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, &tt.Config{
		Rules: map[string]tt.ConfigRule{
			"line_length": {Params: map[string]any{"max_length": 10}},
		},
	})

	src := []byte("let number = 12345\n")
	issues, err := engine.RunSource(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "line_length", issues[0].Rule)
}

func TestEngineConfigValidation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		cfg  *tt.Config
	}{
		{
			name: "unknown rule",
			cfg: &tt.Config{Rules: map[string]tt.ConfigRule{
				"no_such_rule": {},
			}},
		},
		{
			name: "invalid severity",
			cfg: &tt.Config{Rules: map[string]tt.ConfigRule{
				"todo": {Severity: "fatal"},
			}},
		},
		{
			name: "unknown parameter",
			cfg: &tt.Config{Rules: map[string]tt.ConfigRule{
				"line_length": {Params: map[string]any{"max_len": 80}},
			}},
		},
		{
			name: "parameter on rule without parameters",
			cfg: &tt.Config{Rules: map[string]tt.ConfigRule{
				"todo": {Params: map[string]any{"anything": 1}},
			}},
		},
		{
			name: "non-integer parameter value",
			cfg: &tt.Config{Rules: map[string]tt.ConfigRule{
				"line_length": {Params: map[string]any{"max_length": "wide"}},
			}},
		},
		{
			name: "invalid override entry",
			cfg: &tt.Config{Overrides: []tt.Override{
				{Paths: []string{"*.swift"}, Rules: map[string]tt.ConfigRule{"no_such_rule": {}}},
			}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewEngine(".", tc.cfg)
			require.Error(t, err)
			var cfgErr *tt.ConfigurationError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestEngineOverrideMatchesFilename(t *testing.T) {
	t.Parallel()
	off := false
	engine := newTestEngine(t, &tt.Config{
		Overrides: []tt.Override{
			{
				Paths: []string{"Generated*.swift"},
				Rules: map[string]tt.ConfigRule{"strong_iboutlet": {Enabled: &off}},
			},
		},
	})

	src := `class C { @IBOutlet weak var label: UILabel? }`

	dir := t.TempDir()
	matched := filepath.Join(dir, "GeneratedView.swift")
	plain := filepath.Join(dir, "View.swift")
	require.NoError(t, os.WriteFile(matched, []byte(src), 0o644))
	require.NoError(t, os.WriteFile(plain, []byte(src), 0o644))

	issues, err := engine.Run(context.Background(), matched)
	require.NoError(t, err)
	assert.Empty(t, issues, "override disables the rule for matching files")

	issues, err = engine.Run(context.Background(), plain)
	require.NoError(t, err)
	assert.Len(t, issues, 1)
}

func TestEngineIgnoreRule(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, &tt.Config{})
	engine.IgnoreRule("strong_iboutlet")

	src := []byte(`class C { @IBOutlet weak var label: UILabel? }`)
	issues, err := engine.RunSource(context.Background(), src)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngineIgnorePath(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, &tt.Config{})

	dir := t.TempDir()
	file := filepath.Join(dir, "View.swift")
	require.NoError(t, os.WriteFile(file, []byte(`class C { @IBOutlet weak var label: UILabel? }`), 0o644))

	engine.IgnorePath(dir)
	issues, err := engine.Run(context.Background(), file)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngineParseFailure(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, &tt.Config{})

	_, err := engine.RunSource(context.Background(), []byte("class C { /* oops"))
	require.Error(t, err)
	var pf *tt.ParseFailure
	assert.ErrorAs(t, err, &pf)
}

func TestRuleIDsSorted(t *testing.T) {
	t.Parallel()
	ids := RuleIDs()
	require.NotEmpty(t, ids)
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}

	for _, id := range ids {
		rule, ok := NewRule(id)
		require.True(t, ok)
		assert.Equal(t, id, rule.Descriptor().ID)
	}
}
