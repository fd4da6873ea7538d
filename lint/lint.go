package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/swlin/swlin/internal"
	tt "github.com/swlin/swlin/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// LintEngine is the interface the process helpers drive. *internal.Engine
// implements it.
type LintEngine interface {
	Run(ctx context.Context, filePath string) ([]tt.Issue, error)
	RunSource(ctx context.Context, source []byte) ([]tt.Issue, error)
	IgnoreRule(rule string)
	IgnorePath(path string)
}

// Result aggregates a multi-file run. A file that cannot be analyzed is
// recorded as a failure and never aborts the rest of the run.
type Result struct {
	Issues   []tt.Issue
	Failures []tt.FileFailure
}

// New builds a lint engine for rootDir from the configuration file at
// configurationPath. An empty path means built-in defaults only.
func New(rootDir string, configurationPath string) (*internal.Engine, error) {
	config, err := LoadConfig(configurationPath)
	if err != nil {
		return nil, err
	}

	return internal.NewEngine(rootDir, config)
}

// ProcessSources lints in-memory sources. Unlike file runs, a bad source
// aborts: the caller handed it to us directly, so it has no filename to
// report a failure against.
func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	sources [][]byte,
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for i, source := range sources {
		issues, err := engine.RunSource(ctx, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

// ProcessFiles lints every path, recursing into directories.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
) (Result, error) {
	var result Result
	for _, path := range paths {
		res, err := ProcessPath(ctx, logger, engine, path)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return Result{}, err
		}
		result.Issues = append(result.Issues, res.Issues...)
		result.Failures = append(result.Failures, res.Failures...)
	}

	tt.SortIssues(result.Issues)
	return result, nil
}

// ProcessPath lints a single file or directory tree. Directory entries are
// processed concurrently, one worker per CPU.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
) (Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Result{}, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasDesiredExtension(path) {
			return Result{}, nil
		}
		return lintOne(ctx, logger, engine, path), nil
	}

	var files []string
	err = filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fileInfo.IsDir() && hasDesiredExtension(filePath) {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("error walking %s: %w", path, err)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	var (
		mu     sync.Mutex
		result Result
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, filePath := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res := lintOne(ctx, logger, engine, filePath)

			mu.Lock()
			result.Issues = append(result.Issues, res.Issues...)
			result.Failures = append(result.Failures, res.Failures...)
			mu.Unlock()

			_ = bar.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	fmt.Println()
	return result, nil
}

// lintOne runs the engine on a single file. Any error becomes a failure
// record so that one broken file does not stop a run.
func lintOne(ctx context.Context, logger *zap.Logger, engine LintEngine, filePath string) Result {
	issues, err := engine.Run(ctx, filePath)
	if err != nil {
		if logger != nil {
			logger.Error("Error processing file", zap.String("file", filePath), zap.Error(err))
		}
		return Result{Failures: []tt.FileFailure{{Filename: filePath, Err: err}}}
	}
	return Result{Issues: issues}
}

var desiredExtensions = map[string]bool{
	".swift": true,
}

func hasDesiredExtension(path string) bool {
	return desiredExtensions[filepath.Ext(path)]
}

// recognized per-rule configuration keys
var configRuleKeys = map[string]bool{
	"severity": true,
	"enabled":  true,
	"params":   true,
}

// LoadConfig reads and validates a configuration file. Unknown rule-level
// keys are rejected rather than silently ignored, so a typo like
// "severty" surfaces immediately.
func LoadConfig(configurationPath string) (*tt.Config, error) {
	if configurationPath == "" {
		return &tt.Config{}, nil
	}

	data, err := os.ReadFile(configurationPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	var raw struct {
		Name      string                    `yaml:"name"`
		Rules     map[string]map[string]any `yaml:"rules"`
		Overrides []struct {
			Paths []string                  `yaml:"paths"`
			Rules map[string]map[string]any `yaml:"rules"`
		} `yaml:"overrides"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	if err := checkRuleKeys(raw.Rules); err != nil {
		return nil, err
	}
	for _, override := range raw.Overrides {
		if err := checkRuleKeys(override.Rules); err != nil {
			return nil, err
		}
	}

	var config tt.Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	return &config, nil
}

func checkRuleKeys(rules map[string]map[string]any) error {
	for rule, entry := range rules {
		for key := range entry {
			if !configRuleKeys[key] {
				return &tt.ConfigurationError{
					Rule:   rule,
					Key:    key,
					Reason: "unrecognized configuration key",
				}
			}
		}
	}
	return nil
}
