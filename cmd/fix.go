package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/swlin/swlin/internal"
	"github.com/swlin/swlin/internal/fixer"
	"github.com/swlin/swlin/lint"
	"github.com/swlin/swlin/scanner"
)

var (
	dryRun        bool
	maxIterations int
)

var fixCmd = &cobra.Command{
	Use:   "fix [paths...]",
	Short: "Automatically correct issues",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		// initialize the lint engine
		engine, err := lint.New(".", configPath())
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}

		runAutoFix(ctx, logger, engine, args, dryRun, maxIterations)
	},
}

func init() {
	fixCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run in dry-run mode (show corrections without applying them)")
	fixCmd.Flags().IntVar(&maxIterations, "max-iterations", fixer.DefaultMaxIterations, "Maximum correction passes per file")
}

func runAutoFix(ctx context.Context, logger *zap.Logger, engine *internal.Engine, paths []string, dryRun bool, maxIterations int) {
	fix := fixer.New(dryRun, maxIterations)

	for _, path := range paths {
		files, err := scanner.New(path).Scan()
		if err != nil {
			logger.Error("error collecting files", zap.String("path", path), zap.Error(err))
			continue
		}

		for _, file := range files {
			if err := ctx.Err(); err != nil {
				logger.Error("fix cancelled", zap.Error(err))
				return
			}
			if err := fix.Fix(engine, file.Path); err != nil {
				logger.Error("error fixing issues", zap.String("file", file.Path), zap.Error(err))
			}
		}
	}
}
