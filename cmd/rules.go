package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/swlin/swlin/internal"
	tt "github.com/swlin/swlin/internal/types"
)

var validateCatalog bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the registered rules",
	Run: func(cmd *cobra.Command, args []string) {
		if validateCatalog {
			runCatalogValidation()
			return
		}

		for _, id := range internal.RuleIDs() {
			rule, _ := internal.NewRule(id)
			printDescriptor(rule.Descriptor())
		}
	},
}

func init() {
	rulesCmd.Flags().BoolVar(&validateCatalog, "validate", false, "Check every rule against its own example catalog")
}

func printDescriptor(desc tt.Descriptor) {
	fmt.Printf("%s (%s)\n", desc.ID, desc.Name)
	fmt.Printf("  kind: %s, default severity: %s", desc.Kind, desc.DefaultSeverity)
	if desc.OptIn {
		fmt.Print(", opt-in")
	}
	if len(desc.Corrections) > 0 {
		fmt.Print(", correctable")
	}
	fmt.Println()
	fmt.Printf("  %s\n", desc.Description)
	if len(desc.Params) > 0 {
		fmt.Printf("  params: %v\n", desc.Params)
	}
	fmt.Println()
}

func runCatalogValidation() {
	errs := internal.ValidateAllRules()
	if len(errs) == 0 {
		fmt.Printf("all %d rules passed catalog validation\n", len(internal.RuleIDs()))
		return
	}
	for _, err := range errs {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}
