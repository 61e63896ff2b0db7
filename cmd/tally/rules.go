package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/rule"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect the categorization rule file",
	}

	check := &cobra.Command{
		Use:   "check [file]",
		Short: "Validate every rule and report all problems at once",
		Long: `Check loads and compiles the rule file, collecting every broken rule
instead of stopping at the first. Analysis itself is fail-fast; use this
command to fix a rule file in one pass.`,
		RunE: runRulesCheck,
	}

	cmd.AddCommand(check)
	return cmd
}

func runRulesCheck(_ *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	path := settings.RuleFile
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("no rule file configured; pass a path or set rules.path")
	}

	diag := rule.Diagnose(config.ExpandPath(path))

	if !diag.Exists {
		fmt.Printf("rule file %s does not exist\n", diag.Path)
		return nil
	}

	fmt.Printf("rule file: %s\n", diag.Path)
	fmt.Printf("rules loaded: %d\n", diag.RuleCount)

	if len(diag.Errors) == 0 {
		fmt.Println("no problems found")
		return nil
	}

	fmt.Printf("problems: %d\n", len(diag.Errors))
	for _, e := range diag.Errors {
		fmt.Printf("  - %s\n", e)
	}
	return fmt.Errorf("%d rule problem(s) found", len(diag.Errors))
}
