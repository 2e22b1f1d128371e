package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"arcucheck/internal/diag"
	"arcucheck/internal/parser"
	"arcucheck/internal/report"
	"arcucheck/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.puml>",
	Short: "Parse a diagram and print the recognised model",
	Long: `Parse a PlantUML class diagram and print what the parser recognised.

The tree output lists classes, interfaces, members and relations; with
--format=json the model is written as JSON instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	file, err := source.Load(args[0])
	if err != nil {
		return err
	}
	bag := diag.NewBag(100)
	diagram, err := parser.ParseFile(file, parser.Options{
		Reporter: diag.NewDedupReporter(diag.BagReporter{Bag: bag}),
	})
	printDiagnostics(cmd, bag)
	if err != nil {
		return err
	}

	if format == string(report.FormatJSON) {
		return report.DiagramAsJSON(cmd.OutOrStdout(), diagram)
	}
	return report.DiagramAsTree(cmd.OutOrStdout(), diagram)
}
