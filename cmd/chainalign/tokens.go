package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"chainalign/internal/ast"
	"chainalign/internal/diagfmt"
	"chainalign/internal/parser"
	"chainalign/internal/source"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [flags] <file>",
	Short: "Dump the classified token stream of a source file",
	Long:  `Tokens prints every token the analyzer sees with its kind, position and line placement`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	tokensCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokensCmd.Flags().String("lang", "", "grammar to use instead of the extension (javascript|typescript|tsx)")
}

func runTokens(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	lang, err := cmd.Flags().GetString("lang")
	if err != nil {
		return fmt.Errorf("failed to get lang flag: %w", err)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(filePath)
	if err != nil {
		return fmt.Errorf("load %s: %w", filePath, err)
	}
	file := fs.Get(id)

	p := parser.New()
	var tree *ast.File
	if lang != "" {
		tree, err = p.ParseAs(parser.Language(lang), file)
	} else {
		tree, err = p.Parse(file)
	}
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if tree.HasErrors {
		logger.Warn("file contains syntax errors", slog.String("path", filePath))
	}

	// Выводим токены в выбранном формате
	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), tree.Tokens)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), tree.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
