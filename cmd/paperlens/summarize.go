package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/paperlens/paperlens/internal/engine"
	"github.com/paperlens/paperlens/internal/export"
	"github.com/paperlens/paperlens/internal/parser"
	"github.com/paperlens/paperlens/internal/summarize"
	"github.com/spf13/cobra"
)

var (
	summarizeFormat    string
	summarizeSentences int
	summarizeTitle     string
	summarizeLexicon   string
)

func init() {
	summarizeCmd.Flags().StringVar(&summarizeFormat, "format", "md", "Output format: md, html, json, or bibtex")
	summarizeCmd.Flags().IntVar(&summarizeSentences, "sentences", summarize.DefaultMaxSentences, "Sentences per section summary")
	summarizeCmd.Flags().StringVar(&summarizeTitle, "title", "", "Override the document title")
	summarizeCmd.Flags().StringVar(&summarizeLexicon, "lexicon", "", "YAML file with extra heading aliases")
	rootCmd.AddCommand(summarizeCmd)
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file>",
	Short: "Analyze one document and print the result",
	Long: `Analyze a single document and print the structured result to stdout.

Supported inputs: PDF, plain text, Markdown, HTML, and DOCX.

Examples:
  paperlens summarize paper.pdf
  paperlens summarize paper.pdf --format json
  paperlens summarize notes.md --sentences 5`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func runSummarize(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, err := export.ParseFormat(summarizeFormat)
	if err != nil {
		return err
	}

	ext, err := parser.ForFile(path)
	if err != nil {
		return err
	}
	if pdfExt, ok := ext.(*parser.PDFExtractor); ok {
		pdfExt.FallbackPdftotext = true
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	blocks, extractedTitle, err := ext.Extract(f, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("extracting %s: %w", path, err)
	}

	lexicon := engine.NewLexicon()
	if summarizeLexicon != "" {
		lf, err := os.Open(summarizeLexicon)
		if err != nil {
			return fmt.Errorf("opening lexicon: %w", err)
		}
		defer lf.Close()
		if err := lexicon.ExtendFromYAML(lf); err != nil {
			return fmt.Errorf("loading lexicon: %w", err)
		}
	}

	title := summarizeTitle
	if title == "" {
		title = extractedTitle
	}
	doc, err := engine.Build(cmd.Context(), blocks, engine.Options{
		Title:            title,
		Lexicon:          lexicon,
		SummarySentences: summarizeSentences,
	})
	if err != nil {
		return fmt.Errorf("structuring %s: %w", path, err)
	}

	summaries := summarize.Document(doc, summarizeSentences)
	out, err := export.Render(format, doc, summaries)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
