package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/observability"
	"github.com/jonathan/resume-studio/internal/pipeline"
	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/structuring"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a resume PDF from an input file in one shot",
	Long: `Ingests a resume file (PDF, JSON, or plain text), structures it with AI
where needed, renders the chosen layout, and prints it to an A4 PDF.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runBuild,
}

var (
	buildConfigPath string
	buildInput      string
	buildOutput     string
	buildTemplate   string
	buildAPIKey     string
	buildVerbose    bool
)

func init() {
	// Config file flag (processed first)
	buildCmd.Flags().StringVar(&buildConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	buildCmd.Flags().StringVarP(&buildInput, "input", "i", "", "Path to the input resume (PDF, JSON, or plain text)")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Path to write the PDF to (defaults to a name derived from the resume)")
	buildCmd.Flags().StringVarP(&buildTemplate, "template", "t", "", "Layout: classic, modern, or minimalist (default classic)")
	buildCmd.Flags().BoolVarP(&buildVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	buildCmd.Flags().StringVar(&buildAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if buildConfigPath != "" {
		loadedCfg, err := config.LoadConfig(buildConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if buildVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", buildConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("input") {
		cfg.Input = buildInput
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = buildOutput
	}
	if cmd.Flags().Changed("template") {
		cfg.Template = buildTemplate
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = buildAPIKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = buildVerbose
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Input == "" {
		return fmt.Errorf("--input is required")
	}

	selector, err := rendering.ParseSelector(cfg.Template)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(cfg.Input)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	printer := observability.NewPrinter(os.Stdout)

	// The structuring stage only exists when an API key is available; a JSON
	// input never needs it.
	var structure pipeline.StructureFunc
	if cfg.APIKey != "" {
		client, err := llm.NewClient(ctx, nil, cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()
		structure = structuring.New(client).Structure
	}

	fmt.Printf("Step 1/3: Ingesting %s...\n", cfg.Input)
	result, err := pipeline.Run(ctx, pipeline.RunOptions{
		Filename:    filepath.Base(cfg.Input),
		ContentType: "",
		Data:        data,
		Structure:   structure,
		OnProgress: func(e pipeline.ProgressEvent) {
			if cfg.Verbose {
				fmt.Printf("[%s] %s\n", e.Step, e.Message)
			}
		},
	})
	if err != nil {
		return err
	}

	if result.Resume == nil {
		if cfg.Verbose {
			printer.PrintExtraction(result.Text, false)
		}
		return fmt.Errorf("input yielded only %d characters of raw text; provide a longer document or a structured JSON resume", len(result.Text))
	}
	if cfg.Verbose {
		printer.PrintResume(result.Resume)
	}

	fmt.Printf("Step 2/3: Rendering %s layout...\n", selector)
	html, err := rendering.Render(result.Resume, selector)
	if err != nil {
		return err
	}

	fmt.Printf("Step 3/3: Printing to PDF...\n")
	exporter := export.NewChromeExporter()
	exporter.ExecPath = cfg.ChromePath
	pdf, err := exporter.ExportPDF(ctx, html)
	if err != nil {
		return err
	}

	output := cfg.Output
	if output == "" {
		output = export.FileName(result.Resume.Name)
	}
	if err := os.WriteFile(output, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	fmt.Printf("Done! Resume written to %s\n", output)
	return nil
}
