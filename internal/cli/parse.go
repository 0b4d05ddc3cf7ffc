package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/debatelab/argclinic/internal/export"
	"github.com/debatelab/argclinic/internal/llm"
	"github.com/debatelab/argclinic/internal/model"
	"github.com/debatelab/argclinic/internal/pipeline"
)

var (
	formatLabel string
	resolution  string
	dateRange   string
	outJSON     string
	outMD       string
	provider    string
	llmModel    string
	maxTokens   int
	timeout     time.Duration
	noCache     bool
	threshold   float64
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Analyze a debate argument passage",
	Long: `Parse sends one argument passage to the configured LLM provider and prints
the structured ARESR breakdown. Reads the passage from the given file, or from
stdin when no file (or "-") is given.

Example:
  argclinic parse case.txt --format Policy --resolution "Resolved: ..."
  cat case.txt | argclinic parse --format LD --resolution "Resolved: ..." --md case.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(&formatLabel, "format", "", "debate format ("+formatList()+")")
	parseCmd.Flags().StringVar(&resolution, "resolution", "", "the resolution being argued")
	parseCmd.Flags().StringVar(&dateRange, "date-range", "", "acceptable evidence date range (optional)")
	parseCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	parseCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	parseCmd.Flags().Float64Var(&threshold, "relevance-threshold", model.DefaultRelevanceThreshold, "minimum relevance for topic grouping")

	addProviderFlags(parseCmd)
}

// formatList renders the supported debate formats for flag help and errors
func formatList() string {
	formats := model.Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// addProviderFlags registers the LLM flags shared by parse and batch
func addProviderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&provider, "provider", "anthropic", "LLM provider (anthropic, openai)")
	cmd.Flags().StringVar(&llmModel, "model", "", "LLM model name (provider default when empty)")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 2000, "maximum tokens to sample")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall request timeout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable completion cache")
}

// buildConfig merges defaults, config file/env (via viper), and flags.
// Flags override the config file only when the user actually set them.
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("provider") || cfg.LLM.Provider == "" {
		cfg.LLM.Provider = provider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if flags.Changed("max-tokens") || cfg.LLM.MaxTokens <= 0 {
		cfg.LLM.MaxTokens = maxTokens
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}

	// API keys come from the environment, never from flags
	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		default:
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		}
	}

	return cfg, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}

	format, ok := model.ParseFormat(formatLabel)
	if !ok && formatLabel != "" {
		return fmt.Errorf("unknown format %q (supported: %s)", formatLabel, formatList())
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	parser, err := pipeline.NewParser(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Provider: %s\n", cfg.LLM.Provider)
		fmt.Fprintf(os.Stderr, "Format: %s\n", format)
		fmt.Fprintln(os.Stderr)
	}

	result, err := parser.Parse(ctx, pipeline.Request{
		Text:       text,
		Format:     format,
		Resolution: resolution,
		DateRange:  dateRange,
	})
	if err != nil {
		if errors.Is(err, pipeline.ErrNoArguments) {
			fmt.Println(pipeline.NoArgumentsGuidance)
			return nil
		}
		var fieldErr *pipeline.FieldError
		if errors.As(err, &fieldErr) {
			return fmt.Errorf("%s: %s", fieldErr.Field, fieldErr.Message)
		}
		if errors.Is(err, llm.ErrConfiguration) {
			return err
		}
		return fmt.Errorf("analyze arguments: %w", err)
	}

	printSummary(result.Arguments)

	if outJSON != "" {
		if err := writeJSONFile(outJSON, result); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}

	if outMD != "" {
		doc := export.Markdown(result.Arguments[0], result.Arguments[0].Topic, nil)
		if err := export.Save(outMD, doc); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}

	return nil
}

// readInput reads the passage from the file argument or stdin
func readInput(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read input file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// printSummary prints the parsed arguments, grouped by topic when relevant
func printSummary(args []model.Argument) {
	fmt.Printf("Found %d argument(s)\n\n", len(args))

	for i, arg := range args {
		fmt.Printf("%d. %s\n", i+1, arg.Assertion)
		fmt.Printf("   Reasoning: %s\n", arg.Reasoning)
		fmt.Printf("   Certainty: %.0f%%\n", arg.Certainty*100)
		if arg.Assessment != nil {
			fmt.Printf("   Overall score: %.2f (%s)\n", arg.Assessment.OverallScore.Value, arg.Assessment.OverallScore.Reason)
		}
		for _, ev := range arg.Evidence {
			fmt.Printf("   - %s (%s, %s)\n", ev.Content, ev.Source, ev.Date)
		}
		fmt.Println()
	}

	groups := model.GroupByTopic(args, threshold)
	if len(groups) > 0 {
		fmt.Println("Topics:")
		for _, g := range groups {
			fmt.Printf("  %s (%.0f%% relevant): %d argument(s)\n", g.Topic, g.Relevance*100, len(g.Arguments))
		}
	}
}

func writeJSONFile(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}
