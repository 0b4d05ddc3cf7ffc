package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/debatelab/argclinic/internal/model"
	"github.com/debatelab/argclinic/internal/pipeline"
	"github.com/debatelab/argclinic/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>...",
	Short: "Analyze multiple argument files in parallel",
	Long: `Batch parses several argument passages concurrently:
- Each file is one submission sharing the same format and resolution
- Submissions run in parallel with a configurable worker count
- One JSON result file is written per input

Example:
  argclinic batch cases/*.txt --format Policy --resolution "Resolved: ..."
  argclinic batch a.txt b.txt --concurrency 4 --output-dir ./results`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./argclinic-results", "output directory for results")
	batchCmd.Flags().DurationVar(&batchTimeout, "batch-timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&formatLabel, "format", "", "debate format ("+formatList()+")")
	batchCmd.Flags().StringVar(&resolution, "resolution", "", "the resolution being argued")
	batchCmd.Flags().StringVar(&dateRange, "date-range", "", "acceptable evidence date range (optional)")

	addProviderFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
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

	subs := make([]worker.Submission, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		subs = append(subs, worker.Submission{
			Name: path,
			Request: pipeline.Request{
				Text:       string(data),
				Format:     format,
				Resolution: resolution,
				DateRange:  dateRange,
			},
		})
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	pool := worker.NewPool(parser, concurrency)
	outcomes := pool.Run(ctx, subs)

	failed := 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", outcome.Name, outcome.Err)
			continue
		}

		base := filepath.Base(outcome.Name)
		outPath := filepath.Join(outputDir, base+".json")
		if err := writeJSONFile(outPath, outcome.Result); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", outcome.Name, err)
			continue
		}

		fmt.Printf("✓ %s: %d argument(s) → %s\n", outcome.Name, len(outcome.Result.Arguments), outPath)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d submissions failed", failed, len(outcomes))
	}
	return nil
}
