// Package worker runs multiple submissions through the parse pipeline
// concurrently. Submissions are independent, so no coordination is needed
// beyond bounding in-flight work.
package worker

import (
	"context"
	"sync"

	"github.com/debatelab/argclinic/internal/pipeline"
)

// Submission is one queued parse job, tagged with its origin for reporting
type Submission struct {
	Name    string // file name or other caller-chosen label
	Request pipeline.Request
}

// Outcome pairs a submission with its parse result or failure
type Outcome struct {
	Name   string
	Result *pipeline.Result
	Err    error
}

// Pool bounds concurrent parse calls against the provider
type Pool struct {
	parser  *pipeline.Parser
	workers int
}

// NewPool creates a pool driving the given parser
func NewPool(parser *pipeline.Parser, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{parser: parser, workers: workers}
}

// Run parses all submissions and returns outcomes in submission order.
// Cancelling the context marks remaining submissions as failed.
func (p *Pool) Run(ctx context.Context, subs []Submission) []Outcome {
	outcomes := make([]Outcome, len(subs))
	semaphore := make(chan struct{}, p.workers)
	var wg sync.WaitGroup

	for i, sub := range subs {
		wg.Add(1)
		go func(idx int, s Submission) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				outcomes[idx] = Outcome{Name: s.Name, Err: ctx.Err()}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			result, err := p.parser.Parse(ctx, s.Request)
			outcomes[idx] = Outcome{Name: s.Name, Result: result, Err: err}
		}(i, sub)
	}

	wg.Wait()
	return outcomes
}
