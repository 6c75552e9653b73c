// Package pipeline runs one file at a time through decoding, counting,
// phonetic filtering and report building.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/f3rmion/letters/internal/config"
	"github.com/f3rmion/letters/internal/decoder"
	"github.com/f3rmion/letters/internal/letters"
	"github.com/f3rmion/letters/internal/phonetic"
	"github.com/f3rmion/letters/internal/report"
	"github.com/f3rmion/letters/internal/source"
	"github.com/f3rmion/letters/internal/stats"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Job describes one counting pass over one file.
type Job struct {
	Path   string
	Policy letters.Policy
	Class  letters.Class
	Title  string
}

// Result is the outcome of a Job.
type Result struct {
	Job      Job
	Counted  letters.Stats // Before filtering
	Filtered letters.Stats
	Report   report.Report
}

// Opener opens the byte source for a path.
type Opener func(path string) (source.Source, error)

// Runner executes jobs. It holds no per-job state, so one Runner may run
// several jobs at once.
type Runner struct {
	open Opener
	log  *zap.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithOpener replaces source.Open.
func WithOpener(open Opener) Option {
	return func(r *Runner) { r.open = open }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRunner creates a Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		open: source.Open,
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Pair builds the two standard jobs: single letters from first, doubled
// letters from second, classes and titles taken from cfg.
func Pair(first, second string, cfg *config.Config) []Job {
	return []Job{
		{Path: first, Policy: letters.PolicySingle, Class: cfg.Single.Class, Title: cfg.Single.Title},
		{Path: second, Policy: letters.PolicyDouble, Class: cfg.Double.Class, Title: cfg.Double.Title},
	}
}

// Run executes a single job. The source is closed before Run returns,
// whether or not decoding succeeded.
func (r *Runner) Run(job Job) (Result, error) {
	start := time.Now()
	log := r.log.With(zap.String("path", job.Path), zap.String("policy", string(job.Policy)))

	src, err := r.open(job.Path)
	if err != nil {
		return Result{}, fmt.Errorf("opening %s: %w", job.Path, err)
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			log.Warn("closing source", zap.Error(cerr))
		}
	}()

	dec, err := decoder.NewNamed(src.Name(), src)
	if err != nil {
		return Result{}, fmt.Errorf("reading %s: %w", job.Path, err)
	}
	log.Debug("source opened", zap.Int64("bytes", dec.Size()))

	counted, err := stats.Count(dec, job.Policy)
	if err != nil {
		return Result{}, fmt.Errorf("analyzing %s: %w", job.Path, err)
	}

	filtered := phonetic.Filter(counted, job.Class)
	res := Result{
		Job:      job,
		Counted:  counted,
		Filtered: filtered,
		Report:   report.Build(filtered),
	}

	log.Debug("pass complete",
		zap.Int("keys", len(counted)),
		zap.Int("kept", len(filtered)),
		zap.Int("total", res.Report.Total),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

// RunAll executes jobs and returns results in job order. Jobs run one
// after another unless parallel is set, in which case each gets its own
// goroutine and the first failure stops jobs that have not started yet.
func (r *Runner) RunAll(ctx context.Context, jobs []Job, parallel bool) ([]Result, error) {
	results := make([]Result, len(jobs))

	if !parallel {
		for i, job := range jobs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			res, err := r.Run(job)
			if err != nil {
				return nil, err
			}
			results[i] = res
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.Run(job)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Write sends every result to sink in order.
func Write(sink report.Sink, results []Result) error {
	for _, res := range results {
		if err := sink.Write(res.Job.Title, res.Report); err != nil {
			return err
		}
	}
	return nil
}
