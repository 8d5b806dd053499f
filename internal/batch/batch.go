package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/inhies/go-bytesize"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ErrNoImages indicates the input directory holds no convertible images.
var ErrNoImages = errors.New("no images found")

// ErrAllFailed indicates every image of a batch failed to convert.
var ErrAllFailed = errors.New("all images failed to convert")

// Config holds all parameters for a batch run.
type Config struct {
	// Progress receives a progress bar when non-nil.
	Progress  io.Writer
	InputDir  string
	OutputDir string
	Workers   int
}

// Failure is an image that could not be converted.
type Failure struct {
	Err    error
	Source Source
}

// Report summarizes a batch run.
type Report struct {
	Converted []Result
	Failed    []Failure
	// Skipped counts images not started because the run was canceled.
	Skipped     int
	InputBytes  int64
	OutputBytes int64
}

// String renders a one line summary.
func (r *Report) String() string {
	return fmt.Sprintf("%d converted, %d failed, %d skipped, %s -> %s",
		len(r.Converted), len(r.Failed), r.Skipped,
		bytesize.New(float64(r.InputBytes)), bytesize.New(float64(r.OutputBytes)))
}

// Batch converts every image below a directory.
type Batch struct {
	fs   afero.Fs
	conv *Converter
	log  *zap.Logger
	cfg  Config
}

// New creates a configured batch. A nil logger discards log output.
func New(fs afero.Fs, conv *Converter, cfg Config, logger *zap.Logger) *Batch {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Batch{fs: fs, conv: conv, cfg: cfg, log: logger}
}

type outcome struct {
	err     error
	result  Result
	started bool
}

// Run converts all images. Cancellation is checked before each image; images
// already being encoded finish. A canceled run returns its partial report
// together with the context error.
func (b *Batch) Run(ctx context.Context) (*Report, error) {
	sources, err := Scan(b.fs, b.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", b.cfg.InputDir, err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoImages, b.cfg.InputDir)
	}

	b.log.Info("batch started",
		zap.String("input", b.cfg.InputDir),
		zap.String("output", b.cfg.OutputDir),
		zap.Int("images", len(sources)),
		zap.Int("workers", b.cfg.Workers),
	)

	var bar *progressbar.ProgressBar
	if b.cfg.Progress != nil {
		bar = progressbar.NewOptions(len(sources),
			progressbar.OptionSetWriter(b.cfg.Progress),
			progressbar.OptionSetDescription("converting"),
			progressbar.OptionShowCount(),
		)
	}

	outcomes := make([]outcome, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, b.cfg.Workers)

	for i, src := range sources {
		if ctx.Err() != nil {
			break
		}

		select {
		case sem <- struct{}{}: // acquire
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			defer func() { <-sem }() // release

			res, err := b.conv.ConvertFile(s.Path, OutputPath(b.cfg.OutputDir, s))
			outcomes[idx] = outcome{started: true, result: res, err: err}
			if err != nil {
				b.log.Warn("conversion failed", zap.String("input", s.RelPath), zap.Error(err))
			}
			if bar != nil {
				_ = bar.Add(1)
			}
		}(i, src)
	}
	wg.Wait()
	if bar != nil {
		_ = bar.Finish()
	}

	report := collect(sources, outcomes)
	b.log.Info("batch finished",
		zap.Int("converted", len(report.Converted)),
		zap.Int("failed", len(report.Failed)),
		zap.Int("skipped", report.Skipped),
		zap.String("input_size", bytesize.New(float64(report.InputBytes)).String()),
		zap.String("output_size", bytesize.New(float64(report.OutputBytes)).String()),
	)

	if err := ctx.Err(); err != nil {
		return report, err
	}
	if len(report.Converted) == 0 {
		return report, fmt.Errorf("%w: %d images", ErrAllFailed, len(report.Failed))
	}

	return report, nil
}

func collect(sources []Source, outcomes []outcome) *Report {
	converted := lo.FilterMap(outcomes, func(o outcome, _ int) (Result, bool) {
		return o.result, o.started && o.err == nil
	})
	failed := lo.FilterMap(outcomes, func(o outcome, i int) (Failure, bool) {
		return Failure{Source: sources[i], Err: o.err}, o.started && o.err != nil
	})

	return &Report{
		Converted:   converted,
		Failed:      failed,
		Skipped:     lo.CountBy(outcomes, func(o outcome) bool { return !o.started }),
		InputBytes:  lo.SumBy(converted, func(r Result) int64 { return r.InputSize }),
		OutputBytes: lo.SumBy(converted, func(r Result) int64 { return r.OutputSize }),
	}
}
