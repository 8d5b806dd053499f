package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/woozymasta/xnb"
	"github.com/woozymasta/xnb/internal/batch"
)

var version = "0.1.0"

// ErrCodecUnavailable indicates the requested compression has no codec in
// this build.
var ErrCodecUnavailable = errors.New("compression codec unavailable")

type options struct {
	profile     string
	compression string
	workers     int
	hidef       bool
	premultiply bool
	progress    bool
	verbose     bool
}

// Execute runs the command line with ctx cancelling batch conversions.
func Execute(ctx context.Context) error {
	return NewRootCmd(afero.NewOsFs()).ExecuteContext(ctx)
}

// NewRootCmd builds the command tree on top of fs.
func NewRootCmd(fs afero.Fs) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "png2xnb [flags] <input> [output]",
		Short: "Convert images into XNB Texture2D files",
		Long: `png2xnb wraps images in an XNB Texture2D container that XNA and
MonoGame content managers load directly.

If input is a file, output defaults to the same path with an .xnb
extension. If input is a directory, every image below it is converted
into output (default: the input directory), keeping the layout.`,
		Version:       version,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, fs, opts, args)
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	flags = cmd.Flags()
	flags.StringVarP(&opts.profile, "profile", "p", "reach", "graphics profile (reach, hidef)")
	flags.BoolVar(&opts.hidef, "hidef", false, "shorthand for --profile hidef")
	flags.StringVarP(&opts.compression, "compression", "c", "none", "payload compression ("+strings.Join(compressionNames, ", ")+")")
	flags.BoolVar(&opts.premultiply, "premultiply", true, "premultiply color channels by alpha")
	flags.IntVarP(&opts.workers, "workers", "w", 0, "parallel workers for directories (0 = NumCPU)")
	flags.BoolVar(&opts.progress, "progress", false, "show a progress bar for directories")

	cmd.SetVersionTemplate(fmt.Sprintf(
		"png2xnb %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
	cmd.AddCommand(newInspectCmd(fs))

	return cmd
}

// newLogger returns a development logger in verbose mode and a production
// logger at warn level otherwise.
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	if verbose {
		encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), zapcore.DebugLevel))
	}

	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), zapcore.WarnLevel))
}

func (o *options) encodeOptions() (*xnb.EncodeOptions, error) {
	profile, err := xnb.ParseProfile(o.profile)
	if err != nil {
		return nil, err
	}
	if o.hidef {
		profile = xnb.ProfileHiDef
	}

	codec, err := codecByName(o.compression)
	if err != nil {
		return nil, err
	}

	return &xnb.EncodeOptions{
		Profile:          profile,
		Compressed:       codec != nil,
		Codec:            codec,
		PremultiplyAlpha: o.premultiply,
	}, nil
}

func runConvert(cmd *cobra.Command, fs afero.Fs, opts *options, args []string) error {
	// Probe codecs before touching any file.
	encOpts, err := opts.encodeOptions()
	if err != nil {
		return err
	}

	logger := newLogger(opts.verbose, cmd.ErrOrStderr())
	defer func() { _ = logger.Sync() }()

	input := args[0]
	isDir, err := afero.IsDir(fs, input)
	if err != nil {
		return fmt.Errorf("%s is not a file or directory: %w", input, err)
	}

	conv := batch.NewConverter(fs, encOpts, logger)
	if isDir {
		return runBatch(cmd, fs, conv, opts, input, args, logger)
	}

	output := strings.TrimSuffix(input, filepath.Ext(input)) + ".xnb"
	if len(args) > 1 {
		output = args[1]
	}
	if outIsDir, _ := afero.IsDir(fs, output); outIsDir {
		return fmt.Errorf("%s is a directory", output)
	}

	res, err := conv.ConvertFile(input, output)
	if err != nil {
		return err
	}
	logger.Info("texture written",
		zap.String("output", res.Output),
		zap.String("profile", encOpts.Profile.String()),
		zap.String("compression", opts.compression),
	)

	return nil
}

func runBatch(cmd *cobra.Command, fs afero.Fs, conv *batch.Converter, opts *options, input string, args []string, logger *zap.Logger) error {
	output := input
	if len(args) > 1 {
		output = args[1]
	}

	cfg := batch.Config{InputDir: input, OutputDir: output, Workers: opts.workers}
	if opts.progress {
		cfg.Progress = cmd.ErrOrStderr()
	}

	report, err := batch.New(fs, conv, cfg, logger).Run(cmd.Context())
	if report != nil {
		fmt.Fprintln(cmd.OutOrStdout(), report.String())
		for _, f := range report.Failed {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", f.Source.RelPath, f.Err)
		}
	}

	return err
}
