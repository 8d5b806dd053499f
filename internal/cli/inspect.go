package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/woozymasta/xnb"
)

func newInspectCmd(fs afero.Fs) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.xnb>",
		Short: "Print the header and texture metadata of an XNB file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fs.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()

			tex, err := xnb.Decode(f, nil)
			if err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}

			compression := "none"
			switch {
			case tex.Header.Flags&xnb.FlagCompressedLZX != 0:
				compression = "lzx"
			case tex.Header.Flags&xnb.FlagCompressedLZ4 != 0:
				compression = "lz4"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "platform:    %c\n", tex.Header.Platform)
			fmt.Fprintf(out, "version:     %d\n", tex.Header.Version)
			fmt.Fprintf(out, "profile:     %s\n", tex.Header.Profile())
			fmt.Fprintf(out, "compression: %s\n", compression)
			fmt.Fprintf(out, "file size:   %d\n", tex.Header.FileSize)
			fmt.Fprintf(out, "payload:     %d bytes\n", tex.PayloadSize)
			fmt.Fprintf(out, "reader:      %s (version %d)\n", tex.TypeReader, tex.ReaderVersion)
			fmt.Fprintf(out, "texture:     %dx%d, format %d, %d mip(s)\n", tex.Width, tex.Height, tex.SurfaceFormat, tex.MipCount)

			return nil
		},
	}
}
