// cmd_segment.go - Lines und Words Commands
// Segmentiert Dateien oder Stdin lokal oder gegen einen laufenden Server
package cmd

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/7blacky7/runewire/api"
	"github.com/7blacky7/runewire/envconfig"
	"github.com/7blacky7/runewire/pipeline"
)

var errNoInput = errors.New("no input: pass a file or pipe data on stdin")

// openInput liefert die Eingabequelle: Datei-Argument oder Stdin.
// Ein interaktives Terminal ohne Datei-Argument ist ein Bedienfehler.
func openInput(args []string) (io.ReadCloser, error) {
	if len(args) == 1 {
		return os.Open(args[0])
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errNoInput
	}

	return io.NopCloser(os.Stdin), nil
}

func newSegmentCmd(mode, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   mode + " [FILE]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()

			out := bufio.NewWriter(os.Stdout)
			defer out.Flush()

			if remote, _ := cmd.Flags().GetBool("remote"); remote {
				client, err := api.ClientFromEnvironment()
				if err != nil {
					return err
				}

				return client.Segment(cmd.Context(), in, mode, func(resp api.SegmentResponse) error {
					if resp.Done {
						return nil
					}
					_, err := out.WriteString(resp.Segment + "\n")
					return err
				})
			}

			m, err := pipeline.ParseMode(mode)
			if err != nil {
				return err
			}

			cfg := pipeline.Config{
				ChunkBytes: int(envconfig.ChunkBytes()),
				StripBOM:   true,
			}
			return pipeline.Run(cmd.Context(), in, m, cfg, func(seg []rune) error {
				_, err := out.WriteString(string(seg) + "\n")
				return err
			})
		},
	}

	cmd.Flags().Bool("remote", false, "Segment via a running runewire server (RUNEWIRE_HOST)")
	return cmd
}
