// cmd_codepoints.go - Decode, Encode und Validate Commands
// Codepoint-Inspektion, Kodierung aus Codepoint-Listen und reine Validierung
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/7blacky7/runewire/api"
	"github.com/7blacky7/runewire/codec"
	"github.com/7blacky7/runewire/envconfig"
	"github.com/7blacky7/runewire/pipeline"
)

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [FILE]",
		Short: "List the code points of a UTF-8 stream",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()

			out := bufio.NewWriter(os.Stdout)
			defer out.Flush()

			printRunes := func(text []rune) error {
				for _, r := range text {
					if _, err := fmt.Fprintf(out, "U+%04X\t%c\n", r, r); err != nil {
						return err
					}
				}
				return nil
			}

			if remote, _ := cmd.Flags().GetBool("remote"); remote {
				client, err := api.ClientFromEnvironment()
				if err != nil {
					return err
				}

				return client.Decode(cmd.Context(), in, func(resp api.DecodeResponse) error {
					return printRunes([]rune(resp.Text))
				})
			}

			cfg := pipeline.Config{ChunkBytes: int(envconfig.ChunkBytes())}
			return pipeline.Run(cmd.Context(), in, pipeline.Raw, cfg, printRunes)
		},
	}

	cmd.Flags().Bool("remote", false, "Decode via a running runewire server (RUNEWIRE_HOST)")
	return cmd
}

// parseCodepoint akzeptiert U+XXXX, 0xXXXX und Dezimalschreibweise
func parseCodepoint(s string) (rune, error) {
	tok := strings.ToLower(strings.TrimSpace(s))

	var n uint64
	var err error
	switch {
	case strings.HasPrefix(tok, "u+"):
		n, err = strconv.ParseUint(tok[2:], 16, 32)
	case strings.HasPrefix(tok, "0x"):
		n, err = strconv.ParseUint(tok[2:], 16, 32)
	default:
		n, err = strconv.ParseUint(tok, 10, 32)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid code point %q: %w", s, err)
	}

	return rune(n), nil
}

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode [CODEPOINT...]",
		Short: "Encode code points (U+XXXX, 0xXXXX or decimal) to UTF-8 on stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens := args
			if len(tokens) == 0 {
				in, err := openInput(nil)
				if err != nil {
					return err
				}
				defer in.Close()

				// tolerant list input: strip a BOM, replace stray bytes
				tr := unicode.BOMOverride(unicode.UTF8.NewDecoder())
				scanner := bufio.NewScanner(transform.NewReader(in, tr))
				scanner.Split(bufio.ScanWords)
				for scanner.Scan() {
					tokens = append(tokens, scanner.Text())
				}
				if err := scanner.Err(); err != nil {
					return err
				}
			}

			text := make([]rune, 0, len(tokens))
			for _, tok := range tokens {
				r, err := parseCodepoint(tok)
				if err != nil {
					return err
				}
				text = append(text, r)
			}

			enc := codec.Encoder{MaxBytes: int(envconfig.MaxEncodeBytes())}
			b, err := enc.Encode(text)
			if err != nil {
				return err
			}

			_, err = os.Stdout.Write(b)
			return err
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [FILE]",
		Short: "Check that a stream is well-formed UTF-8",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()

			n, err := io.Copy(io.Discard, transform.NewReader(in, codec.Validator{}))
			if err != nil {
				return err
			}

			fmt.Printf("OK: %d valid UTF-8 bytes\n", n)
			return nil
		},
	}
}
