// cmd.go - Haupt-CLI Setup und Root Command
// Hauptfunktionen: NewCLI, appendEnvDocs
package cmd

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/containerd/console"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/7blacky7/runewire/envconfig"
	"github.com/7blacky7/runewire/version"
)

// appendEnvDocs - Fuegt Umgebungsvariablen-Dokumentation zum Command hinzu
func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-28s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

func versionHandler(cmd *cobra.Command, _ []string) {
	fmt.Printf("runewire version is %s\n", version.Version)
}

// NewCLI - Erstellt das Haupt-CLI mit allen Commands
func NewCLI() *cobra.Command {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	cobra.EnableCommandSorting = false

	if runtime.GOOS == "windows" && term.IsTerminal(int(os.Stdout.Fd())) {
		console.ConsoleFromFile(os.Stdin) //nolint:errcheck
	}

	rootCmd := &cobra.Command{
		Use:           "runewire",
		Short:         "Streaming UTF-8 codec and segmenter",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			if version, _ := cmd.Flags().GetBool("version"); version {
				versionHandler(cmd, args)
				return
			}

			cmd.Print(cmd.UsageString())
		},
	}

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	serveCmd := newServeCmd()
	linesCmd := newSegmentCmd("lines", "Split input into lines")
	wordsCmd := newSegmentCmd("words", "Split input into words")
	decodeCmd := newDecodeCmd()
	encodeCmd := newEncodeCmd()
	validateCmd := newValidateCmd()

	envVars := envconfig.AsMap()
	for _, cmd := range []*cobra.Command{serveCmd, linesCmd, wordsCmd, decodeCmd} {
		appendEnvDocs(cmd, []envconfig.EnvVar{
			envVars["RUNEWIRE_HOST"],
			envVars["RUNEWIRE_DEBUG"],
			envVars["RUNEWIRE_CHUNK_BYTES"],
		})
	}

	rootCmd.AddCommand(
		serveCmd,
		linesCmd,
		wordsCmd,
		decodeCmd,
		encodeCmd,
		validateCmd,
	)

	return rootCmd
}
