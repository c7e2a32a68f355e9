// cmd_serve.go - Serve Command
// Startet den Runewire HTTP-Dienst
package cmd

import (
	"net"

	"github.com/spf13/cobra"

	"github.com/7blacky7/runewire/envconfig"
	"github.com/7blacky7/runewire/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"start"},
		Short:   "Start runewire",
		Args:    cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ln, err := net.Listen("tcp", envconfig.Host().Host)
			if err != nil {
				return err
			}

			return server.Serve(ln)
		},
	}
}
