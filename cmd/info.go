package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/mfimport/internal/adapters/render/outcome"
)

func newInfoCmd(app *app) *cobra.Command {
	var creds credentialOptions
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "info <quickkey|link>",
		Short: "Show metadata of a file by quick key or share link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := creds.resolve(cmd)
			if err != nil {
				return err
			}

			client, service, err := app.session()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			if err := login(cmd, client, resolved, asJSON); err != nil {
				return err
			}

			info, err := service.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, info)
			}

			rendered, err := outcome.FileInfo(info, service.FileLink(info.QuickKey))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	bindCredentialFlags(cmd, &creds)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
