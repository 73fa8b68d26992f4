package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/cronstorm/credential"
	"github.com/teranos/cronstorm/logger"
)

func newAuthCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Store your API key",
		Long: `Prompt for an API key and store it, replacing any key already stored.

The key is written to credential.path (default ~/.cronstorm/credentials.toml)
with owner-only permissions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuth(cmd, app)
		},
	}
}

func runAuth(cmd *cobra.Command, app *App) error {
	store, err := app.store()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, credential.AcquireHint)

	if _, err := credential.Acquire(app.prompter(), store); err != nil {
		return err
	}

	logger.Infow("API key stored")
	fmt.Fprintln(out, "OK")
	return nil
}
