package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/teranos/cronstorm/config"
	"github.com/teranos/cronstorm/credential"
	"github.com/teranos/cronstorm/errors"
	"github.com/teranos/cronstorm/grammar"
	"github.com/teranos/cronstorm/logger"
)

// NewRootCmd builds the cronstorm command tree around app
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "cronstorm",
		Short: "Schedule recurring HTTP requests",
		Long: `cronstorm - Schedule recurring HTTP requests with a remote scheduler.

Describe a repeating HTTP call and cronstorm submits it, printing the job id
you later pass to "cronstorm end".

Without a command, checks for a stored API key and asks for one if missing.

Examples:
  cronstorm begin post http://a.b every 1 seconds for 9 months
  cronstorm every 9 seconds for 5 weeks patch https://a.b
  cronstorm end c5a5f26b0d65d57d04748828eb4f8fb623b89daf`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbosity, _ := cmd.Flags().GetCount("verbose")
			jsonLogs := false
			// Config errors surface from the command that needs config, not here
			cfg, cfgErr := app.loadConfig()
			if cfgErr == nil {
				jsonLogs = cfg.Log.JSON
			}
			if err := logger.Initialize(verbosity, jsonLogs); err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}

			if logger.ShouldOutput(verbosity, logger.OutputConfig) {
				for _, f := range config.MergedFiles {
					logger.Infow("Config file merged", logger.FieldFile, f.Path, "source", f.Source)
				}
			}
			if cfgErr != nil {
				logger.Debugw("Config not loaded", logger.FieldError, cfgErr)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDefault(cmd, app)
		},
	}

	root.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	root.PersistentFlags().Bool("json", false, "Output results as JSON")

	root.AddCommand(
		newAuthCmd(app),
		newBeginCmd(app),
		newEveryCmd(app),
		newEndCmd(app),
		newCheckCmd(app),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// runDefault reports an existing key or runs the auth flow
func runDefault(cmd *cobra.Command, app *App) error {
	store, err := app.store()
	if err != nil {
		return err
	}
	if _, ok, err := store.Get(); err != nil {
		return err
	} else if ok {
		fmt.Fprintln(cmd.OutOrStdout(), `API key is set. Try "cronstorm begin"`)
		return nil
	}
	return runAuth(cmd, app)
}

// ReportError writes err to w the way a user should see it
func ReportError(w io.Writer, err error) {
	var parseErr *grammar.ParseError
	switch {
	case errors.As(err, &parseErr):
		fmt.Fprintln(w, parseErr.FormatError(grammar.ErrorContextTerminal))
	case errors.IsRemoteError(err):
		// the scheduler's own words, untranslated
		fmt.Fprintln(w, err.Error())
	case errors.IsCredentialMissingError(err):
		fmt.Fprintf(w, "Error: %v\n", err)
		fmt.Fprintln(w, credential.AcquireHint)
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(w, "Hint: %s\n", hint)
		}
	}
}
