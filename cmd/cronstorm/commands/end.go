package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/cronstorm/credential"
	"github.com/teranos/cronstorm/display"
	"github.com/teranos/cronstorm/job"
)

func newEndCmd(app *App) *cobra.Command {
	var apiKey string
	cmd := &cobra.Command{
		Use:   "end <id>",
		Short: "Cancel a job",
		Long: `Cancel the job with the given id and print the scheduler's reply.

Example:
  cronstorm end c5a5f26b0d65d57d04748828eb4f8fb623b89daf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handle := job.Handle{ID: args[0]}
			if err := handle.Validate(); err != nil {
				return err
			}

			store, err := app.store()
			if err != nil {
				return err
			}
			// An empty key is still sent; the scheduler decides
			key, err := credential.Resolve(apiKey, store)
			if err != nil {
				return err
			}

			client, err := app.client()
			if err != nil {
				return err
			}

			result, err := client.CancelJob(cmd.Context(), handle, key)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if display.ShouldOutputJSON(cmd) {
				return display.OutputJSON(out, result)
			}
			fmt.Fprintln(out, result.Body)
			return nil
		},
	}
	cmd.Flags().StringVar(&apiKey, "apiKey", "", "Use this API key instead of the stored one")
	return cmd
}
