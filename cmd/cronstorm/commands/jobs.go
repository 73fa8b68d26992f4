package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/teranos/cronstorm/credential"
	"github.com/teranos/cronstorm/display"
	"github.com/teranos/cronstorm/errors"
	"github.com/teranos/cronstorm/grammar"
	"github.com/teranos/cronstorm/job"
	"github.com/teranos/cronstorm/logger"
)

// jobFlags are the options shared by begin and every
type jobFlags struct {
	body        string
	contentType string
	apiKey      string
	dryRun      bool
}

func (f *jobFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.body, "body", "", "Request body; with a JSON content type this is a data literal such as {a: 1}")
	cmd.Flags().StringVar(&f.contentType, "contentType", "", "MIME type sent as the Content-Type header (default from job.content_type)")
	cmd.Flags().StringVar(&f.apiKey, "apiKey", "", "Use this API key instead of the stored one")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Validate and print the job without submitting it")
}

func newBeginCmd(app *App) *cobra.Command {
	flags := &jobFlags{}
	cmd := &cobra.Command{
		Use:   grammar.BeginRule.Usage(),
		Short: "Schedule a recurring request, method first",
		Long: `Schedule a recurring HTTP request.

Units are second, minute, hour, day, week or month, singular or plural.

Example:
  ` + grammar.BeginRule.Example,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, app, grammar.BeginRule, args, flags)
		},
	}
	flags.register(cmd)
	cmd.SetFlagErrorFunc(countFlagError(grammar.BeginRule))
	return cmd
}

func newEveryCmd(app *App) *cobra.Command {
	flags := &jobFlags{}
	cmd := &cobra.Command{
		Use:   grammar.EveryRule.Usage(),
		Short: "Schedule a recurring request, schedule first",
		Long: `Schedule a recurring HTTP request. Same as begin with the schedule written first.

Example:
  ` + grammar.EveryRule.Example,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, app, grammar.EveryRule, args, flags)
		},
	}
	flags.register(cmd)
	cmd.SetFlagErrorFunc(countFlagError(grammar.EveryRule))
	return cmd
}

// countFlagError reports a negative count such as "-1", which pflag reads as a
// shorthand flag, as the validation error of the count it stands in for.
func countFlagError(rule grammar.Rule) func(*cobra.Command, error) error {
	return func(cmd *cobra.Command, err error) error {
		var notExist *pflag.NotExistError
		if !errors.As(err, &notExist) {
			return err
		}
		token := "-" + notExist.GetSpecifiedShortnames()
		if _, perr := strconv.ParseFloat(token, 64); perr != nil {
			return err
		}

		// pflag has collected the positionals that precede the bad token.
		field, ok := rule.FieldAt(len(cmd.Flags().Args()))
		if !ok || (field != job.FieldIntervalCount && field != job.FieldDurationCount) {
			return err
		}
		if _, cerr := job.ParseCount(field, token); cerr != nil {
			return cerr
		}
		return err
	}
}

func runCreate(cmd *cobra.Command, app *App, rule grammar.Rule, args []string, flags *jobFlags) error {
	raw, err := rule.Match(args)
	if err != nil {
		cmd.Usage()
		return err
	}

	spec, err := buildSpec(cmd, app, raw, flags.body, flags.contentType)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flags.dryRun {
		return printSpec(cmd, out, spec)
	}

	store, err := app.store()
	if err != nil {
		return err
	}
	spec.APIKey, err = credential.Resolve(flags.apiKey, store)
	if err != nil {
		return err
	}

	client, err := app.client()
	if err != nil {
		return err
	}

	handle, err := client.CreateJob(cmd.Context(), spec)
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(out, handle)
	}
	fmt.Fprintln(out, handle.ID)
	return nil
}

// buildSpec applies --body and --contentType to raw and normalizes it.
// An unset --contentType falls back to job.content_type from config.
func buildSpec(cmd *cobra.Command, app *App, raw *job.Raw, body, contentType string) (job.Spec, error) {
	if cmd.Flags().Changed("body") {
		raw.Body = &body
	}

	raw.ContentType = contentType
	if raw.ContentType == "" {
		if cfg, err := app.loadConfig(); err == nil {
			raw.ContentType = cfg.GetContentType()
		}
	}

	spec, err := job.Normalize(*raw)
	if err != nil {
		return job.Spec{}, err
	}

	if logger.ShouldOutput(logger.Verbosity, logger.OutputJobSpec) {
		logger.Debugw("Normalized job", "spec", spec)
	}
	return spec, nil
}

// specOutput is the --json form of a normalized job
type specOutput struct {
	Spec          job.Spec `json:"spec"`
	EstimatedRuns int64    `json:"estimatedRuns"`
	Command       string   `json:"command"`
}

func printSpec(cmd *cobra.Command, w io.Writer, spec job.Spec) error {
	command := "cronstorm " + shellquote.Join(grammar.Canonical(spec)...)
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(w, specOutput{Spec: spec, EstimatedRuns: spec.EstimatedRuns(), Command: command})
	}

	fmt.Fprintf(w, "method:       %s\n", spec.Method)
	fmt.Fprintf(w, "url:          %s\n", spec.URL)
	fmt.Fprintf(w, "every:        %d %s\n", spec.IntervalCount, spec.Interval)
	fmt.Fprintf(w, "for:          %d %s\n", spec.DurationCount, spec.Duration)
	if spec.Body != nil {
		fmt.Fprintf(w, "body:         %s\n", *spec.Body)
	}
	fmt.Fprintf(w, "content type: %s\n", spec.ContentType)
	fmt.Fprintf(w, "runs:         about %d\n", spec.EstimatedRuns())
	fmt.Fprintf(w, "command:      %s\n", command)
	return nil
}

func newCheckCmd(app *App) *cobra.Command {
	var body, contentType string
	cmd := &cobra.Command{
		Use:   `check "<phrase>"`,
		Short: "Validate a job phrase without submitting it",
		Long: `Parse one quoted phrase in either form, normalize it, and print the
resulting job along with its canonical begin command.

Examples:
  cronstorm check "every 9 seconds for 5 weeks patch https://a.b"
  cronstorm check "begin post http://a.b every 1 seconds for 9 months" --body '{a: 1}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := shellquote.Split(args[0])
			if err != nil {
				return errors.Wrap(err, "failed to split phrase")
			}
			if len(tokens) > 0 && strings.EqualFold(tokens[0], "cronstorm") {
				tokens = tokens[1:]
			}

			raw, err := grammar.Parse(tokens)
			if err != nil {
				return err
			}

			spec, err := buildSpec(cmd, app, raw, body, contentType)
			if err != nil {
				return err
			}
			return printSpec(cmd, cmd.OutOrStdout(), spec)
		},
	}
	cmd.Flags().StringVar(&body, "body", "", "Request body to validate with the phrase")
	cmd.Flags().StringVar(&contentType, "contentType", "", "MIME type for the body")
	return cmd
}
