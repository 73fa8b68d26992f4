// Package commands implements the cronstorm command tree.
package commands

import (
	"context"

	"github.com/pterm/pterm"

	"github.com/teranos/cronstorm/config"
	"github.com/teranos/cronstorm/credential"
	"github.com/teranos/cronstorm/errors"
	"github.com/teranos/cronstorm/job"
	"github.com/teranos/cronstorm/logger"
	"github.com/teranos/cronstorm/scheduler"
)

// JobClient is the part of the scheduler client the commands use
type JobClient interface {
	CreateJob(ctx context.Context, spec job.Spec) (*job.Handle, error)
	CancelJob(ctx context.Context, handle job.Handle, apiKey string) (*scheduler.CancelResult, error)
}

// App carries the collaborators a command needs. Nil fields are filled from
// configuration on first use, so tests can inject fakes for any of them.
type App struct {
	Config   *config.Config
	Store    credential.Store
	Client   JobClient
	Prompter credential.Prompter
}

func (a *App) loadConfig() (*config.Config, error) {
	if a.Config != nil {
		return a.Config, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	a.Config = cfg
	return cfg, nil
}

func (a *App) store() (credential.Store, error) {
	if a.Store != nil {
		return a.Store, nil
	}
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	path := cfg.GetCredentialPath()
	if logger.ShouldOutput(logger.Verbosity, logger.OutputInternalOp) {
		logger.Debugw("Using credential file", logger.FieldFile, path)
	}
	a.Store = credential.NewFileStore(path)
	return a.Store, nil
}

func (a *App) client() (JobClient, error) {
	if a.Client != nil {
		return a.Client, nil
	}
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithHint(
			errors.Wrap(err, "invalid configuration"),
			"run 'cronstorm config where' to see which file sets it")
	}
	if logger.ShouldOutput(logger.Verbosity, logger.OutputInternalOp) {
		logger.Debugw("Scheduler client configured", logger.FieldEndpoint, cfg.API.Endpoint,
			"max_redirects", cfg.API.MaxRedirects, "block_private_ip", cfg.API.BlockPrivateIP)
	}
	a.Client = scheduler.NewClient(scheduler.Config{
		Endpoint:       cfg.API.Endpoint,
		BlockPrivateIP: cfg.API.BlockPrivateIP,
		MaxRedirects:   cfg.API.MaxRedirects,
	})
	return a.Client, nil
}

func (a *App) prompter() credential.Prompter {
	if a.Prompter == nil {
		a.Prompter = TerminalPrompter{}
	}
	return a.Prompter
}

// TerminalPrompter reads a secret from the terminal without echoing it
type TerminalPrompter struct{}

func (TerminalPrompter) PromptSecret(label string) (string, error) {
	return pterm.DefaultInteractiveTextInput.WithMask("*").Show(label)
}
