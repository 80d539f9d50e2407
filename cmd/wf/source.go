package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handlebauer/workflowy-scraper/internal/config"
	"github.com/handlebauer/workflowy-scraper/internal/output"
	"github.com/handlebauer/workflowy-scraper/internal/workflowy"
)

// envBaseURL overrides the WorkFlowy origin, for mirrors and tests.
const envBaseURL = "WF_BASE_URL"

const loginHint = "Run `wf login <session-id>` or set " + config.EnvSessionID + "."

// deps holds the collaborators tests replace.
type deps struct {
	httpClient workflowy.HTTPDoer
	store      *config.Store
}

func (d *deps) configStore() *config.Store {
	if d != nil && d.store != nil {
		return d.store
	}
	return config.DefaultStore()
}

func (d *deps) doer() workflowy.HTTPDoer {
	if d == nil {
		return nil
	}
	return d.httpClient
}

// sourceFlags selects where the payload comes from.
type sourceFlags struct {
	file    string
	session string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Read a saved payload from this JSON file instead of fetching")
	cmd.Flags().StringVar(&f.session, "session", "", "WorkFlowy session id (default: $"+config.EnvSessionID+", then config)")
}

// source loads InitData from a file or from WorkFlowy.
type source struct {
	deps   *deps
	flags  sourceFlags
	logger *zap.Logger
	// progress receives the spinner; nil disables it.
	progress io.Writer
}

// newSource builds the source for cmd. The spinner is shown on stderr
// unless the printer is in JSON mode.
func newSource(cmd *cobra.Command, printer *output.Printer, d *deps, flags sourceFlags) *source {
	src := &source{deps: d, flags: flags, logger: loggerFrom(cmd)}
	if !printer.IsJSON() {
		src.progress = printer.ErrWriter()
	}
	return src
}

// load returns the payload. All errors are *output.ExitError.
func (s *source) load(ctx context.Context) (*workflowy.InitData, error) {
	if s.flags.file != "" {
		return s.loadFile()
	}
	return s.fetch(ctx)
}

func (s *source) loadFile() (*workflowy.InitData, error) {
	s.logger.Debug("reading payload from file", zap.String("path", s.flags.file))

	data, err := workflowy.LoadFile(s.flags.file)
	if err != nil {
		return nil, output.NewUserErrorWithCause(fmt.Sprintf("failed to read %s: %v", s.flags.file, err), err)
	}
	return data, nil
}

func (s *source) fetch(ctx context.Context) (*workflowy.InitData, error) {
	data, _, err := s.fetchPayload(ctx)
	return data, err
}

// fetchPayload downloads the payload and also returns the response body as
// received.
func (s *source) fetchPayload(ctx context.Context) (*workflowy.InitData, []byte, error) {
	session, err := resolveSession(s.flags.session, s.deps.configStore())
	if err != nil {
		return nil, nil, err
	}

	client := workflowy.NewClient(session).
		WithBaseURL(os.Getenv(envBaseURL)).
		WithLogger(s.logger)
	if doer := s.deps.doer(); doer != nil {
		client.WithHTTPClient(doer)
	}

	var spinner *output.Spinner
	if s.progress != nil {
		spinner = output.NewSpinner(s.progress, "Fetching from WorkFlowy")
		spinner.Start()
	}
	data, body, err := client.FetchPayload(ctx)
	if err != nil {
		if spinner != nil {
			spinner.Stop()
		}
		return nil, nil, classifyFetchError(err)
	}

	auxTrees := len(data.ProjectTreeData.AuxiliaryProjectTreeInfos)
	if spinner != nil {
		spinner.StopWithMessage(fmt.Sprintf("Fetched %d shared trees (%d bytes)", auxTrees, len(body)))
	}
	s.logger.Debug("fetched payload",
		zap.Int("aux_trees", auxTrees),
		zap.Int("bytes", len(body)),
	)
	return data, body, nil
}

// resolveSession picks the session id: flag, then environment, then config.
func resolveSession(flagValue string, store *config.Store) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	session, err := store.ResolveSessionID()
	if err != nil {
		return "", output.NewUserErrorWithCause(
			fmt.Sprintf("failed to read config %s: %v", store.Path(), err), err)
	}
	if session == "" {
		return "", output.NewAuthError("no WorkFlowy session id configured", nil).WithHint(loginHint)
	}
	return session, nil
}

// classifyFetchError maps client errors to exit codes.
func classifyFetchError(err error) *output.ExitError {
	switch {
	case errors.Is(err, workflowy.ErrUnauthorized):
		return output.NewAuthError("WorkFlowy rejected the session id", err).WithHint(loginHint)
	case errors.Is(err, workflowy.ErrUnexpectedResponse):
		return output.NewSystemErrorWithCause(fmt.Sprintf("unexpected response from WorkFlowy: %v", err), err).
			WithHint("The session may have expired. " + loginHint)
	default:
		return output.NewSystemErrorWithCause(fmt.Sprintf("failed to fetch WorkFlowy data: %v", err), err)
	}
}

// fail reports err through the printer and returns it for cobra.
func fail(printer *output.Printer, err error) error {
	printer.Error(err)
	return err
}

type loggerKey struct{}

// setLogger stores logger in the command's context for RunE to pick up.
func setLogger(cmd *cobra.Command, logger *zap.Logger) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, loggerKey{}, logger))
}

// loggerFrom returns the logger set by the root command, or a no-op logger.
func loggerFrom(cmd *cobra.Command) *zap.Logger {
	if ctx := cmd.Context(); ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
			return logger
		}
	}
	return zap.NewNop()
}
