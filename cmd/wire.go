package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/bnema/credit-entry-cli/internal/adapters/render/feedback"
	"github.com/bnema/credit-entry-cli/internal/adapters/transport/formpost"
	"github.com/bnema/credit-entry-cli/internal/application"
	"github.com/bnema/credit-entry-cli/internal/config"
	"github.com/bnema/credit-entry-cli/internal/logger"
	"github.com/bnema/credit-entry-cli/internal/ports"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

type app struct {
	cfg        config.Config
	logger     *slog.Logger
	submitter  ports.Submitter
	scheduler  ports.Scheduler
	httpClient *http.Client
}

func (a *app) wire(configPath string, logOutput io.Writer) error {
	cfg, err := config.Load(viper.New(), configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: logOutput,
	})
	if err != nil {
		return fmt.Errorf("wire logger: %w", err)
	}

	mode, err := formpost.ParseMode(cfg.Endpoint.Mode)
	if err != nil {
		return fmt.Errorf("wire submitter: %w", err)
	}

	if a.httpClient == nil {
		a.httpClient = http.DefaultClient
	}

	a.cfg = cfg
	a.logger = log
	a.scheduler = ports.NextTick{}
	a.submitter = formpost.Client{
		Endpoint:       cfg.Endpoint.URL,
		Mode:           mode,
		HTTPClient:     a.httpClient,
		RequestTimeout: cfg.Endpoint.Timeout,
	}

	log.Debug("configuration loaded",
		slog.String("file", cfg.File),
		slog.Bool("endpoint_configured", cfg.EndpointConfigured()),
		slog.String("mode", string(mode)),
	)

	return nil
}

func (a *app) newController(surface ports.FormSurface) *application.Controller {
	return application.NewController(surface, a.submitter, application.Options{
		Endpoint:  a.cfg.Endpoint.URL,
		Scheduler: a.scheduler,
		Logger:    a.logger,
	})
}

func newTerminalFeedback(out io.Writer, errOut io.Writer, quiet bool) *feedback.Terminal {
	return feedback.NewTerminal(out, errOut, feedback.Options{
		Animate: !quiet && isTerminal(errOut),
		Quiet:   quiet,
	})
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
