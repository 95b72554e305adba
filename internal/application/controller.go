package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bnema/credit-entry-cli/internal/domain"
	"github.com/bnema/credit-entry-cli/internal/ports"
	"github.com/google/uuid"
)

var ErrSubmissionInFlight = errors.New("submission already in flight")

type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
)

type Options struct {
	// Endpoint is only checked for presence here; the submitter owns the URL.
	Endpoint     string
	Scheduler    ports.Scheduler
	Logger       *slog.Logger
	NewAttemptID func() string
}

// Controller turns the input surface into one form submission at a time.
type Controller struct {
	surface    ports.FormSurface
	submitter  ports.Submitter
	scheduler  ports.Scheduler
	logger     *slog.Logger
	newID      func() string
	configured bool

	inFlight atomic.Bool
	stateMu  sync.RWMutex
	state    State

	// errorMu serializes writes to the error region; errorGen counts them so a
	// deferred clear can tell whether anything was shown after it was scheduled.
	errorMu  sync.Mutex
	errorGen uint64
}

func NewController(surface ports.FormSurface, submitter ports.Submitter, opts Options) *Controller {
	if opts.Scheduler == nil {
		opts.Scheduler = ports.NextTick{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.NewAttemptID == nil {
		opts.NewAttemptID = uuid.NewString
	}

	return &Controller{
		surface:    surface,
		submitter:  submitter,
		scheduler:  opts.Scheduler,
		logger:     opts.Logger,
		newID:      opts.NewAttemptID,
		configured: strings.TrimSpace(opts.Endpoint) != "",
		state:      StateIdle,
	}
}

func (c *Controller) State() State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()

	return c.state
}

func (c *Controller) setState(state State) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	c.state = state
}

func (c *Controller) Configured() bool {
	return c.configured
}

// Notice returns the persistent configuration notice, or "" when an endpoint is set.
func (c *Controller) Notice() string {
	if c.configured {
		return ""
	}
	return ConfigNotice
}

// Preview builds and validates the record without contacting the endpoint.
func (c *Controller) Preview() (domain.SubmissionRecord, string) {
	record := domain.CollectFormData(ports.ReadValues(c.surface))
	return record, domain.Validate(record)
}

// Submit runs one submission attempt. The only error it returns is
// ErrSubmissionInFlight; every other failure is reported through the outcome
// and the feedback surface.
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return Outcome{}, ErrSubmissionInFlight
	}
	defer c.inFlight.Store(false)

	c.bumpErrorGeneration()

	outcome := Outcome{AttemptID: c.newID()}
	log := c.logger.With(slog.String("attempt_id", outcome.AttemptID))

	c.setState(StateValidating)
	record, validationErr := c.Preview()
	outcome.Record = record

	if validationErr != "" {
		c.showError(validationErr)
		c.setState(StateIdle)
		log.Info("submission blocked by validation", slog.String("reason", validationErr))
		outcome.Kind = OutcomeInvalid
		outcome.Message = validationErr
		return outcome, nil
	}
	c.showError("")

	if !c.configured {
		c.showError(MessageEndpointNotConfigured)
		c.setState(StateIdle)
		log.Warn("submission blocked", slog.Any("error", domain.ErrEndpointNotConfigured))
		outcome.Kind = OutcomeConfigError
		outcome.Message = MessageEndpointNotConfigured
		return outcome, nil
	}

	c.setState(StateSubmitting)
	c.surface.SetBusy(true)
	defer func() {
		c.surface.SetBusy(false)
		c.setState(StateIdle)
	}()

	log.Debug("posting submission",
		slog.String("plan", record.PlanPattern),
		slog.String("credit_action", string(record.CreditAction)),
		slog.String("credit_count", record.CreditCount),
	)

	resp, err := c.submitter.Submit(ctx, record.FormFields())
	if err != nil {
		outcome.Kind = OutcomeNetworkError
		outcome.Message = networkErrorMessage(err)
		c.showError(outcome.Message)
		log.Error("submission failed", slog.Any("error", err))
		return outcome, nil
	}

	outcome.Opaque = resp.Opaque
	outcome.StatusCode = resp.StatusCode
	outcome.Kind, outcome.Message = interpretResponse(resp)

	if !outcome.Saved() {
		c.showError(outcome.Message)
		log.Warn("submission rejected",
			slog.Int("status", resp.StatusCode),
			slog.String("message", outcome.Message),
		)
		return outcome, nil
	}

	c.surface.ShowToast(outcome.Message)
	if err := c.Reset(); err != nil {
		log.Warn("clear input surface after save", slog.Any("error", err))
	}
	log.Info("submission saved", slog.Bool("opaque", resp.Opaque))

	return outcome, nil
}

// Reset clears the input surface and, on the next tick, the error region.
// The clear is skipped when a submission starts or an error is shown first.
func (c *Controller) Reset() error {
	err := c.surface.Reset()

	c.errorMu.Lock()
	scheduled := c.errorGen
	c.errorMu.Unlock()

	c.scheduler.Defer(func() {
		c.errorMu.Lock()
		defer c.errorMu.Unlock()

		if c.errorGen != scheduled {
			return
		}
		c.surface.ShowError("")
	})

	return err
}

func (c *Controller) showError(message string) {
	c.errorMu.Lock()
	defer c.errorMu.Unlock()

	c.errorGen++
	c.surface.ShowError(message)
}

func (c *Controller) bumpErrorGeneration() {
	c.errorMu.Lock()
	defer c.errorMu.Unlock()

	c.errorGen++
}
