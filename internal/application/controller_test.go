package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bnema/credit-entry-cli/internal/adapters/surface/memory"
	"github.com/bnema/credit-entry-cli/internal/domain"
	"github.com/bnema/credit-entry-cli/internal/ports"
	"github.com/bnema/credit-entry-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testEndpoint = "https://script.example.com/exec"

type recordingFeedback struct {
	mu        sync.Mutex
	busy      []bool
	errorText string
	errors    []string
	toasts    []string
}

func (f *recordingFeedback) SetBusy(busy bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = append(f.busy, busy)
}

func (f *recordingFeedback) ShowError(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errorText = message
	f.errors = append(f.errors, message)
}

func (f *recordingFeedback) ShowToast(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toasts = append(f.toasts, message)
}

func (f *recordingFeedback) currentError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errorText
}

type queuedScheduler struct {
	pending []func()
}

func (s *queuedScheduler) Defer(fn func()) {
	s.pending = append(s.pending, fn)
}

func (s *queuedScheduler) flush() {
	pending := s.pending
	s.pending = nil
	for _, fn := range pending {
		fn()
	}
}

type fixture struct {
	input     *memory.Surface
	feedback  *recordingFeedback
	scheduler *queuedScheduler
	submitter *mocks.MockSubmitter
	ctrl      *Controller
}

func newFixture(t *testing.T, values domain.FormValues, endpoint string) fixture {
	t.Helper()

	f := fixture{
		input:     memory.NewSurface(values),
		feedback:  &recordingFeedback{},
		scheduler: &queuedScheduler{},
		submitter: mocks.NewMockSubmitter(t),
	}
	f.ctrl = NewController(ports.Compose(f.input, f.feedback), f.submitter, Options{
		Endpoint:     endpoint,
		Scheduler:    f.scheduler,
		NewAttemptID: func() string { return "attempt-1" },
	})

	return f
}

func aliceValues() domain.FormValues {
	return domain.FormValues{Name: "Alice", CurrentCredits: "6", DurationSelection: "4-2-2"}
}

func TestControllerSubmitOpaqueResponseCountsAsSaved(t *testing.T) {
	f := newFixture(t, aliceValues(), testEndpoint)

	f.submitter.EXPECT().
		Submit(mock.Anything, mock.Anything).
		Run(func(_ context.Context, fields []domain.FormField) {
			assert.Equal(t, domain.FormField{Key: "creditAction", Value: "add"}, fields[6])
			assert.Equal(t, domain.FormField{Key: "creditCount", Value: "2"}, fields[7])
		}).
		Return(ports.SubmitResponse{Opaque: true}, nil)

	outcome, err := f.ctrl.Submit(context.Background())
	require.NoError(t, err)

	assert.True(t, outcome.Saved())
	assert.True(t, outcome.Opaque)
	assert.Equal(t, "attempt-1", outcome.AttemptID)
	assert.Equal(t, []string{ToastSavedOpaque}, f.feedback.toasts)
	assert.Equal(t, domain.FormValues{}, f.input.Values())
	assert.Equal(t, []bool{true, false}, f.feedback.busy)
	assert.Equal(t, StateIdle, f.ctrl.State())
}

func TestControllerSubmitJSONOkCountsAsSaved(t *testing.T) {
	f := newFixture(t, aliceValues(), testEndpoint)
	f.submitter.EXPECT().Submit(mock.Anything, mock.Anything).
		Return(ports.SubmitResponse{StatusCode: 200, Body: []byte(`{"ok":1}`)}, nil)

	outcome, err := f.ctrl.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeSaved, outcome.Kind)
	assert.Equal(t, ToastSaved, outcome.Message)
	assert.Equal(t, domain.FormValues{}, f.input.Values())
}

func TestControllerSubmitHTTPFailureKeepsInput(t *testing.T) {
	f := newFixture(t, aliceValues(), testEndpoint)
	f.submitter.EXPECT().Submit(mock.Anything, mock.Anything).
		Return(ports.SubmitResponse{StatusCode: 500, Body: []byte("server error")}, nil)

	outcome, err := f.ctrl.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeRejected, outcome.Kind)
	assert.Equal(t, "Save failed (HTTP 500). server error", outcome.Message)
	assert.Equal(t, "Save failed (HTTP 500). server error", f.feedback.currentError())
	assert.Equal(t, aliceValues(), f.input.Values())
	assert.Empty(t, f.feedback.toasts)
	assert.Equal(t, []bool{true, false}, f.feedback.busy)
}

func TestControllerSubmitNetworkError(t *testing.T) {
	f := newFixture(t, aliceValues(), testEndpoint)
	f.submitter.EXPECT().Submit(mock.Anything, mock.Anything).
		Return(ports.SubmitResponse{}, errors.New("connection refused"))

	outcome, err := f.ctrl.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeNetworkError, outcome.Kind)
	assert.Equal(t, "Network error: connection refused", f.feedback.currentError())
	assert.Equal(t, aliceValues(), f.input.Values())
	assert.Equal(t, []bool{true, false}, f.feedback.busy)
	assert.Equal(t, StateIdle, f.ctrl.State())
}

func TestControllerSubmitValidationErrorSkipsNetwork(t *testing.T) {
	values := aliceValues()
	values.Name = ""
	f := newFixture(t, values, testEndpoint)

	outcome, err := f.ctrl.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeInvalid, outcome.Kind)
	assert.Equal(t, domain.MessageNameRequired, f.feedback.currentError())
	assert.Empty(t, f.feedback.busy)
	f.submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestControllerSubmitUnknownPlanSkipsNetwork(t *testing.T) {
	values := aliceValues()
	values.DurationSelection = "9-9-9"
	f := newFixture(t, values, testEndpoint)

	outcome, err := f.ctrl.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeInvalid, outcome.Kind)
	assert.Equal(t, domain.MessageInvalidPlan, outcome.Message)
}

func TestControllerSubmitWithoutEndpointIsConfigError(t *testing.T) {
	f := newFixture(t, aliceValues(), "  ")

	assert.False(t, f.ctrl.Configured())
	assert.Equal(t, ConfigNotice, f.ctrl.Notice())

	outcome, err := f.ctrl.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeConfigError, outcome.Kind)
	assert.Equal(t, MessageEndpointNotConfigured, f.feedback.currentError())
	assert.Equal(t, aliceValues(), f.input.Values())
	assert.Empty(t, f.feedback.busy)
	f.submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestControllerSubmitClearsPreviousErrorBeforePosting(t *testing.T) {
	f := newFixture(t, aliceValues(), testEndpoint)
	f.feedback.ShowError("stale")

	f.submitter.EXPECT().Submit(mock.Anything, mock.Anything).
		Run(func(context.Context, []domain.FormField) {
			assert.Empty(t, f.feedback.currentError())
		}).
		Return(ports.SubmitResponse{Opaque: true}, nil)

	_, err := f.ctrl.Submit(context.Background())
	require.NoError(t, err)
}

func TestControllerSubmitRejectsConcurrentAttempt(t *testing.T) {
	f := newFixture(t, aliceValues(), testEndpoint)

	entered := make(chan struct{})
	release := make(chan struct{})
	f.submitter.EXPECT().Submit(mock.Anything, mock.Anything).
		Run(func(context.Context, []domain.FormField) {
			close(entered)
			<-release
		}).
		Return(ports.SubmitResponse{Opaque: true}, nil).
		Once()

	done := make(chan error, 1)
	go func() {
		_, err := f.ctrl.Submit(context.Background())
		done <- err
	}()

	<-entered
	assert.Equal(t, StateSubmitting, f.ctrl.State())

	_, err := f.ctrl.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmissionInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, StateIdle, f.ctrl.State())
}

func TestControllerResetClearsErrorOnNextTick(t *testing.T) {
	f := newFixture(t, aliceValues(), testEndpoint)
	f.feedback.ShowError(domain.MessageInvalidPlan)

	require.NoError(t, f.ctrl.Reset())
	assert.Equal(t, domain.FormValues{}, f.input.Values())
	assert.Equal(t, domain.MessageInvalidPlan, f.feedback.currentError())

	f.scheduler.flush()
	assert.Empty(t, f.feedback.currentError())
}

func TestControllerPendingResetClearKeepsLaterValidationError(t *testing.T) {
	f := newFixture(t, aliceValues(), testEndpoint)
	f.submitter.EXPECT().Submit(mock.Anything, mock.Anything).
		Return(ports.SubmitResponse{StatusCode: 200, Body: []byte(`{"ok":true}`)}, nil).
		Once()

	saved, err := f.ctrl.Submit(context.Background())
	require.NoError(t, err)
	require.True(t, saved.Saved())

	blocked, err := f.ctrl.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeInvalid, blocked.Kind)

	f.scheduler.flush()
	assert.Equal(t, domain.MessageNameRequired, f.feedback.currentError())
}

type tickScheduler struct {
	wg sync.WaitGroup
}

func (s *tickScheduler) Defer(fn func()) {
	s.wg.Add(1)
	ports.NextTick{}.Defer(func() {
		defer s.wg.Done()
		fn()
	})
}

func TestControllerNextTickClearDoesNotWipeNewerError(t *testing.T) {
	for i := 0; i < 50; i++ {
		input := memory.NewSurface(aliceValues())
		feedback := &recordingFeedback{}
		scheduler := &tickScheduler{}
		submitter := mocks.NewMockSubmitter(t)
		submitter.EXPECT().Submit(mock.Anything, mock.Anything).
			Return(ports.SubmitResponse{Opaque: true}, nil).
			Once()

		ctrl := NewController(ports.Compose(input, feedback), submitter, Options{
			Endpoint:  testEndpoint,
			Scheduler: scheduler,
		})

		_, err := ctrl.Submit(context.Background())
		require.NoError(t, err)
		_, err = ctrl.Submit(context.Background())
		require.NoError(t, err)

		scheduler.wg.Wait()
		require.Equal(t, domain.MessageNameRequired, feedback.currentError(), "run %d", i)
	}
}

func TestControllerPreviewDoesNotSubmit(t *testing.T) {
	f := newFixture(t, aliceValues(), testEndpoint)

	record, validationErr := f.ctrl.Preview()
	assert.Empty(t, validationErr)
	assert.Equal(t, "2", record.CreditCount)
	assert.Equal(t, aliceValues(), f.input.Values())
}
