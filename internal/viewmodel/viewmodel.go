package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"nurse-directory/internal/model"
	"nurse-directory/internal/nurseapi"
	"nurse-directory/internal/state"
)

// SearchState is the search box: the current query and the nurses it matches
// in the loaded roster.
type SearchState struct {
	Query   string
	Results []model.Nurse
}

// LoginResult is emitted once per login attempt.
type LoginResult struct {
	Username string
	Success  bool
}

// NurseViewModel issues API calls and moves the state containers through
// their lifecycles. Each container has exactly one writer operation.
//
// Operations block until the request finishes; UI code calls them from its
// own goroutine and observes the containers. Requests are bound to the view
// model's lifetime: after Close, in-flight responses are discarded.
type NurseViewModel struct {
	api nurseapi.Client
	log zerolog.Logger

	Form        *state.Container[RegistrationForm]
	LoginEvents *state.Events[LoginResult]
	Session     *state.Container[state.Operation[model.Nurse]]
	List        *state.Container[state.Operation[[]model.Nurse]]
	Search      *state.Container[SearchState]
	Selected    *state.Container[*model.Nurse]
	Nurse       *state.Container[state.Operation[model.Nurse]]
	Update      *state.Container[state.Operation[model.Nurse]]
	Delete      *state.Container[state.Operation[int64]]

	registerGen tracker
	sessionGen  tracker
	listGen     tracker
	nurseGen    tracker
	updateGen   tracker
	deleteGen   tracker
	listFlight  singleflight.Group
	// listStale is set by successful writes so the next LoadList refetches.
	listStale atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
}

// Option configures a NurseViewModel.
type Option func(*options)

type options struct {
	logger      zerolog.Logger
	eventBuffer int
}

// WithLogger sets the logger; the default discards output.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithEventBuffer sets how many login events may wait unread.
func WithEventBuffer(n int) Option {
	return func(o *options) { o.eventBuffer = n }
}

// New creates a view model over api with every container idle.
func New(api nurseapi.Client, opts ...Option) *NurseViewModel {
	o := options{logger: zerolog.Nop(), eventBuffer: 8}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &NurseViewModel{
		api:         api,
		log:         o.logger,
		Form:        state.NewContainer(RegistrationForm{}),
		LoginEvents: state.NewEvents[LoginResult](o.eventBuffer),
		Session:     state.NewContainer(state.Idle[model.Nurse]()),
		List:        state.NewContainer(state.Idle[[]model.Nurse]()),
		Search:      state.NewContainer(SearchState{Results: []model.Nurse{}}),
		Selected:    state.NewContainer[*model.Nurse](nil),
		Nurse:       state.NewContainer(state.Idle[model.Nurse]()),
		Update:      state.NewContainer(state.Idle[model.Nurse]()),
		Delete:      state.NewContainer(state.Idle[int64]()),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Close cancels in-flight requests. Their responses are not written.
func (vm *NurseViewModel) Close() {
	vm.cancel()
}

// scope derives a request context that ends when either ctx or the view model does.
func (vm *NurseViewModel) scope(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(vm.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (vm *NurseViewModel) closed() bool {
	return vm.ctx.Err() != nil
}

// tracker orders writes to one container: a response is only applied if no
// newer request for the same container has started since.
type tracker struct {
	mu  sync.Mutex
	gen uint64
}

// begin starts a new request generation and runs fn (usually "set Loading")
// atomically with it.
func (t *tracker) begin(fn func()) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen++
	if fn != nil {
		fn()
	}
	return t.gen
}

// finish runs fn only if gen is still the latest generation.
func (t *tracker) finish(gen uint64, fn func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen {
		return false
	}
	fn()
	return true
}

// reset invalidates any in-flight request and runs fn.
func (t *tracker) reset(fn func()) {
	t.begin(fn)
}

// replace runs fn under the tracker lock and starts a new generation only
// when fn reports that it wrote the container.
func (t *tracker) replace(fn func() bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if fn() {
		t.gen++
	}
}

// describeError renders an API failure as the message stored in a container.
func describeError(err error) string {
	var se *nurseapi.ServerError
	if errors.As(err, &se) {
		return fmt.Sprintf("server error: %d", se.StatusCode)
	}
	var te *nurseapi.TransportError
	if errors.As(err, &te) {
		return fmt.Sprintf("connection error: %v", te.Err)
	}
	return fmt.Sprintf("connection error: %v", err)
}

func (vm *NurseViewModel) logFailure(op string, err error) {
	vm.log.Warn().Err(err).Str("op", op).Int("status", nurseapi.StatusCode(err)).Msg("api call failed")
}

// commit applies fn for generation gen unless the view model was closed or a
// newer request superseded it.
func (vm *NurseViewModel) commit(t *tracker, gen uint64, fn func()) bool {
	if vm.closed() {
		return false
	}
	return t.finish(gen, fn)
}
