package store

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/okami-ct/okami-dashboard/internal/models"
	appErrors "github.com/okami-ct/okami-dashboard/pkg/errors"
)

// Op names a store action. Every op has its own loading flag.
type Op string

const (
	OpList   Op = "list"
	OpGet    Op = "get"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

var (
	// ErrSuperseded is returned by a read whose response arrived after a newer request
	// for the same op was issued. The response is discarded.
	ErrSuperseded = errors.New("store: response superseded by a newer request")

	// ErrUnsupported is returned for actions the backend does not expose for a resource.
	ErrUnsupported = appErrors.New("UNSUPPORTED_OPERATION", http.StatusMethodNotAllowed, "operation not supported for this resource")
)

// Recorder receives store action outcomes.
type Recorder interface {
	ObserveStoreAction(store, op string, err error)
	ObserveSuperseded(store, op string)
}

// State is the view-facing slice of server state held by a store.
type State[T any] struct {
	Items      []T               `json:"items"`
	Current    *T                `json:"current"`
	Filters    models.Filter     `json:"filters"`
	Pagination models.Pagination `json:"pagination"`
	Loading    map[Op]bool       `json:"loading"`
	Error      string            `json:"error,omitempty"`
}

// IsLoading reports whether op has a request in flight.
func (s State[T]) IsLoading(op Op) bool {
	return s.Loading[op]
}

func (s State[T]) clone() State[T] {
	out := State[T]{
		Items:      append(make([]T, 0, len(s.Items)), s.Items...),
		Filters:    s.Filters.Clone(),
		Pagination: s.Pagination,
		Loading:    make(map[Op]bool, len(s.Loading)),
		Error:      s.Error,
	}
	if s.Current != nil {
		current := *s.Current
		out.Current = &current
	}
	for op, v := range s.Loading {
		if v {
			out.Loading[op] = true
		}
	}
	return out
}

// Endpoints are the service calls backing a collection. A nil func marks the action unsupported.
type Endpoints[T, In any] struct {
	List   func(ctx context.Context, query models.ListQuery) (*models.ListResult[T], error)
	Get    func(ctx context.Context, id string) (*T, error)
	Create func(ctx context.Context, input In) (*T, error)
	Update func(ctx context.Context, id string, input In) (*T, error)
	Delete func(ctx context.Context, id string) error
}

// Options configures a collection.
type Options struct {
	Limit    int
	Logger   *zap.Logger
	Recorder Recorder
}

// Collection holds one resource's list, selection, filters, pagination, loading flags and error.
type Collection[T, In any] struct {
	name      string
	endpoints Endpoints[T, In]
	idOf      func(T) string
	messages  map[Op]string
	logger    *zap.Logger
	recorder  Recorder

	mu          sync.RWMutex
	state       State[T]
	generations map[Op]uint64
	inflight    map[Op]int
	listeners   map[int]func(State[T])
	nextID      int
}

// NewCollection constructs a collection. messages holds the fallback text per op shown
// when a failure carries no message of its own.
func NewCollection[T, In any](name string, endpoints Endpoints[T, In], idOf func(T) string, messages map[Op]string, opts Options) *Collection[T, In] {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	return &Collection[T, In]{
		name:      name,
		endpoints: endpoints,
		idOf:      idOf,
		messages:  messages,
		logger:    logger.With(zap.String("store", name)),
		recorder:  opts.Recorder,
		state: State[T]{
			Items:      []T{},
			Filters:    models.Filter{},
			Pagination: models.Pagination{Page: 1, Limit: limit},
			Loading:    map[Op]bool{},
		},
		generations: map[Op]uint64{},
		inflight:    map[Op]int{},
		listeners:   map[int]func(State[T]){},
	}
}

// Name identifies the store in logs and metrics.
func (c *Collection[T, In]) Name() string {
	return c.name
}

// Snapshot returns a copy of the current state.
func (c *Collection[T, In]) Snapshot() State[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.clone()
}

// Subscribe registers fn to run after every state change. The returned func unsubscribes.
func (c *Collection[T, In]) Subscribe(fn func(State[T])) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// Fetch loads the current page using the stored filters and pagination overlaid with
// params. A positive page or limit in params applies to this request only.
func (c *Collection[T, In]) Fetch(ctx context.Context, params models.Filter) error {
	if c.endpoints.List == nil {
		return ErrUnsupported
	}
	c.mu.RLock()
	query := listQuery(c.state.Filters, c.state.Pagination, params)
	c.mu.RUnlock()

	t := c.begin(OpList, true)
	result, err := c.endpoints.List(ctx, query)
	return c.settle(t, err, func(s *State[T]) {
		s.Items = copyOf(result.Data)
		s.Pagination = result.Pagination()
	})
}

// FetchOne loads a single entity into Current.
func (c *Collection[T, In]) FetchOne(ctx context.Context, id string) (*T, error) {
	if c.endpoints.Get == nil {
		return nil, ErrUnsupported
	}
	t := c.begin(OpGet, true)
	entity, err := c.endpoints.Get(ctx, id)
	if err := c.settle(t, err, func(s *State[T]) {
		current := *entity
		s.Current = &current
	}); err != nil {
		return nil, err
	}
	return entity, nil
}

// Create sends input to the backend, prepends the created entity and resynchronises the page.
func (c *Collection[T, In]) Create(ctx context.Context, input In) (*T, error) {
	if c.endpoints.Create == nil {
		return nil, ErrUnsupported
	}
	t := c.begin(OpCreate, false)
	entity, err := c.endpoints.Create(ctx, input)
	if err := c.settle(t, err, func(s *State[T]) {
		s.Items = append([]T{*entity}, s.Items...)
	}); err != nil {
		return nil, err
	}
	c.resync(ctx, OpCreate)
	return entity, nil
}

// Update replaces the entity by id in Items and Current, then resynchronises the page.
func (c *Collection[T, In]) Update(ctx context.Context, id string, input In) (*T, error) {
	if c.endpoints.Update == nil {
		return nil, ErrUnsupported
	}
	t := c.begin(OpUpdate, false)
	entity, err := c.endpoints.Update(ctx, id, input)
	if err := c.settle(t, err, func(s *State[T]) {
		c.replace(s, id, *entity)
	}); err != nil {
		return nil, err
	}
	c.resync(ctx, OpUpdate)
	return entity, nil
}

// Delete removes the entity by id from Items and Current, then resynchronises the page.
func (c *Collection[T, In]) Delete(ctx context.Context, id string) error {
	if c.endpoints.Delete == nil {
		return ErrUnsupported
	}
	t := c.begin(OpDelete, false)
	err := c.endpoints.Delete(ctx, id)
	if err := c.settle(t, err, func(s *State[T]) {
		c.remove(s, id)
	}); err != nil {
		return err
	}
	c.resync(ctx, OpDelete)
	return nil
}

// ListChange is a set of list parameter changes applied before one fetch. Zero fields
// are left as they are.
type ListChange struct {
	Limit   int
	Filters models.Filter
	Page    int
}

// Apply changes page size, filters and page together and refetches once. A new limit or
// filter resets to page 1 unless Page is also set.
func (c *Collection[T, In]) Apply(ctx context.Context, change ListChange) error {
	if change.Limit < 0 {
		return appErrors.Clone(appErrors.ErrValidation, "limit must be positive")
	}
	if change.Page < 0 {
		return appErrors.Clone(appErrors.ErrValidation, "page must be positive")
	}
	if change.Limit > 0 || len(change.Filters) > 0 || change.Page > 0 {
		c.mutate(func(s *State[T]) {
			if change.Limit > 0 {
				s.Pagination.Limit = change.Limit
				s.Pagination.Page = 1
			}
			if len(change.Filters) > 0 {
				s.Filters = s.Filters.Merge(change.Filters)
				s.Pagination.Page = 1
			}
			if change.Page > 0 {
				s.Pagination.Page = change.Page
			}
		})
	}
	return c.Fetch(ctx, nil)
}

// SetFilters merges partial into the filters, resets to page 1 and refetches.
// Empty values remove a filter.
func (c *Collection[T, In]) SetFilters(ctx context.Context, partial models.Filter) error {
	if len(partial) == 0 {
		c.mutate(func(s *State[T]) { s.Pagination.Page = 1 })
	}
	return c.Apply(ctx, ListChange{Filters: partial})
}

// ClearFilters drops every filter, resets to page 1 and refetches.
func (c *Collection[T, In]) ClearFilters(ctx context.Context) error {
	c.mutate(func(s *State[T]) {
		s.Filters = models.Filter{}
		s.Pagination.Page = 1
	})
	return c.Fetch(ctx, nil)
}

// SetPage moves to page n and refetches.
func (c *Collection[T, In]) SetPage(ctx context.Context, n int) error {
	if n < 1 {
		n = 1
	}
	return c.Apply(ctx, ListChange{Page: n})
}

// SetLimit changes the page size, resets to page 1 and refetches.
func (c *Collection[T, In]) SetLimit(ctx context.Context, n int) error {
	if n < 1 {
		return appErrors.Clone(appErrors.ErrValidation, "limit must be positive")
	}
	return c.Apply(ctx, ListChange{Limit: n})
}

// ClearError resets the error without refetching.
func (c *Collection[T, In]) ClearError() {
	c.mutate(func(s *State[T]) {
		s.Error = ""
	})
}

func (c *Collection[T, In]) resync(ctx context.Context, after Op) {
	if c.endpoints.List == nil {
		return
	}
	if err := c.Fetch(ctx, nil); err != nil && !errors.Is(err, ErrSuperseded) {
		c.logger.Warn("resync after mutation failed", zap.String("after", string(after)), zap.Error(err))
	}
}

func listQuery(filters models.Filter, pagination models.Pagination, params models.Filter) models.ListQuery {
	q := models.ListQuery{
		Filter: filters.Merge(params),
		Page:   pagination.Page,
		Limit:  pagination.Limit,
	}
	if n, err := strconv.Atoi(q.Filter["page"]); err == nil && n > 0 {
		q.Page = n
	}
	if n, err := strconv.Atoi(q.Filter["limit"]); err == nil && n > 0 {
		q.Limit = n
	}
	delete(q.Filter, "page")
	delete(q.Filter, "limit")
	return q
}

func (c *Collection[T, In]) replace(s *State[T], id string, entity T) {
	for i := range s.Items {
		if c.idOf(s.Items[i]) == id {
			s.Items[i] = entity
		}
	}
	if s.Current != nil && c.idOf(*s.Current) == id {
		current := entity
		s.Current = &current
	}
}

func (c *Collection[T, In]) remove(s *State[T], id string) {
	kept := make([]T, 0, len(s.Items))
	for _, item := range s.Items {
		if c.idOf(item) != id {
			kept = append(kept, item)
		}
	}
	s.Items = kept
	if s.Current != nil && c.idOf(*s.Current) == id {
		s.Current = nil
	}
}

// ticket identifies one in-flight action.
type ticket struct {
	op      Op
	gen     uint64
	guarded bool
}

// begin marks op as loading and clears the error. Guarded tickets are discarded on
// settle when a newer guarded request for the same op has started since.
func (c *Collection[T, In]) begin(op Op, guarded bool) ticket {
	c.mu.Lock()
	c.generations[op]++
	t := ticket{op: op, gen: c.generations[op], guarded: guarded}
	c.inflight[op]++
	c.state.Loading[op] = true
	c.state.Error = ""
	snapshot, listeners := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot, listeners)
	return t
}

// settle finishes an action. On success apply runs under the write lock.
func (c *Collection[T, In]) settle(t ticket, err error, apply func(*State[T])) error {
	c.mu.Lock()
	c.inflight[t.op]--
	if c.inflight[t.op] <= 0 {
		delete(c.inflight, t.op)
		delete(c.state.Loading, t.op)
	}

	if t.guarded && t.gen != c.generations[t.op] {
		snapshot, listeners := c.snapshotLocked()
		c.mu.Unlock()

		c.logger.Debug("discarding superseded response", zap.String("op", string(t.op)), zap.Uint64("generation", t.gen))
		if c.recorder != nil {
			c.recorder.ObserveSuperseded(c.name, string(t.op))
		}
		c.notify(snapshot, listeners)
		return ErrSuperseded
	}

	if err != nil {
		c.state.Error = appErrors.Message(err, c.fallback(t.op))
	} else if apply != nil {
		apply(&c.state)
	}
	snapshot, listeners := c.snapshotLocked()
	c.mu.Unlock()

	if c.recorder != nil {
		c.recorder.ObserveStoreAction(c.name, string(t.op), err)
	}
	if err != nil {
		c.logger.Warn("store action failed", zap.String("op", string(t.op)), zap.Error(err))
	}
	c.notify(snapshot, listeners)
	return err
}

// run executes call as op and applies its result when it is still current.
func (c *Collection[T, In]) run(op Op, guarded bool, call func() error, apply func(*State[T])) error {
	t := c.begin(op, guarded)
	err := call()
	return c.settle(t, err, apply)
}

func (c *Collection[T, In]) mutate(fn func(*State[T])) {
	c.mu.Lock()
	fn(&c.state)
	snapshot, listeners := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snapshot, listeners)
}

// read runs fn under the read lock so resource stores can guard extra fields with it.
func (c *Collection[T, In]) read(fn func()) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn()
}

func (c *Collection[T, In]) fallback(op Op) string {
	if msg, ok := c.messages[op]; ok {
		return msg
	}
	return "Erro inesperado"
}

func (c *Collection[T, In]) snapshotLocked() (State[T], []func(State[T])) {
	if len(c.listeners) == 0 {
		return State[T]{}, nil
	}
	listeners := make([]func(State[T]), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	return c.state.clone(), listeners
}

func (c *Collection[T, In]) notify(snapshot State[T], listeners []func(State[T])) {
	for _, fn := range listeners {
		fn(snapshot)
	}
}
