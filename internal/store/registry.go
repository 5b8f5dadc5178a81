package store

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/okami-ct/okami-dashboard/internal/service"
)

// Registry owns one store per resource for a single dashboard session.
type Registry struct {
	Students *StudentStore
	Teachers *TeacherStore
	Classes  *ClassStore
	Checkins *CheckinStore
	Payments *PaymentStore
	Expenses *ExpenseStore
	Belts    *BeltStore
	Videos   *VideoStore
	Modules  *ModuleStore
}

// NewRegistry builds every store on top of the given services.
func NewRegistry(svc *service.Services, opts Options) *Registry {
	return &Registry{
		Students: NewStudentStore(svc.Students, svc.Checkins, svc.Payments, opts),
		Teachers: NewTeacherStore(svc.Teachers, opts),
		Classes:  NewClassStore(svc.Classes, opts),
		Checkins: NewCheckinStore(svc.Checkins, opts),
		Payments: NewPaymentStore(svc.Payments, opts),
		Expenses: NewExpenseStore(svc.Expenses, opts),
		Belts:    NewBeltStore(svc.Belts, opts),
		Videos:   NewVideoStore(svc.Videos, opts),
		Modules:  NewModuleStore(svc.Modules, opts),
	}
}

// Factory builds the registry of a session from its backend token.
type Factory func(token string) *Registry

type hubEntry struct {
	registry *Registry
	lastSeen time.Time
}

// Hub keeps the registry of every open session.
type Hub struct {
	factory Factory
	logger  *zap.Logger
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*hubEntry
}

// NewHub constructs a hub.
func NewHub(factory Factory, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		factory: factory,
		logger:  logger,
		now:     time.Now,
		entries: make(map[string]*hubEntry),
	}
}

// For returns the registry of a session, creating it on first use.
func (h *Hub) For(sessionID, token string) *Registry {
	h.mu.Lock()
	defer h.mu.Unlock()

	if entry, ok := h.entries[sessionID]; ok {
		entry.lastSeen = h.now()
		return entry.registry
	}
	entry := &hubEntry{registry: h.factory(token), lastSeen: h.now()}
	h.entries[sessionID] = entry
	return entry.registry
}

// Drop forgets the registry of a session.
func (h *Hub) Drop(sessionID string) {
	h.mu.Lock()
	delete(h.entries, sessionID)
	h.mu.Unlock()
}

// Len reports how many sessions hold a registry.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Sweep drops registries idle for longer than maxIdle and returns how many were removed.
func (h *Hub) Sweep(maxIdle time.Duration) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	cutoff := h.now().Add(-maxIdle)
	removed := 0
	for id, entry := range h.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(h.entries, id)
			removed++
		}
	}
	if removed > 0 {
		h.logger.Debug("swept idle session stores", zap.Int("removed", removed))
	}
	return removed
}
