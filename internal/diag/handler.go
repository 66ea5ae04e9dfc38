package diag

import "sync"

// Handler is the process-wide error accumulator described in
// SPEC_FULL.md §4.1 and §7. Every pass that may fail either succeeds
// outright or pushes one or more Reports into the handler's current
// scope. Its methods lock a mutex, but every scope lives on one shared
// stack, so scopes opened from several goroutines at once would
// interleave; spec.md §5 keeps the core single-threaded.
type Handler struct {
	mu     sync.Mutex
	stack  []*scope
	cancel bool
}

type scope struct {
	errs []*Report
}

// NewHandler returns a fresh handler with one root scope.
func NewHandler() *Handler {
	h := &Handler{}
	h.stack = []*scope{{}}
	return h
}

// Emit records a report in the current scope.
func (h *Handler) Emit(r *Report) {
	h.mu.Lock()
	defer h.mu.Unlock()
	top := h.stack[len(h.stack)-1]
	top.errs = append(top.errs, r)
}

// HasErrors reports whether any scope on the stack has accumulated an error.
func (h *Handler) HasErrors() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.stack {
		if len(s.errs) > 0 {
			return true
		}
	}
	return false
}

// Errors returns every report accumulated across all scopes, in
// emission order.
func (h *Handler) Errors() []*Report {
	h.mu.Lock()
	defer h.mu.Unlock()
	var all []*Report
	for _, s := range h.stack {
		all = append(all, s.errs...)
	}
	return all
}

// Cancelled is returned by Scope when f succeeded but the scope it ran
// in accumulated errors — it lets a caller short-circuit a pipeline
// without re-reporting.
type Cancelled struct{}

func (Cancelled) Error() string { return "cancelled: prior scope reported errors" }

// Scope runs f inside a fresh error scope and returns f's result. If f
// returns nil but the scope accumulated errors, Scope returns
// Cancelled so the caller can stop without double-reporting.
func (h *Handler) Scope(f func() error) error {
	h.mu.Lock()
	h.stack = append(h.stack, &scope{})
	h.mu.Unlock()

	err := f()

	h.mu.Lock()
	s := h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
	if len(s.errs) > 0 {
		h.stack[len(h.stack)-1].errs = append(h.stack[len(h.stack)-1].errs, s.errs...)
	}
	accumulated := len(s.errs) > 0
	h.mu.Unlock()

	if err == nil && accumulated {
		return Cancelled{}
	}
	return err
}
