package service

import (
	"sync"

	"floorplanner/internal/planner/render"
)

// ============================================================
// View Registry
// ============================================================

// ViewRegistry holds the zoom and pan of every plan being viewed.
type ViewRegistry struct {
	mu    sync.Mutex
	views map[string]render.ViewState // planID -> view
}

func NewViewRegistry() *ViewRegistry {
	return &ViewRegistry{
		views: make(map[string]render.ViewState),
	}
}

// Get returns the plan's view, or the default view if none was stored.
func (r *ViewRegistry) Get(planID string) render.ViewState {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.views[planID]; ok {
		return v
	}
	return render.DefaultView()
}

// Update applies fn to the plan's view and stores the result.
func (r *ViewRegistry) Update(planID string, fn func(render.ViewState) render.ViewState) render.ViewState {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.views[planID]
	if !ok {
		v = render.DefaultView()
	}
	v = fn(v).Normalized()
	r.views[planID] = v
	return v
}

// Drag replays a pointer path against the plan's view.
func (r *ViewRegistry) Drag(planID string, path []render.Pointer) render.ViewState {
	return r.Update(planID, func(v render.ViewState) render.ViewState {
		if len(path) == 0 {
			return v
		}
		d := render.BeginDrag(&v, path[0].X, path[0].Y)
		for _, p := range path[1:] {
			d.Move(p.X, p.Y)
		}
		d.End()
		return v
	})
}

func (r *ViewRegistry) Reset(planID string) render.ViewState {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.views, planID)
	return render.DefaultView()
}

// Forget drops the view of a deleted plan.
func (r *ViewRegistry) Forget(planID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.views, planID)
}
