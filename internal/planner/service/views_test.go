package service

import (
	"sync"
	"testing"

	"floorplanner/internal/planner/render"

	"github.com/stretchr/testify/assert"
)

func TestViewRegistryDefaults(t *testing.T) {
	r := NewViewRegistry()
	assert.Equal(t, render.DefaultView(), r.Get("missing"))
}

func TestViewRegistryUpdateClamps(t *testing.T) {
	r := NewViewRegistry()

	var v render.ViewState
	for i := 0; i < 20; i++ {
		v = r.Update("p", render.ViewState.ZoomIn)
	}
	assert.Equal(t, render.MaxZoom, v.Zoom)
	assert.Equal(t, v, r.Get("p"))

	v = r.Update("p", func(v render.ViewState) render.ViewState { return v.Pan(-40, 15) })
	assert.Equal(t, -40.0, v.PanX)
	assert.Equal(t, 15.0, v.PanY)

	assert.Equal(t, render.DefaultView(), r.Reset("p"))
	assert.Equal(t, render.DefaultView(), r.Get("p"))
}

func TestViewRegistryDrag(t *testing.T) {
	r := NewViewRegistry()
	v := r.Drag("p", []render.Pointer{{X: 10, Y: 10}, {X: 30, Y: 5}, {X: 35, Y: 25}})

	assert.Equal(t, 25.0, v.PanX)
	assert.Equal(t, 15.0, v.PanY)
	assert.Equal(t, 1.0, v.Zoom)

	assert.Equal(t, v, r.Drag("p", nil))
}

func TestViewRegistryIsolatesPlans(t *testing.T) {
	r := NewViewRegistry()
	r.Update("a", render.ViewState.ZoomOut)

	assert.Equal(t, render.DefaultView(), r.Get("b"))
	r.Forget("a")
	assert.Equal(t, render.DefaultView(), r.Get("a"))
}

func TestViewRegistryConcurrentPans(t *testing.T) {
	r := NewViewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Update("p", func(v render.ViewState) render.ViewState { return v.Pan(1, 2) })
		}()
	}
	wg.Wait()

	v := r.Get("p")
	assert.Equal(t, 50.0, v.PanX)
	assert.Equal(t, 100.0, v.PanY)
}
