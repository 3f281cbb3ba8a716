package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"floorplanner/internal/common/logging"
	"floorplanner/internal/planner/export"
	"floorplanner/internal/planner/models"
	"floorplanner/internal/planner/render"
	"floorplanner/internal/planner/repository"
	"floorplanner/internal/planner/service"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	app  *fiber.App
	jobs *service.JobManager
	h    *PlanHandler
}

func newServer(t *testing.T, delay time.Duration) *testServer {
	t.Helper()

	db, err := repository.OpenSQLite(fmt.Sprintf("file:/%s.db?vfs=memdb", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.New(db)
	require.NoError(t, repo.Init(context.Background()))

	logger := logging.Discard()
	jobs := service.NewJobManager(repo, delay, 5*time.Millisecond, logger)
	t.Cleanup(jobs.Close)

	h := NewPlanHandler(repo, jobs, service.NewViewRegistry(), Canvas{Width: 400, Height: 300}, logger)
	h.now = func() time.Time { return time.UnixMilli(1700000000000) }

	app := fiber.New()
	h.Register(app)
	return &testServer{app: app, jobs: jobs, h: h}
}

func (s *testServer) do(t *testing.T, method, path string, body io.Reader, contentType string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (s *testServer) doJSON(t *testing.T, method, path string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}
	return s.do(t, method, path, body, "application/json")
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func validRequest() createRequest {
	return createRequest{
		Requirements: models.RequirementSpec{
			Bedrooms:      2,
			Bathrooms:     2,
			KitchenFacing: models.East,
			LivingRoom:    true,
			DiningRoom:    true,
			PlotArea:      200,
			BuiltUpArea:   135,
		},
		Plot: models.PlotSurface{WidthPx: 1000, HeightPx: 1000, ScalePxPerMeter: 100},
	}
}

func (s *testServer) createPlan(t *testing.T) string {
	t.Helper()
	resp := s.doJSON(t, http.MethodPost, "/plans", validRequest())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[createResponse](t, resp).PlanID
}

func TestCreateInline(t *testing.T) {
	s := newServer(t, 0)

	resp := s.doJSON(t, http.MethodPost, "/plans", validRequest())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[createResponse](t, resp)
	assert.Equal(t, service.JobCompleted, created.Status)
	assert.NotEmpty(t, created.JobID)

	resp = s.do(t, http.MethodGet, "/plans/"+created.PlanID, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	plan := decode[models.FloorPlan](t, resp)

	assert.Len(t, plan.Rooms, 7)
	assert.InDelta(t, math.Sqrt(135), plan.Dimensions.Width, 1e-9)
	assert.InDelta(t, 70.5, plan.TotalArea, 1e-9)
	assert.Len(t, plan.Walls, 4*(len(plan.Rooms)+1))
}

func TestCreateDelayedJob(t *testing.T) {
	s := newServer(t, 30*time.Millisecond)

	resp := s.doJSON(t, http.MethodPost, "/plans", validRequest())
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	created := decode[createResponse](t, resp)
	assert.Equal(t, service.JobProcessing, created.Status)

	resp = s.do(t, http.MethodGet, "/jobs/"+created.JobID, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	s.jobs.Wait()

	resp = s.do(t, http.MethodGet, "/jobs/"+created.JobID, nil, "")
	job := decode[service.Job](t, resp)
	assert.Equal(t, service.JobCompleted, job.Status)
	assert.Equal(t, created.PlanID, job.PlanID)

	resp = s.do(t, http.MethodGet, "/plans/"+created.PlanID, nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateRejectsBadInput(t *testing.T) {
	s := newServer(t, 0)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty body", "", "empty body"},
		{"malformed json", "{", "invalid json"},
		{"built-up exceeds plot", `{"requirements":{"kitchenOrientation":"east","plotArea":100,"builtupArea":150},"plot":{"width":10,"height":10,"scale":1}}`, "invalid requirement"},
		{"bad kitchen facing", `{"requirements":{"kitchenOrientation":"up","plotArea":100,"builtupArea":50},"plot":{"width":10,"height":10,"scale":1}}`, "invalid requirement"},
		{"zero plot", `{"requirements":{"kitchenOrientation":"north","plotArea":100,"builtupArea":50},"plot":{"width":0,"height":10,"scale":1}}`, "invalid requirement"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.do(t, http.MethodPost, "/plans", strings.NewReader(tt.body), "application/json")
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			body := decode[map[string]string](t, resp)
			assert.Contains(t, body["error"], tt.want)
		})
	}
}

func multipartBody(t *testing.T, fields map[string]string, img image.Image) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if img != nil {
		part, err := w.CreateFormFile("image", "plot.png")
		require.NoError(t, err)
		require.NoError(t, png.Encode(part, img))
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestCreateFromUpload(t *testing.T) {
	s := newServer(t, 0)

	reqJSON, err := json.Marshal(validRequest().Requirements)
	require.NoError(t, err)

	body, ct := multipartBody(t, map[string]string{"requirements": string(reqJSON), "scale": "50"},
		image.NewRGBA(image.Rect(0, 0, 300, 200)))

	resp := s.do(t, http.MethodPost, "/plans", body, ct)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decode[createResponse](t, resp).PlanID

	plan := decode[models.FloorPlan](t, s.do(t, http.MethodGet, "/plans/"+id, nil, ""))
	assert.InDelta(t, math.Sqrt(135*1.5), plan.Dimensions.Width, 1e-9)
	assert.Equal(t, 50.0, plan.ScalePxPerMeter)
}

func TestCreateFromUploadExplicitSize(t *testing.T) {
	s := newServer(t, 0)

	reqJSON, err := json.Marshal(validRequest().Requirements)
	require.NoError(t, err)
	body, ct := multipartBody(t, map[string]string{"requirements": string(reqJSON), "width": "400", "height": "100"}, nil)

	resp := s.do(t, http.MethodPost, "/plans", body, ct)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decode[createResponse](t, resp).PlanID

	plan := decode[models.FloorPlan](t, s.do(t, http.MethodGet, "/plans/"+id, nil, ""))
	assert.InDelta(t, math.Sqrt(135*4), plan.Dimensions.Width, 1e-9)
	assert.Equal(t, DefaultPlotScale, plan.ScalePxPerMeter)
}

func TestCreateFromUploadWithoutImage(t *testing.T) {
	s := newServer(t, 0)

	body, ct := multipartBody(t, map[string]string{"requirements": `{"kitchenOrientation":"east"}`}, nil)
	resp := s.do(t, http.MethodPost, "/plans", body, ct)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListAndDelete(t *testing.T) {
	s := newServer(t, 0)
	first := s.createPlan(t)
	s.createPlan(t)

	list := decode[map[string][]repository.PlanSummary](t, s.do(t, http.MethodGet, "/plans", nil, ""))
	assert.Len(t, list["plans"], 2)

	resp := s.do(t, http.MethodDelete, "/plans/"+first, nil, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/plans/"+first, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.do(t, http.MethodDelete, "/plans/"+first, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnknownIDs(t *testing.T) {
	s := newServer(t, 0)

	for _, path := range []string{"/plans/nope", "/plans/nope/scene", "/plans/nope/render.svg", "/plans/nope/view", "/plans/nope/export/json", "/jobs/nope"} {
		resp := s.do(t, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestExportJSON(t *testing.T) {
	s := newServer(t, 0)
	id := s.createPlan(t)

	resp := s.do(t, http.MethodGet, "/plans/"+id+"/export/json", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "floor-plan-1700000000000.json")
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	doc, err := export.Decode(resp.Body)
	require.NoError(t, err)
	assert.Len(t, doc.Rooms, 7)
	assert.Equal(t, models.East, doc.Requirements.KitchenFacing)
	assert.Equal(t, "2023-11-14T22:13:20.000Z", doc.Generated)
}

func TestExportImages(t *testing.T) {
	s := newServer(t, 0)
	id := s.createPlan(t)

	resp := s.do(t, http.MethodGet, "/plans/"+id+"/export/svg", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	resp = s.do(t, http.MethodGet, "/plans/"+id+"/export/png", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestExportPlaceholders(t *testing.T) {
	s := newServer(t, 0)
	id := s.createPlan(t)

	for _, f := range []string{"pdf", "dxf"} {
		resp := s.do(t, http.MethodGet, "/plans/"+id+"/export/"+f, nil, "")
		assert.Equal(t, http.StatusNotImplemented, resp.StatusCode, f)
	}
	resp := s.do(t, http.MethodGet, "/plans/"+id+"/export/docx", nil, "")
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}

func TestRenderSVG(t *testing.T) {
	s := newServer(t, 0)
	id := s.createPlan(t)

	resp := s.do(t, http.MethodGet, "/plans/"+id+"/render.svg?zoom=2&panX=10", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), `width="400"`)

	resp = s.do(t, http.MethodGet, "/plans/"+id+"/render.svg?width=0", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/plans/"+id+"/render.svg?zoom=big", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRenderRejectsOversizedCanvas(t *testing.T) {
	s := newServer(t, 0)
	id := s.createPlan(t)

	for _, q := range []string{"width=100000&height=100000", "width=4097", "height=4097"} {
		resp := s.do(t, http.MethodGet, "/plans/"+id+"/render.png?"+q, nil, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Contains(t, body["error"], "exceeds", q)
	}

	resp := s.do(t, http.MethodGet, "/plans/"+id+"/render.svg?width=4096&height=1", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewPlanHandlerClampsCanvas(t *testing.T) {
	h := NewPlanHandler(nil, nil, nil, Canvas{Width: MaxCanvasSide + 1, Height: 600}, logging.Discard())
	assert.Equal(t, Canvas{Width: render.DefaultCanvasWidth, Height: render.DefaultCanvasHeight}, h.canvas)
}

func TestRenderPNG(t *testing.T) {
	s := newServer(t, 0)
	id := s.createPlan(t)

	resp := s.do(t, http.MethodGet, "/plans/"+id+"/render.png?width=200&height=150", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 150), img.Bounds())
}

func TestScene(t *testing.T) {
	s := newServer(t, 0)
	id := s.createPlan(t)

	resp := s.do(t, http.MethodGet, "/plans/"+id+"/scene", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sc := decode[models.Scene](t, resp)

	assert.Equal(t, "cm", sc.Unit)
	layer := sc.Layers[sc.SelectedLayer]
	assert.Len(t, layer.Areas, 7)
	assert.Len(t, layer.Lines, 32)
}

func TestViewActions(t *testing.T) {
	s := newServer(t, 0)
	id := s.createPlan(t)
	path := "/plans/" + id + "/view"

	view := decode[render.ViewState](t, s.do(t, http.MethodGet, path, nil, ""))
	assert.Equal(t, render.DefaultView(), view)

	view = decode[render.ViewState](t, s.doJSON(t, http.MethodPost, path, viewRequest{Action: "zoomIn"}))
	assert.InDelta(t, 1.2, view.Zoom, 1e-9)

	view = decode[render.ViewState](t, s.doJSON(t, http.MethodPost, path, viewRequest{Action: "pan", DX: 30, DY: -10}))
	assert.Equal(t, 30.0, view.PanX)
	assert.Equal(t, -10.0, view.PanY)

	view = decode[render.ViewState](t, s.doJSON(t, http.MethodPost, path, viewRequest{
		Action: "drag",
		Path:   []render.Pointer{{X: 0, Y: 0}, {X: 5, Y: 5}},
	}))
	assert.Equal(t, 35.0, view.PanX)
	assert.Equal(t, -5.0, view.PanY)

	for i := 0; i < 20; i++ {
		view = decode[render.ViewState](t, s.doJSON(t, http.MethodPost, path, viewRequest{Action: "zoomOut"}))
	}
	assert.Equal(t, render.MinZoom, view.Zoom)

	view = decode[render.ViewState](t, s.doJSON(t, http.MethodPost, path, viewRequest{Action: "reset"}))
	assert.Equal(t, render.DefaultView(), view)

	resp := s.doJSON(t, http.MethodPost, path, viewRequest{Action: "spin"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(fmt.Errorf("x: %w", repository.ErrNotFound)))
	assert.Equal(t, http.StatusNotImplemented, statusFor(export.ErrUnsupportedFormat))
	assert.Equal(t, http.StatusBadRequest, statusFor(render.ErrRenderTargetUnavailable))
	assert.Equal(t, http.StatusInternalServerError, statusFor(io.ErrUnexpectedEOF))
}
