package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"
	"strconv"
	"strings"

	"floorplanner/internal/planner/models"

	"github.com/gofiber/fiber/v3"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DefaultPlotScale is used when an upload does not say how many pixels make
// a meter.
const DefaultPlotScale = 100.0

type createRequest struct {
	Requirements models.RequirementSpec `json:"requirements"`
	Plot         models.PlotSurface     `json:"plot"`
}

// parseCreateRequest accepts either a JSON body or a multipart form carrying
// the plot image.
func parseCreateRequest(c fiber.Ctx) (createRequest, error) {
	if strings.HasPrefix(c.Get("Content-Type"), "multipart/form-data") {
		return parseUpload(c)
	}

	var req createRequest
	if len(c.Body()) == 0 {
		return req, errors.New("empty body")
	}
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return req, fmt.Errorf("invalid json: %w", err)
	}
	return req, nil
}

// parseUpload reads the form fields requirements (JSON), width, height and
// scale plus an optional image file. Width and height fall back to the
// image's pixel size.
func parseUpload(c fiber.Ctx) (createRequest, error) {
	var req createRequest

	raw := c.FormValue("requirements")
	if raw == "" {
		return req, errors.New("requirements field required")
	}
	if err := json.Unmarshal([]byte(raw), &req.Requirements); err != nil {
		return req, fmt.Errorf("invalid requirements json: %w", err)
	}

	var err error
	if req.Plot.ScalePxPerMeter, err = formFloat(c, "scale", DefaultPlotScale); err != nil {
		return req, err
	}
	if req.Plot.WidthPx, err = formFloat(c, "width", 0); err != nil {
		return req, err
	}
	if req.Plot.HeightPx, err = formFloat(c, "height", 0); err != nil {
		return req, err
	}

	if req.Plot.WidthPx > 0 && req.Plot.HeightPx > 0 {
		return req, nil
	}

	file, err := c.FormFile("image")
	if err != nil {
		return req, errors.New("image file or width and height required")
	}
	cfg, err := imageConfig(file)
	if err != nil {
		return req, err
	}
	req.Plot.WidthPx = float64(cfg.Width)
	req.Plot.HeightPx = float64(cfg.Height)
	return req, nil
}

func imageConfig(fh *multipart.FileHeader) (image.Config, error) {
	f, err := fh.Open()
	if err != nil {
		return image.Config{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return image.Config{}, fmt.Errorf("unsupported plot image %s: %w", fh.Filename, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return image.Config{}, fmt.Errorf("plot image %s (%s) is empty", fh.Filename, format)
	}
	return cfg, nil
}

func formFloat(c fiber.Ctx, key string, def float64) (float64, error) {
	v := strings.TrimSpace(c.FormValue(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", key, v)
	}
	return f, nil
}
