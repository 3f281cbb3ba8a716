package proxy

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Proxy Handler
// ============================================================

// Proxy forwards gateway requests to one upstream service.
type Proxy struct {
	base   string
	client *http.Client
	logger *log.Logger
}

func New(baseURL string, timeout time.Duration, logger *log.Logger) *Proxy {
	return &Proxy{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Mount forwards everything under prefix, keeping the rest of the path and
// the query string: prefix/plans/1?zoom=2 -> base/plans/1?zoom=2.
func (p *Proxy) Mount(r fiber.Router) {
	r.All("/*", func(c fiber.Ctx) error {
		return p.Forward(c, p.Target("/"+c.Params("*"), string(c.Request().URI().QueryString())))
	})
}

// Target builds the upstream URL for path and raw query.
func (p *Proxy) Target(path, query string) string {
	target := p.base + path
	if query != "" {
		target += "?" + query
	}
	return target
}

// Forward sends the request to targetURL, rebuilding multipart bodies.
func (p *Proxy) Forward(c fiber.Ctx, targetURL string) error {
	p.logger.Debug("forwarding", "method", c.Method(), "path", c.Path(), "target", targetURL, "bytes", len(c.Body()))

	contentType := c.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		return p.sendRaw(c, targetURL, contentType)
	}

	return p.sendMultipart(c, targetURL)
}

func (p *Proxy) sendRaw(c fiber.Ctx, targetURL, contentType string) error {
	req, err := http.NewRequestWithContext(c.Context(), c.Method(), targetURL, bytes.NewReader(c.Body()))
	if err != nil {
		p.logger.Error("build request", "err", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "proxy failed"})
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	copyRequestHeaders(c, req)

	return p.do(c, req)
}

func (p *Proxy) sendMultipart(c fiber.Ctx, targetURL string) error {
	form, err := c.MultipartForm()
	if err != nil {
		p.logger.Warn("parse multipart", "err", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid multipart data"})
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, files := range form.File {
		for _, fileHeader := range files {
			if err := copyFilePart(writer, key, fileHeader); err != nil {
				p.logger.Warn("skip multipart file", "field", key, "file", fileHeader.Filename, "err", err)
			}
		}
	}

	for key, values := range form.Value {
		for _, value := range values {
			if err := writer.WriteField(key, value); err != nil {
				return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "proxy failed"})
			}
		}
	}

	if err := writer.Close(); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "proxy failed"})
	}

	req, err := http.NewRequestWithContext(c.Context(), c.Method(), targetURL, bytes.NewReader(body.Bytes()))
	if err != nil {
		p.logger.Error("build multipart request", "err", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "proxy failed"})
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	copyRequestHeaders(c, req)

	return p.do(c, req)
}

func copyFilePart(writer *multipart.Writer, key string, fh *multipart.FileHeader) error {
	file, err := fh.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, key, fh.Filename))
	h.Set("Content-Type", fh.Header.Get("Content-Type"))

	part, err := writer.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, file)
	return err
}

func copyRequestHeaders(c fiber.Ctx, req *http.Request) {
	for _, key := range []string{"Authorization", "Accept"} {
		if v := c.Get(key); v != "" {
			req.Header.Set(key, v)
		}
	}
}

func (p *Proxy) do(c fiber.Ctx, req *http.Request) error {
	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Error("upstream unreachable", "target", req.URL.String(), "err", err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "failed to reach upstream service"})
	}
	defer resp.Body.Close()

	return p.copyResponse(c, resp)
}

func (p *Proxy) copyResponse(c fiber.Ctx, resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		p.logger.Error("read upstream response", "err", err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "invalid upstream response"})
	}

	for key, values := range resp.Header {
		if len(values) > 0 {
			c.Set(key, values[0])
		}
	}

	c.Status(resp.StatusCode)
	return c.Send(data)
}
