package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rachef/sitecms/internal/domain/document"
	"github.com/rachef/sitecms/internal/domain/entities"
	"github.com/rachef/sitecms/internal/infrastructure/config"
	"github.com/rachef/sitecms/internal/infrastructure/logger"
	"github.com/rachef/sitecms/internal/ports"
)

const (
	defaultTimeout        = 15 * time.Second
	defaultConnectTimeout = 5 * time.Second
	maxErrorBody          = 512
)

var _ ports.DocumentGateway = (*Client)(nil)

// Client talks to the REST backend that stores the site documents and assets
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logger.Logger
}

// New creates a backend client for cfg
func New(cfg config.BackendConfig, logger *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	dialer := &net.Dialer{Timeout: defaultConnectTimeout}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Transport: &http.Transport{
				DialContext:         dialer.DialContext,
				TLSHandshakeTimeout: defaultConnectTimeout,
			},
			Timeout: timeout,
		},
		logger: logger.WithComponent("gateway"),
	}
}

func loadEndpoint(file entities.File) string   { return "/api/load-" + string(file) }
func saveEndpoint(file entities.File) string   { return "/api/save-" + string(file) }
func importEndpoint(file entities.File) string { return "/api/" + string(file) }

// Load fetches file from the backend
func (c *Client) Load(ctx context.Context, file entities.File) (document.Document, error) {
	var doc document.Document
	err := c.do(ctx, http.MethodGet, loadEndpoint(file), nil, "", func(body io.Reader) error {
		var err error
		doc, err = document.Decode(body)
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Save replaces file on the backend with doc
func (c *Client) Save(ctx context.Context, file entities.File, doc document.Document) error {
	return c.postJSON(ctx, saveEndpoint(file), doc)
}

// Import pushes doc through the bulk import endpoint of file
func (c *Client) Import(ctx context.Context, file entities.File, doc document.Document) error {
	return c.postJSON(ctx, importEndpoint(file), doc)
}

// Upload sends an asset as the multipart field "file" and returns the name
// the backend stored it under.
func (c *Client) Upload(ctx context.Context, name string, body io.Reader) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("failed to create upload part: %w", err)
	}
	if _, err := io.Copy(part, body); err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finish upload body: %w", err)
	}

	var resp struct {
		Filename string `json:"filename"`
	}
	err = c.do(ctx, http.MethodPost, "/api/upload", &buf, w.FormDataContentType(), func(r io.Reader) error {
		return json.NewDecoder(r).Decode(&resp)
	})
	if err != nil {
		return "", err
	}
	if resp.Filename == "" {
		return "", fmt.Errorf("%w: upload response has no filename", entities.ErrGateway)
	}
	return resp.Filename, nil
}

// Ping checks that the backend serves the data document
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, loadEndpoint(entities.FileData), nil, "", nil)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, doc document.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return c.do(ctx, http.MethodPost, endpoint, bytes.NewReader(body), "application/json", nil)
}

// do sends one request. Any status outside 2xx fails with ErrGateway; on
// success decode, when set, reads the response body.
func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, contentType string, decode func(io.Reader) error) (err error) {
	start := time.Now()
	status := 0
	defer func() {
		c.logger.LogBackendCall(method, endpoint, status, float64(time.Since(start).Microseconds())/1000, err)
	}()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", entities.ErrGateway, method, endpoint, err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %s %s returned %d: %s", entities.ErrGateway, method, endpoint, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if decode == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := decode(resp.Body); err != nil {
		return fmt.Errorf("%w: %s %s: invalid response: %v", entities.ErrGateway, method, endpoint, err)
	}
	return nil
}
