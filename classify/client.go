package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Category is one entry of a classification result. Probability is a
// percentage in [0,100] as reported by the service; values outside that
// range are clamped at render time, not here.
type Category struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
}

// Client talks to the remote classification service. It exposes two
// calls mirroring the service's two endpoints: Analyze for raw text and
// Upload for document files.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid service URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid service URL %q: scheme must be http or https", baseURL)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// Per-call deadlines come from the caller's context, so no
		// client-level timeout here.
		httpClient: &http.Client{},
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	Categories []Category `json:"categories"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Analyze submits raw text for classification. The caller bounds the
// wait through ctx.
func (c *Client) Analyze(ctx context.Context, text string) ([]Category, error) {
	body, err := json.Marshal(analyzeRequest{Text: text})
	if err != nil {
		return nil, &Error{Kind: KindRequestFailed, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindRequestFailed, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// Upload submits a document file for classification as a single
// multipart field named "file". The whole file is buffered before
// dispatch so a read error surfaces as a construction failure rather
// than a broken request.
func (c *Client) Upload(ctx context.Context, fileName string, file io.Reader) ([]Category, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return nil, &Error{Kind: KindRequestFailed, Err: err}
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, &Error{Kind: KindRequestFailed, Err: fmt.Errorf("reading %s: %w", fileName, err)}
	}
	if err := mw.Close(); err != nil {
		return nil, &Error{Kind: KindRequestFailed, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return nil, &Error{Kind: KindRequestFailed, Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]Category, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The request left the client but nothing came back:
		// connection refused, DNS failure, or the ctx deadline fired.
		return nil, &Error{Kind: KindUnreachable, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindUnreachable, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		serverMsg := ""
		var eResp errorResponse
		if jsonErr := json.Unmarshal(raw, &eResp); jsonErr == nil {
			serverMsg = eResp.Message
		}
		return nil, &Error{
			Kind:       KindServerRejected,
			StatusCode: resp.StatusCode,
			ServerMsg:  serverMsg,
		}
	}

	var aResp analyzeResponse
	if err := json.Unmarshal(raw, &aResp); err != nil {
		return nil, &Error{Kind: KindUnknown, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if aResp.Categories == nil {
		// A success body without a categories list still settles the
		// reply. Callers distinguish settled from pending by nilness.
		return []Category{}, nil
	}

	return aResp.Categories, nil
}

// Ping checks that the service base URL is reachable. Used at startup
// for a connectivity hint, never as a gate.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
