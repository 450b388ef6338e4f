// Package pinning uploads badge artifacts to IPFS through a
// Pinata-compatible pinning API.
package pinning

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/reflekt/repute/pkg/metrics"
)

// Pinner uploads content to IPFS and returns the resulting CID.
type Pinner interface {
	// PinFile uploads a file under the given pin name.
	PinFile(ctx context.Context, name, filename string, r io.Reader) (string, error)

	// PinJSON uploads a JSON document under the given pin name.
	PinJSON(ctx context.Context, name string, content any) (string, error)

	// Configured reports whether the pinner has credentials.
	Configured() bool
}

// Default Pinata configuration constants.
const (
	defaultBaseURL = "https://api.pinata.cloud"
	defaultTimeout = 60 * time.Second

	fileEndpoint = "/pinning/pinFileToIPFS"
	jsonEndpoint = "/pinning/pinJSONToIPFS"
)

// PinataClient implements Pinner against the Pinata HTTP API.
// An empty JWT leaves the client unconfigured; every pin attempt then
// fails fast with ErrNotConfigured.
type PinataClient struct {
	jwt     string
	baseURL string
	client  *http.Client
}

// NewPinata creates a Pinata client with configuration options.
func NewPinata(jwt string, opts ...Option) *PinataClient {
	p := &PinataClient{
		jwt:     jwt,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Configured reports whether a JWT is present.
func (p *PinataClient) Configured() bool { return p.jwt != "" }

type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
}

// PinFile uploads a file via multipart form.
func (p *PinataClient) PinFile(ctx context.Context, name, filename string, r io.Reader) (string, error) {
	if !p.Configured() {
		return "", ErrNotConfigured
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpload, err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpload, err)
	}

	meta, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpload, err)
	}
	if err := mw.WriteField("pinataMetadata", string(meta)); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpload, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpload, err)
	}

	return p.post(ctx, fileEndpoint, mw.FormDataContentType(), &body)
}

// PinJSON uploads a metadata document.
func (p *PinataClient) PinJSON(ctx context.Context, name string, content any) (string, error) {
	if !p.Configured() {
		return "", ErrNotConfigured
	}

	payload, err := json.Marshal(map[string]any{
		"pinataContent":  content,
		"pinataMetadata": map[string]string{"name": name},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpload, err)
	}

	return p.post(ctx, jsonEndpoint, "application/json", bytes.NewReader(payload))
}

func (p *PinataClient) post(ctx context.Context, endpoint, contentType string, body io.Reader) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+endpoint, body)
	if err != nil {
		metrics.RecordPinFailure()
		return "", fmt.Errorf("%w: %w", ErrUpload, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+p.jwt)

	resp, err := p.client.Do(req)
	if err != nil {
		metrics.RecordPinFailure()
		return "", fmt.Errorf("%w: %w", ErrUpload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordPinFailure()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", ErrUpload, resp.StatusCode, string(msg))
	}

	var pr pinResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		metrics.RecordPinFailure()
		return "", fmt.Errorf("%w: decode response: %w", ErrUpload, err)
	}
	if pr.IpfsHash == "" {
		metrics.RecordPinFailure()
		return "", fmt.Errorf("%w: empty ipfs hash in response", ErrUpload)
	}

	metrics.RecordPinSuccess()
	return pr.IpfsHash, nil
}
