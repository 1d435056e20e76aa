// Package faceapi is a client for a DeepFace-compatible face recognition
// service. Detection and verification are fully delegated to the service;
// this package only ships images and interprets results.
package faceapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Client talks to one face service instance.
type Client struct {
	baseURL  *url.URL
	model    string
	detector string
	httpc    *http.Client
}

// New creates a face service client. model and detector are passed through
// to the service with every request.
func New(rawURL, model, detector string) (*Client, error) {
	if rawURL == "" {
		return nil, errors.New("face service URL is not configured")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid face service URL: %w", err)
	}
	return &Client{
		baseURL:  parsed,
		model:    model,
		detector: detector,
		httpc:    &http.Client{Timeout: 2 * time.Minute},
	}, nil
}

// Verify checks whether the two images show the same person. The result
// includes the detected facial area for each input.
func (c *Client) Verify(ctx context.Context, img1Path, img2Path string) (*VerifyResult, error) {
	img1, err := encodeImage(img1Path)
	if err != nil {
		return nil, err
	}
	img2, err := encodeImage(img2Path)
	if err != nil {
		return nil, err
	}

	return doPostJSON[VerifyResult](ctx, c, "verify", verifyRequest{
		Img1:            img1,
		Img2:            img2,
		ModelName:       c.model,
		DetectorBackend: c.detector,
	})
}

// encodeImage reads a local image and encodes it as a base64 data URI, the
// form the service accepts in JSON bodies.
func encodeImage(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided image path
	if err != nil {
		return "", fmt.Errorf("could not read image %s: %w", path, err)
	}

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// doPostJSON performs a POST request with a JSON body and unmarshals the
// JSON response into the result type.
func doPostJSON[T any](ctx context.Context, c *Client, endpoint string, requestBody any) (*T, error) {
	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL.JoinPath(endpoint).String(), bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("could not unmarshal response: %w", err)
	}

	return &result, nil
}

// readErrorBody reads the response body for error messages.
// Returns a placeholder if reading fails (we're already in an error path).
func readErrorBody(r io.Reader) string {
	body, err := io.ReadAll(r)
	if err != nil {
		return "(could not read error body)"
	}
	return string(body)
}
