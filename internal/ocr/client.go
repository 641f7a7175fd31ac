// Package ocr is a client for the OCR.space text recognition API, used to
// read a photographed sign-up sheet.
package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// DefaultEndpoint is the public OCR.space parse endpoint.
const DefaultEndpoint = "https://api.ocr.space/parse/image"

var (
	ErrEmptyImage = errors.New("image is empty")
	ErrNoResults  = errors.New("no text recognized")
)

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected OCR status %d: %s", e.StatusCode, e.Body)
}

// ProcessingError is returned when the service accepted the request but
// reported that it could not process the image.
type ProcessingError struct {
	Message string
}

func (e *ProcessingError) Error() string {
	return "OCR processing failed: " + e.Message
}

// Client posts images to the recognition endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient returns a Client that authenticates with apiKey. Requests time
// out after timeout; zero means 30 seconds.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &HeaderTransport{
				Header:    http.Header{"Apikey": []string{apiKey}},
				wrappedRT: http.DefaultTransport,
			},
		},
	}
}

type parseResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool `json:"IsErroredOnProcessing"`
	// ErrorMessage is a string or a list of strings depending on the failure.
	ErrorMessage json.RawMessage `json:"ErrorMessage"`
}

// ExtractText sends a JPEG image and returns the recognized text.
// There is no retry; callers report the failure and let the user try again.
func (c *Client) ExtractText(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", ErrEmptyImage
	}

	body, contentType, err := encodeForm(image)
	if err != nil {
		return "", fmt.Errorf("encoding OCR form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return "", fmt.Errorf("creating OCR request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("performing OCR request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(msg)}
	}

	var parsed parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding OCR JSON: %w", err)
	}
	if parsed.IsErroredOnProcessing {
		return "", &ProcessingError{Message: errorMessage(parsed.ErrorMessage)}
	}
	if len(parsed.ParsedResults) == 0 {
		return "", ErrNoResults
	}
	return parsed.ParsedResults[0].ParsedText, nil
}

func encodeForm(image []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"base64Image", "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image)},
		{"language", "eng"},
		{"isOverlayRequired", "false"},
		{"detectOrientation", "true"},
		{"scale", "true"},
		{"OCREngine", "2"},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func errorMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "unknown error"
	}
	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		return one
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return strings.Join(many, "; ")
	}
	return string(raw)
}
