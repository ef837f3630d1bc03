// Package matching is the client for the external resume/job matching model.
// The model is a separate service; this package only moves bytes to it and
// decodes what comes back.
package matching

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

type Match struct {
	ID    string  `json:"id"`
	Title string  `json:"title,omitempty"`
	Score float64 `json:"score"`
}

type matchResponse struct {
	Matches []Match `json:"matches"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeoutSeconds int) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
	}
}

// ResumeToPostings sends a resume file and returns job postings ranked by the
// model.
func (c *Client) ResumeToPostings(ctx context.Context, filename string, resume io.Reader) ([]Match, error) {
	return c.match(ctx, "/api/rtp", filename, resume)
}

// PostingToResumes sends a job posting document and returns resumes ranked by
// the model.
func (c *Client) PostingToResumes(ctx context.Context, filename string, posting io.Reader) ([]Match, error) {
	return c.match(ctx, "/api/ptr", filename, posting)
}

func (c *Client) match(ctx context.Context, path string, filename string, file io.Reader) ([]Match, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("match service: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("match service: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("match service: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("match service: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("match service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("match service: unexpected status %d", resp.StatusCode)
	}

	result := matchResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("match service: decode response: %w", err)
	}

	return result.Matches, nil
}
