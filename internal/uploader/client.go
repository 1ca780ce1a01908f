// Package uploader is the HTTP client side of the archive upload API, used
// by the folder watcher.
package uploader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Client uploads board log files to an archive server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Client for the archive at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Result is the server's answer to an accepted upload.
type Result struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	TotalParsed int    `json:"total_parsed"`
	NewEvents   int    `json:"new_events"`
	NewPlayers  int    `json:"new_players"`
}

// Upload posts the file at path as multipart form data. Accepted is true
// only when the server confirms the upload with status "ok"; a reachable
// server rejecting the file (empty, too old) is not an error.
func (c *Client) Upload(path string) (accepted bool, res Result, err error) {
	f, err := os.Open(path)
	if err != nil {
		return false, res, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return false, res, fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return false, res, fmt.Errorf("build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return false, res, fmt.Errorf("build upload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/api/upload", &body)
	if err != nil {
		return false, res, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("User-Agent", "board-archive-watcher/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, res, fmt.Errorf("upload %s: %w", filepath.Base(path), err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		snippet := string(raw)
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return false, res, fmt.Errorf("upload %s: HTTP %d: %s", filepath.Base(path), resp.StatusCode, snippet)
	}

	if err := json.Unmarshal(raw, &res); err != nil {
		return false, res, fmt.Errorf("decode upload response: %w", err)
	}
	return res.Status == "ok", res, nil
}
