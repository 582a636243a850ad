package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Uploader delivers a downloaded file to a station media endpoint and
// returns the id the station assigned to it
type Uploader interface {
	Upload(ctx context.Context, endpoint, apiKey, path, name string) (uint, error)
}

// HTTPUploader posts files as multipart form uploads
type HTTPUploader struct {
	client *http.Client
}

// NewHTTPUploader creates an uploader; a zero timeout means no timeout
func NewHTTPUploader(timeout time.Duration) *HTTPUploader {
	return &HTTPUploader{client: &http.Client{Timeout: timeout}}
}

type uploadResponse struct {
	ID uint `json:"id"`
}

// Upload streams the file at path to endpoint as form field "file". The API
// key travels as the basic-auth user name.
func (u *HTTPUploader) Upload(ctx context.Context, endpoint, apiKey, path, name string) (uint, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if name == "" {
		name = filepath.Base(path)
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", name)
		if err == nil {
			_, err = io.Copy(part, f)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, pr)
	if err != nil {
		pr.Close()
		return 0, fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.SetBasicAuth(apiKey, "")

	resp, err := u.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("uploading to %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("upload rejected with status %d: %s", resp.StatusCode, body)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decoding upload response: %w", err)
	}
	if out.ID == 0 {
		return 0, fmt.Errorf("upload response carries no file id")
	}
	return out.ID, nil
}
