package download

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testOptions(t *testing.T) Options {
	options := DefaultOptions()
	options.TempDir = t.TempDir()
	options.Timeout = 10 * time.Second
	return options
}

func TestDefaultOptions(t *testing.T) {
	options := DefaultOptions()

	if options.MaxSize != 1024*1024*1024 {
		t.Errorf("Expected MaxSize 1GiB, got %v", options.MaxSize)
	}
	if options.Timeout != 30*time.Minute {
		t.Errorf("Expected Timeout 30m, got %v", options.Timeout)
	}
	if !options.ValidateAudio {
		t.Error("Expected ValidateAudio to default to true")
	}
}

func TestDownloadToTemp_Success(t *testing.T) {
	audioData := strings.Repeat("audio-data", 128) // 1280 bytes
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "stationcast/1.0" {
			t.Errorf("Unexpected User-Agent %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Header().Set("Last-Modified", "Mon, 02 Jan 2006 15:04:05 GMT")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(audioData))
	}))
	defer server.Close()

	var progressCalls int
	options := testOptions(t)
	options.ProgressFunc = func(downloaded, total int64) { progressCalls++ }
	downloader := NewDownloader(options)

	result, err := downloader.DownloadToTemp(context.Background(), server.URL+"/shows/ep1.mp3?token=x", 12345)
	if err != nil {
		t.Fatalf("Expected successful download, got error: %v", err)
	}
	defer func() {
		_ = CleanupTempFile(result.FilePath)
	}()

	if result.ContentType != "audio/mpeg" {
		t.Errorf("Expected content type 'audio/mpeg', got %v", result.ContentType)
	}
	if result.ContentLength != 1280 {
		t.Errorf("Expected content length 1280, got %v", result.ContentLength)
	}
	if result.FileName != "ep1.mp3" {
		t.Errorf("Expected file name ep1.mp3, got %q", result.FileName)
	}
	if result.LastModified.IsZero() {
		t.Error("Expected Last-Modified to be parsed")
	}
	if progressCalls == 0 {
		t.Error("Expected progress callback to be called")
	}
	if filepath.Dir(result.FilePath) != options.TempDir {
		t.Errorf("Expected file in %s, got %s", options.TempDir, result.FilePath)
	}

	data, err := os.ReadFile(result.FilePath)
	if err != nil {
		t.Fatalf("Downloaded file not readable: %v", err)
	}
	if string(data) != audioData {
		t.Error("Downloaded content does not match")
	}
}

func TestDownloadToTemp_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewDownloader(testOptions(t)).DownloadToTemp(context.Background(), server.URL, 1)
	if err == nil {
		t.Fatal("Expected error for 404 response, got nil")
	}
	if !strings.Contains(err.Error(), "server returned status 404") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestDownloadToTemp_InvalidContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>Not audio</html>"))
	}))
	defer server.Close()

	_, err := NewDownloader(testOptions(t)).DownloadToTemp(context.Background(), server.URL, 12345)
	if err == nil {
		t.Fatal("Expected error for invalid content type, got nil")
	}
	if !strings.Contains(err.Error(), "invalid content type: text/html") {
		t.Errorf("Expected content type error, got: %v", err.Error())
	}
}

func TestDownloadToTemp_FileTooLarge(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "declared content length",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "audio/mpeg")
				w.Header().Set("Content-Length", "1000000000")
				w.WriteHeader(http.StatusOK)
			},
		},
		{
			name: "chunked body over the limit",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "audio/mpeg")
				w.WriteHeader(http.StatusOK)
				for i := 0; i < 4; i++ {
					_, _ = w.Write([]byte(strings.Repeat("x", 512)))
					w.(http.Flusher).Flush()
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			options := testOptions(t)
			options.MaxSize = 1024
			_, err := NewDownloader(options).DownloadToTemp(context.Background(), server.URL, 12345)
			if !errors.Is(err, ErrTooLarge) {
				t.Fatalf("Expected ErrTooLarge, got %v", err)
			}

			leftovers, _ := filepath.Glob(filepath.Join(options.TempDir, "episode_*"))
			if len(leftovers) != 0 {
				t.Errorf("Expected partial download to be removed, found %v", leftovers)
			}
		})
	}
}

func TestFileNameFromURL(t *testing.T) {
	testCases := []struct {
		url      string
		expected string
	}{
		{"http://example.com/a/b/show.mp3", "show.mp3"},
		{"http://example.com/show.m4a?x=1", "show.m4a"},
		{"http://example.com/download", "download.mp3"},
		{"http://example.com/", "episode.mp3"},
		{"http://example.com", "episode.mp3"},
	}

	for _, tc := range testCases {
		if got := fileNameFromURL(tc.url); got != tc.expected {
			t.Errorf("fileNameFromURL(%q) = %q, expected %q", tc.url, got, tc.expected)
		}
	}
}

func TestIsAudioContentType(t *testing.T) {
	testCases := []struct {
		contentType string
		expected    bool
	}{
		{"audio/mpeg", true},
		{"AUDIO/MPEG", true},
		{"application/octet-stream", true},
		{"text/html", false},
		{"application/json", false},
		{"", false},
	}

	for _, tc := range testCases {
		if result := isAudioContentType(tc.contentType); result != tc.expected {
			t.Errorf("isAudioContentType(%q) = %v, expected %v", tc.contentType, result, tc.expected)
		}
	}
}

func TestCleanupTempFile(t *testing.T) {
	tmpFile, err := os.CreateTemp(t.TempDir(), "test_cleanup_*")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	tmpFile.Close()

	if err := CleanupTempFile(tmpFile.Name()); err != nil {
		t.Errorf("CleanupTempFile failed: %v", err)
	}
	if _, err := os.Stat(tmpFile.Name()); !os.IsNotExist(err) {
		t.Error("Temp file should not exist after cleanup")
	}

	// removing twice and empty paths are not errors
	if err := CleanupTempFile(tmpFile.Name()); err != nil {
		t.Errorf("Second cleanup should not error, got: %v", err)
	}
	if err := CleanupTempFile(""); err != nil {
		t.Errorf("CleanupTempFile with empty path should not error, got: %v", err)
	}
}

func TestCleanupOldTempFiles(t *testing.T) {
	tmpDir := t.TempDir()

	oldFile, err := os.CreateTemp(tmpDir, "episode_12345_*")
	if err != nil {
		t.Fatalf("Failed to create old file: %v", err)
	}
	oldFile.Close()

	newFile, err := os.CreateTemp(tmpDir, "episode_67890_*")
	if err != nil {
		t.Fatalf("Failed to create new file: %v", err)
	}
	newFile.Close()

	oldTime := time.Now().Add(-25 * time.Hour)
	_ = os.Chtimes(oldFile.Name(), oldTime, oldTime)

	removed, err := CleanupOldTempFiles(tmpDir, 24*time.Hour)
	if err != nil {
		t.Errorf("CleanupOldTempFiles failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("Expected 1 removed file, got %d", removed)
	}
	if _, err := os.Stat(oldFile.Name()); !os.IsNotExist(err) {
		t.Error("Old file should have been cleaned up")
	}
	if _, err := os.Stat(newFile.Name()); os.IsNotExist(err) {
		t.Error("New file should still exist")
	}
}
