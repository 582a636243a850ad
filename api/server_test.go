package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/stationcast/api/apitest"
	"github.com/killallgit/stationcast/api/types"
	"github.com/killallgit/stationcast/internal/services/episodes"
	"github.com/killallgit/stationcast/pkg/config"
)

func TestServer_InitializeRequiresDependencies(t *testing.T) {
	s := NewServer(config.ServerConfig{Host: "127.0.0.1", Port: 9999})
	assert.Equal(t, "127.0.0.1:9999", s.Addr())
	assert.Error(t, s.Initialize())
}

func TestServer_Routes(t *testing.T) {
	env := apitest.New(t)
	s := NewServer(config.ServerConfig{})
	s.SetDependencies(env.Deps)
	require.NoError(t, s.Initialize())
	router := s.Engine()

	keyHeader := http.Header{APIKeyHeader: []string{apitest.APIKey}}
	completion := types.CompletionRequest{JobID: "1", TaskStatus: episodes.TaskStatusSuccess}

	tests := []struct {
		name           string
		method         string
		path           string
		body           interface{}
		header         http.Header
		expectedStatus int
	}{
		{name: "health", method: http.MethodGet, path: "/health", expectedStatus: http.StatusOK},
		{name: "version", method: http.MethodGet, path: "/", expectedStatus: http.StatusOK},
		{name: "docs redirect", method: http.MethodGet, path: "/docs", expectedStatus: http.StatusMovedPermanently},
		{name: "unknown path", method: http.MethodGet, path: "/nope", expectedStatus: http.StatusNotFound},
		{name: "podcast list", method: http.MethodGet, path: "/api/v1/podcasts", expectedStatus: http.StatusOK},
		{name: "media without key", method: http.MethodGet, path: "/rest/media/1", expectedStatus: http.StatusUnauthorized},
		{name: "media with key", method: http.MethodGet, path: "/rest/media/1", header: keyHeader, expectedStatus: http.StatusNotFound},
		{name: "public download", method: http.MethodGet, path: "/rest/media/1/download", expectedStatus: http.StatusNotFound},
		{name: "completion without key", method: http.MethodPost, path: "/rest/podcast-episodes/completions", body: completion, expectedStatus: http.StatusUnauthorized},
		{name: "completion with key", method: http.MethodPost, path: "/rest/podcast-episodes/completions", body: completion, header: keyHeader, expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := apitest.Do(router, tt.method, tt.path, tt.body, tt.header)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}

	require.NoError(t, s.Shutdown(context.Background()))
}
