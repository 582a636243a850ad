package media

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/stationcast/api/apitest"
	"github.com/killallgit/stationcast/api/types"
	"github.com/killallgit/stationcast/internal/services/episodes"
	"github.com/killallgit/stationcast/internal/services/feeds"
)

const uploadLimit = 4096

func setupRouter(t *testing.T) (*gin.Engine, *apitest.Env) {
	t.Helper()
	env := apitest.New(t)

	auth := func(c *gin.Context) {
		if user, _, ok := c.Request.BasicAuth(); !ok || user != apitest.APIKey {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
	limit := func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, uploadLimit)
		c.Next()
	}

	router := gin.New()
	RegisterRoutes(router.Group("/rest/media"), env.Deps, auth, limit, func(c *gin.Context) { c.Next() })
	return router, env
}

func authed(req *http.Request) *http.Request {
	req.SetBasicAuth(apitest.APIKey, "")
	return req
}

func uploadRequest(t *testing.T, field, name string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("note", "ignored"))
	fw, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/rest/media", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return authed(req)
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUpload(t *testing.T) {
	router, _ := setupRouter(t)
	content := []byte(strings.Repeat("x", 1000))

	w := serve(router, uploadRequest(t, "file", "episode-12.mp3", content))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var file types.File
	apitest.Decode(t, w, &file)
	assert.NotZero(t, file.ID)
	assert.Equal(t, "episode-12.mp3", file.Name)
	assert.Equal(t, int64(len(content)), file.Filesize)
	assert.Equal(t, "episode-12", file.TrackTitle)

	w = serve(router, authed(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/rest/media/%d", file.ID), nil)))
	require.Equal(t, http.StatusOK, w.Code)
	var got types.File
	apitest.Decode(t, w, &got)
	assert.Equal(t, file.ID, got.ID)

	// download is public
	w = serve(router, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/rest/media/%d/download", file.ID), nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, content, w.Body.Bytes())
	assert.Equal(t, "1000", w.Header().Get("Content-Length"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "episode-12.mp3")
}

func TestUpload_Errors(t *testing.T) {
	router, _ := setupRouter(t)

	notMultipart := authed(httptest.NewRequest(http.MethodPost, "/rest/media", strings.NewReader("{}")))
	notMultipart.Header.Set("Content-Type", "application/json")

	unauthenticated := uploadRequest(t, "file", "a.mp3", []byte("abc"))
	unauthenticated.Header.Del("Authorization")

	tests := []struct {
		name           string
		req            *http.Request
		expectedStatus int
	}{
		{name: "not multipart", req: notMultipart, expectedStatus: http.StatusBadRequest},
		{name: "wrong field", req: uploadRequest(t, "upload", "a.mp3", []byte("abc")), expectedStatus: http.StatusBadRequest},
		{name: "empty file", req: uploadRequest(t, "file", "a.mp3", nil), expectedStatus: http.StatusBadRequest},
		{name: "too large", req: uploadRequest(t, "file", "a.mp3", bytes.Repeat([]byte("x"), 4*uploadLimit)), expectedStatus: http.StatusRequestEntityTooLarge},
		{name: "no api key", req: unauthenticated, expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, tt.req)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}

func TestList(t *testing.T) {
	router, env := setupRouter(t)
	env.File(t, "a.mp3", []byte("aaa"))
	newest := env.File(t, "b.mp3", []byte("bbb"))

	w := serve(router, authed(httptest.NewRequest(http.MethodGet, "/rest/media?limit=1", nil)))
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.FilesResponse
	apitest.Decode(t, w, &resp)
	assert.Equal(t, int64(2), resp.Total)
	require.Len(t, resp.Files, 1)
	assert.Equal(t, newest.ID, resp.Files[0].ID)
}

func TestDownload_NotFound(t *testing.T) {
	router, _ := setupRouter(t)
	w := serve(router, httptest.NewRequest(http.MethodGet, "/rest/media/77/download", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublishUnpublish(t *testing.T) {
	router, env := setupRouter(t)
	file := env.File(t, "show.mp3", []byte("audio"))
	path := fmt.Sprintf("/rest/media/%d/publish", file.ID)

	w := serve(router, authed(httptest.NewRequest(http.MethodPut, path, nil)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var first types.EpisodeResponse
	apitest.Decode(t, w, &first)
	require.NotNil(t, first.Episode.FileID)
	assert.Equal(t, file.ID, *first.Episode.FileID)
	assert.Equal(t, fmt.Sprintf("%s/rest/media/%d/download", strings.TrimSuffix(apitest.StationURL, "/"), file.ID), first.Episode.EpisodeGUID)

	w = serve(router, authed(httptest.NewRequest(http.MethodPut, path, nil)))
	require.Equal(t, http.StatusOK, w.Code)
	var second types.EpisodeResponse
	apitest.Decode(t, w, &second)
	assert.Equal(t, first.Episode.ID, second.Episode.ID)

	assert.Equal(t, http.StatusNoContent, serve(router, authed(httptest.NewRequest(http.MethodDelete, path, nil))).Code)
	assert.Equal(t, http.StatusNotFound, serve(router, authed(httptest.NewRequest(http.MethodDelete, path, nil))).Code)

	_, err := env.Episodes.GetEpisode(context.Background(), first.Episode.ID)
	assert.ErrorIs(t, err, episodes.ErrEpisodeNotFound)
}

func TestPublish_MissingFile(t *testing.T) {
	router, _ := setupRouter(t)
	w := serve(router, authed(httptest.NewRequest(http.MethodPut, "/rest/media/5/publish", nil)))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDelete(t *testing.T) {
	router, env := setupRouter(t)
	ctx := context.Background()
	file := env.File(t, "show.mp3", []byte("audio"))
	episode, err := env.Episodes.Publish(ctx, file.ID)
	require.NoError(t, err)

	path := fmt.Sprintf("/rest/media/%d", file.ID)
	assert.Equal(t, http.StatusNoContent, serve(router, authed(httptest.NewRequest(http.MethodDelete, path, nil))).Code)
	assert.Equal(t, http.StatusNotFound, serve(router, authed(httptest.NewRequest(http.MethodGet, path, nil))).Code)
	assert.Equal(t, http.StatusNotFound, serve(router, authed(httptest.NewRequest(http.MethodDelete, path, nil))).Code)

	_, err = env.Episodes.GetEpisode(ctx, episode.ID)
	assert.ErrorIs(t, err, episodes.ErrEpisodeNotFound)
}

func TestDelete_IngestedEpisode(t *testing.T) {
	router, env := setupRouter(t)
	ctx := context.Background()
	const feedURL = "https://feeds.example.com/show.xml"
	env.Feeds.Set(feedURL, &feeds.Feed{
		Title: "The Show",
		Items: []feeds.Item{
			{GUID: "g1", Title: "One", Enclosure: feeds.Enclosure{URL: "https://cdn.example.com/1.mp3", Type: "audio/mpeg"}},
		},
	})
	podcast := env.Podcast(t, feedURL)
	file := env.File(t, "one.mp3", []byte("audio"))

	episode, err := env.Episodes.ImportEpisode(ctx, podcast.ID, episodes.EpisodeInput{GUID: "g1", URL: "https://cdn.example.com/1.mp3"})
	require.NoError(t, err)
	outcome, err := env.Reconciler.Reconcile(ctx, episodes.CompletionEvent{
		JobID: "j1", TaskStatus: episodes.TaskStatusSuccess, EpisodeID: episode.ID, FileID: file.ID, ItemStatus: episodes.ItemStatusOK,
	})
	require.NoError(t, err)
	require.Equal(t, episodes.OutcomeIngested, outcome)

	path := fmt.Sprintf("/rest/media/%d", file.ID)
	assert.Equal(t, http.StatusNoContent, serve(router, authed(httptest.NewRequest(http.MethodDelete, path, nil))).Code)

	list, err := env.Episodes.ListEpisodes(ctx, podcast.ID, episodes.ListOptions{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, episodes.StatusNotIngested, list.Items[0].Ingested)

	_, err = env.Episodes.GetEpisode(ctx, episode.ID)
	assert.ErrorIs(t, err, episodes.ErrEpisodeNotFound)
}
