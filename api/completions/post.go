package completions

import (
	"github.com/gin-gonic/gin"
	log "github.com/go-pkgz/lgr"

	"github.com/killallgit/stationcast/api/types"
	"github.com/killallgit/stationcast/internal/services/episodes"
)

// Post applies a completion delivered by an external job system
// @Summary      Report a download completion
// @Description  SUCCESS with result status 1 and a file id attaches the file to the episode; anything
// @Description  else deletes the placeholder. Completions for unknown episodes are accepted and ignored.
// @Tags         completions
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        request body types.CompletionRequest true "Job completion"
// @Success      200 {object} types.CompletionResponse
// @Failure      400 {object} types.ErrorResponse "Invalid request body"
// @Failure      401 {object} types.ErrorResponse "Invalid API key"
// @Failure      500 {object} types.ErrorResponse "Registry update failed, redeliver later"
// @Router       /rest/podcast-episodes/completions [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.CompletionRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		outcome, err := deps.Reconciler.Reconcile(c.Request.Context(), episodes.CompletionEvent{
			JobID:      req.JobID,
			TaskStatus: req.TaskStatus,
			EpisodeID:  req.Result.EpisodeID,
			FileID:     req.Result.FileID,
			ItemStatus: req.Result.Status,
			Error:      req.Result.Error,
		})
		if err != nil {
			types.SendError(c, err)
			return
		}

		log.Printf("[DEBUG] completion of job %s for episode %d: %s", req.JobID, req.Result.EpisodeID, outcome)
		types.SendSuccess(c, types.CompletionResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Completion applied"},
			Outcome:      outcome.String(),
		})
	}
}
