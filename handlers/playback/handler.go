package playback

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	cs "github.com/webtor-io/common-services"

	"github.com/playlizt-io/playlizt-server/models"
	"github.com/playlizt-io/playlizt-server/services/auth"
	"github.com/playlizt-io/playlizt-server/services/common"
	"github.com/playlizt-io/playlizt-server/services/playback"
)

type Handler struct {
	pg       *cs.PG
	playback *playback.Playback
}

func RegisterHandler(r *gin.Engine, pg *cs.PG, pb *playback.Playback) {
	h := &Handler{
		pg:       pg,
		playback: pb,
	}
	gr := r.Group("/api/v1/playback")
	gr.POST("", auth.HasAuth, h.track)
	gr.GET("/history", auth.HasAuth, h.history)
	gr.GET("/continue-watching", auth.HasAuth, h.continueWatching)
	gr.GET("/content/:id/stats", h.contentStats)
}

type playbackRequest struct {
	ContentID       int64 `json:"contentId" binding:"required"`
	PositionSeconds *int  `json:"positionSeconds"`
	Completed       *bool `json:"completed"`
}

func (s *Handler) track(c *gin.Context) {
	var req playbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u := auth.GetUserFromContext(c)
	ctx := c.Request.Context()
	vh, created, err := s.playback.StartOrUpdate(ctx, u.ID, req.ContentID, req.PositionSeconds, req.Completed)
	if err != nil {
		log.WithError(err).Errorf("failed to track playback for content %v", req.ContentID)
		c.Status(http.StatusInternalServerError)
		return
	}
	if created {
		db := s.pg.Get()
		if db != nil {
			if err := models.IncrementViewCount(ctx, db, req.ContentID); err != nil {
				log.WithError(err).Warnf("failed to increment view count for content %v", req.ContentID)
			}
		}
	}
	c.JSON(http.StatusOK, vh)
}

func (s *Handler) history(c *gin.Context) {
	u := auth.GetUserFromContext(c)
	limit := common.DefaultPageSize
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 && v <= common.MaxPageSize {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		offset = v * limit
	}
	vhs, err := s.playback.GetHistory(c.Request.Context(), u.ID, limit, offset)
	if err != nil {
		log.WithError(err).Error("failed to get viewing history")
		c.Status(http.StatusInternalServerError)
		return
	}
	if vhs == nil {
		vhs = []*models.ViewingHistory{}
	}
	c.JSON(http.StatusOK, gin.H{"content": vhs})
}

func (s *Handler) continueWatching(c *gin.Context) {
	u := auth.GetUserFromContext(c)
	vhs, err := s.playback.GetContinueWatching(c.Request.Context(), u.ID, common.DefaultPageSize)
	if err != nil {
		log.WithError(err).Error("failed to get continue watching")
		c.Status(http.StatusInternalServerError)
		return
	}
	if vhs == nil {
		vhs = []*models.ViewingHistory{}
	}
	c.JSON(http.StatusOK, gin.H{"content": vhs})
}

func (s *Handler) contentStats(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wrong content id"})
		return
	}
	stats, err := s.playback.GetContentStats(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Errorf("failed to get stats for content %v", id)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, stats)
}
