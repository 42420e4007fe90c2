package content

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/playlizt-io/playlizt-server/models"
	"github.com/playlizt-io/playlizt-server/services/auth"
)

type contentRequest struct {
	Title           string   `json:"title" binding:"required,max=255"`
	Description     string   `json:"description" binding:"max=5000"`
	Category        string   `json:"category" binding:"required"`
	Tags            []string `json:"tags"`
	ThumbnailURL    string   `json:"thumbnailUrl"`
	VideoURL        string   `json:"videoUrl"`
	DurationSeconds *int     `json:"durationSeconds"`
	EnhanceWithAI   *bool    `json:"enhanceWithAi"`
}

// create stores a new content record and, unless disabled, schedules the
// asynchronous AI enhancement. The response never depends on the enhancement
// outcome: the job runs in its own failure domain.
func (s *Handler) create(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u := auth.GetUserFromContext(c)
	db := s.pg.Get()
	if db == nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	content := &models.Content{
		CreatorID:       u.ID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Tags:            req.Tags,
		ThumbnailURL:    req.ThumbnailURL,
		VideoURL:        req.VideoURL,
		DurationSeconds: req.DurationSeconds,
	}
	if err := models.CreateContent(c.Request.Context(), db, content); err != nil {
		log.WithError(err).Error("failed to create content")
		c.Status(http.StatusInternalServerError)
		return
	}
	log.Infof("content created: id=%v title=%v", content.ContentID, content.Title)

	if req.EnhanceWithAI == nil || *req.EnhanceWithAI {
		_ = s.jobs.Enrich(content.ContentID)
	}

	c.JSON(http.StatusCreated, content)
}

// enrichmentStatus reports the advisory state of the last enrichment job for
// a content id. Without a redis record the state is unknown, which also
// covers content that never had enrichment scheduled.
func (s *Handler) enrichmentStatus(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	state, err := s.jobs.EnrichState(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Errorf("failed to get enrichment state for content %v", id)
		c.Status(http.StatusInternalServerError)
		return
	}
	if state == "" {
		state = "unknown"
	}
	c.JSON(http.StatusOK, gin.H{"state": state})
}

func (s *Handler) get(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	db := s.pg.Get()
	if db == nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	content, err := models.GetContentByID(c.Request.Context(), db, id)
	if err != nil {
		log.WithError(err).Errorf("failed to get content %v", id)
		c.Status(http.StatusInternalServerError)
		return
	}
	if content == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
		return
	}
	c.JSON(http.StatusOK, content)
}

func (s *Handler) list(c *gin.Context) {
	limit, offset := bindPage(c)
	db := s.pg.Get()
	if db == nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	var (
		cs  []*models.Content
		err error
	)
	if category := c.Query("category"); category != "" {
		cs, err = models.GetContentByCategory(c.Request.Context(), db, category, limit, offset)
	} else {
		cs, err = models.GetPublishedContent(c.Request.Context(), db, limit, offset)
	}
	if err != nil {
		log.WithError(err).Error("failed to list content")
		c.Status(http.StatusInternalServerError)
		return
	}
	if cs == nil {
		cs = []*models.Content{}
	}
	c.JSON(http.StatusOK, gin.H{"content": cs})
}

func (s *Handler) search(c *gin.Context) {
	limit, _ := bindPage(c)
	db := s.pg.Get()
	if db == nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	cs, err := models.SearchContent(c.Request.Context(), db, c.Query("q"), c.Query("category"), limit)
	if err != nil {
		log.WithError(err).Error("failed to search content")
		c.Status(http.StatusInternalServerError)
		return
	}
	if cs == nil {
		cs = []*models.Content{}
	}
	c.JSON(http.StatusOK, gin.H{"content": cs})
}

func (s *Handler) categories(c *gin.Context) {
	db := s.pg.Get()
	if db == nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	categories, err := models.ListContentCategories(c.Request.Context(), db)
	if err != nil {
		log.WithError(err).Error("failed to list categories")
		c.Status(http.StatusInternalServerError)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	c.JSON(http.StatusOK, categories)
}

func (s *Handler) update(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	db := s.pg.Get()
	if db == nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	content, err := models.GetContentByID(c.Request.Context(), db, id)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if content == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
		return
	}
	u := auth.GetUserFromContext(c)
	if content.CreatorID != u.ID {
		c.Status(http.StatusForbidden)
		return
	}
	content.Title = req.Title
	content.Description = req.Description
	content.Category = req.Category
	content.Tags = req.Tags
	content.ThumbnailURL = req.ThumbnailURL
	content.VideoURL = req.VideoURL
	content.DurationSeconds = req.DurationSeconds
	if err := models.UpdateContent(c.Request.Context(), db, content); err != nil {
		log.WithError(err).Errorf("failed to update content %v", id)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, content)
}

func (s *Handler) remove(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	db := s.pg.Get()
	if db == nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	content, err := models.GetContentByID(c.Request.Context(), db, id)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if content == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
		return
	}
	u := auth.GetUserFromContext(c)
	if content.CreatorID != u.ID {
		c.Status(http.StatusForbidden)
		return
	}
	if err := models.DeleteContent(c.Request.Context(), db, id); err != nil {
		log.WithError(err).Errorf("failed to delete content %v", id)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Handler) publish(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	db := s.pg.Get()
	if db == nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	content, err := models.PublishContent(c.Request.Context(), db, id)
	if err != nil {
		log.WithError(err).Errorf("failed to publish content %v", id)
		c.Status(http.StatusInternalServerError)
		return
	}
	if content == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
		return
	}
	c.JSON(http.StatusOK, content)
}
