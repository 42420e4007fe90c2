package content

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/playlizt-io/playlizt-server/models"
)

type categoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=1000"`
}

// listCategoryCatalog returns the curated category table, as opposed to the
// categories endpoint under /content which reflects what published content
// actually uses.
func (s *Handler) listCategoryCatalog(c *gin.Context) {
	db := s.pg.Get()
	if db == nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	cats, err := models.GetAllCategories(c.Request.Context(), db)
	if err != nil {
		log.WithError(err).Error("failed to list category catalog")
		c.Status(http.StatusInternalServerError)
		return
	}
	if cats == nil {
		cats = []*models.Category{}
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

func (s *Handler) getCategory(c *gin.Context) {
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
	cat, err := models.GetCategoryByID(c.Request.Context(), db, id)
	if err != nil {
		log.WithError(err).Errorf("failed to get category %v", id)
		c.Status(http.StatusInternalServerError)
		return
	}
	if cat == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (s *Handler) createCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	db := s.pg.Get()
	if db == nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	cat := &models.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	created, err := models.CreateCategory(c.Request.Context(), db, cat)
	if err != nil {
		log.WithError(err).Errorf("failed to create category %v", req.Name)
		c.Status(http.StatusInternalServerError)
		return
	}
	if !created {
		c.JSON(http.StatusConflict, gin.H{"error": "category already exists"})
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (s *Handler) removeCategory(c *gin.Context) {
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
	if err := models.DeleteCategory(c.Request.Context(), db, id); err != nil {
		log.WithError(err).Errorf("failed to delete category %v", id)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}
