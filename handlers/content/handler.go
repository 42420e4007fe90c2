package content

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	cs "github.com/webtor-io/common-services"

	j "github.com/playlizt-io/playlizt-server/jobs"
	"github.com/playlizt-io/playlizt-server/services/auth"
	"github.com/playlizt-io/playlizt-server/services/common"
)

type Handler struct {
	pg   *cs.PG
	jobs *j.Jobs
}

func RegisterHandler(r *gin.Engine, pg *cs.PG, jobs *j.Jobs) {
	h := &Handler{
		pg:   pg,
		jobs: jobs,
	}
	gr := r.Group("/api/v1/content")
	gr.GET("", h.list)
	gr.GET("/search", h.search)
	gr.GET("/categories", h.categories)
	gr.GET("/:id", h.get)
	gr.POST("", auth.HasAuth, h.create)
	gr.PUT("/:id", auth.HasAuth, h.update)
	gr.DELETE("/:id", auth.HasAuth, h.remove)
	gr.POST("/:id/publish", auth.HasAuth, h.publish)
	gr.GET("/:id/enrichment", auth.HasAuth, h.enrichmentStatus)

	gc := r.Group("/api/v1/categories")
	gc.GET("", h.listCategoryCatalog)
	gc.GET("/:id", h.getCategory)
	gc.POST("", auth.HasAuth, h.createCategory)
	gc.DELETE("/:id", auth.HasAuth, h.removeCategory)
}

func bindID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "wrong content id %v", c.Param("id"))
	}
	return id, nil
}

func bindPage(c *gin.Context) (limit int, offset int) {
	limit = common.DefaultPageSize
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 && v <= common.MaxPageSize {
		limit = v
	}
	page := 0
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	return limit, page * limit
}
