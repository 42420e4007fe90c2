package recommend

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/playlizt-io/playlizt-server/services/auth"
	"github.com/playlizt-io/playlizt-server/services/recommend"
)

// requestTimeout bounds the three sequential upstream calls of one
// recommendation request. A timeout degrades to an empty list like any other
// upstream failure.
const requestTimeout = 10 * time.Second

type Handler struct {
	recommender *recommend.Recommender
}

func RegisterHandler(r *gin.Engine, rec *recommend.Recommender) {
	h := &Handler{
		recommender: rec,
	}
	gr := r.Group("/api/v1/recommendations")
	gr.GET("", auth.HasAuth, h.recommendations)
}

// recommendations always answers 200 with a list. An empty list can mean
// "not enough watch history yet" or "upstream unavailable"; the two are
// deliberately indistinguishable to the caller.
func (s *Handler) recommendations(c *gin.Context) {
	u := auth.GetUserFromContext(c)
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()
	recommendations := s.recommender.Recommend(ctx, u.ID)
	c.JSON(http.StatusOK, gin.H{"content": recommendations})
}
