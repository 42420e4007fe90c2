package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/playlizt-io/playlizt-server/services/auth"
)

type Handler struct {
	auth *auth.Auth
}

func RegisterHandler(r *gin.Engine, a *auth.Auth) {
	h := &Handler{
		auth: a,
	}
	gr := r.Group("/api/v1/auth")
	gr.POST("/register", h.register)
	gr.POST("/login", h.login)
	gr.GET("/profile", auth.HasAuth, h.profile)
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (s *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := s.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		log.WithError(err).Warnf("failed to register user %v", req.Email)
		c.JSON(http.StatusBadRequest, gin.H{"error": "registration failed"})
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (s *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, u, err := s.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  u,
	})
}

func (s *Handler) profile(c *gin.Context) {
	u := auth.GetUserFromContext(c)
	profile, err := s.auth.GetProfile(c.Request.Context(), u.ID)
	if err != nil {
		log.WithError(err).Errorf("failed to get profile for user %v", u.ID)
		c.Status(http.StatusInternalServerError)
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}
