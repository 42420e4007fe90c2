package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"
	"golang.org/x/crypto/bcrypt"

	"github.com/playlizt-io/playlizt-server/models"
)

const (
	jwtSecretFlag      = "jwt-secret"
	jwtExpireHoursFlag = "jwt-expire-hours"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   jwtSecretFlag,
			Usage:  "jwt signing secret",
			Value:  "secret123",
			EnvVar: "JWT_SECRET",
		},
		cli.IntFlag{
			Name:   jwtExpireHoursFlag,
			Usage:  "jwt expiration in hours",
			Value:  24,
			EnvVar: "JWT_EXPIRE_HOURS",
		},
	)
}

type Auth struct {
	pg     *cs.PG
	secret []byte
	expire time.Duration
}

func New(c *cli.Context, pg *cs.PG) *Auth {
	return &Auth{
		pg:     pg,
		secret: []byte(c.String(jwtSecretFlag)),
		expire: time.Duration(c.Int(jwtExpireHoursFlag)) * time.Hour,
	}
}

func (s *Auth) Register(ctx context.Context, email string, password string) (*models.User, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("db is nil")
	}
	existing, err := models.GetUserByEmail(ctx, db, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Errorf("user %v already exists", email)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	u := &models.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := models.CreateUser(ctx, db, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Auth) Login(ctx context.Context, email string, password string) (string, *models.User, error) {
	db := s.pg.Get()
	if db == nil {
		return "", nil, errors.New("db is nil")
	}
	u, err := models.GetUserByEmail(ctx, db, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}
	token, err := s.issueToken(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *Auth) GetProfile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("db is nil")
	}
	return models.GetUserByID(ctx, db, id)
}

func (s *Auth) issueToken(u *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   u.UserID.String(),
		"email": u.Email,
		"exp":   time.Now().Add(s.expire).Unix(),
		"iat":   time.Now().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

func (s *Auth) parseToken(tokenString string) (*User, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok || !t.Valid {
		return nil, errors.New("invalid token")
	}
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	id, err := uuid.FromString(sub)
	if err != nil {
		return nil, errors.Wrap(err, "parse user id")
	}
	return &User{
		ID:    id,
		Email: email,
	}, nil
}

type User struct {
	ID    uuid.UUID
	Email string
}

func (s *User) HasAuth() bool {
	return s != nil && s.Email != ""
}

type UserContext struct{}

func GetUserFromContext(c *gin.Context) *User {
	uc := c.Request.Context().Value(UserContext{})
	u, ok := uc.(*User)
	if !ok {
		return &User{}
	}
	return u
}

// RegisterHandler installs bearer-token parsing on every request. A missing
// or invalid token leaves the request anonymous; endpoint guards decide
// whether that is acceptable.
func (s *Auth) RegisterHandler(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}
		u, err := s.parseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			log.WithError(err).Debug("failed to parse bearer token")
			c.Next()
			return
		}
		ctx := context.WithValue(c.Request.Context(), UserContext{}, u)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
}

func HasAuth(c *gin.Context) {
	u := GetUserFromContext(c)
	if !u.HasAuth() {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	c.Next()
}
