package upload

import (
	"bytes"
	"crypto/md5"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"

	"github.com/playlizt-io/playlizt-server/services/auth"
	"github.com/playlizt-io/playlizt-server/services/common"
)

const (
	uploadS3BucketFlag = "upload-s3-bucket"
	maxUploadBytes     = 2 << 30
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   uploadS3BucketFlag,
			Usage:  "s3 bucket for uploaded media",
			Value:  "playlizt-media",
			EnvVar: "UPLOAD_S3_BUCKET",
		},
	)
}

type Handler struct {
	s3     *cs.S3Client
	bucket string
	domain string
}

// RegisterHandler wires media upload when an S3 client is configured.
// Without one the endpoint is simply absent.
func RegisterHandler(c *cli.Context, r *gin.Engine, s3Cl *cs.S3Client) {
	if s3Cl == nil {
		return
	}
	h := &Handler{
		s3:     s3Cl,
		bucket: c.String(uploadS3BucketFlag),
		domain: c.String(common.DomainFlag),
	}
	gr := r.Group("/api/v1/upload")
	gr.POST("", auth.HasAuth, h.upload)
}

var allowedExtensions = map[string]string{
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

func (s *Handler) upload(c *gin.Context) {
	u := auth.GetUserFromContext(c)
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	contentType, ok := allowedExtensions[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported file type %v", ext)})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	defer func(f io.ReadCloser) {
		_ = f.Close()
	}(f)

	data, err := io.ReadAll(f)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	key := fmt.Sprintf("%v/%v%v", u.ID, uuid.NewV4(), ext)
	cl := s.s3.Get()
	_, err = cl.PutObjectWithContext(c.Request.Context(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ContentMD5:  makeAWSMD5(data),
	})
	if err != nil {
		log.WithError(err).Errorf("failed to upload %v to bucket %v", key, s.bucket)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"url": fmt.Sprintf("%v/media/%v", s.domain, key),
		"key": key,
	})
}

func makeAWSMD5(b []byte) *string {
	h := md5.Sum(b)
	return aws.String(base64.StdEncoding.EncodeToString(h[:]))
}
