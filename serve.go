package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"

	wau "github.com/playlizt-io/playlizt-server/handlers/auth"
	wc "github.com/playlizt-io/playlizt-server/handlers/content"
	wp "github.com/playlizt-io/playlizt-server/handlers/playback"
	wrec "github.com/playlizt-io/playlizt-server/handlers/recommend"
	"github.com/playlizt-io/playlizt-server/handlers/upload"
	j "github.com/playlizt-io/playlizt-server/jobs"
	"github.com/playlizt-io/playlizt-server/services/auth"
	"github.com/playlizt-io/playlizt-server/services/catalog"
	"github.com/playlizt-io/playlizt-server/services/common"
	"github.com/playlizt-io/playlizt-server/services/job"
	"github.com/playlizt-io/playlizt-server/services/playback"
	"github.com/playlizt-io/playlizt-server/services/recommend"
	w "github.com/playlizt-io/playlizt-server/services/web"
)

func makeServeCMD() cli.Command {
	serveCMD := cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serves web server",
		Action:  serve,
	}
	configureServe(&serveCMD)
	return serveCMD
}

func configureServe(c *cli.Command) {
	c.Flags = cs.RegisterPGFlags(c.Flags)
	c.Flags = cs.RegisterProbeFlags(c.Flags)
	c.Flags = cs.RegisterPprofFlags(c.Flags)
	c.Flags = cs.RegisterRedisClientFlags(c.Flags)
	c.Flags = cs.RegisterS3ClientFlags(c.Flags)
	c.Flags = w.RegisterFlags(c.Flags)
	c.Flags = common.RegisterFlags(c.Flags)
	c.Flags = auth.RegisterFlags(c.Flags)
	c.Flags = upload.RegisterFlags(c.Flags)
	c.Flags = configureEnricher(c.Flags)
}

func serve(c *cli.Context) error {
	// Setting HTTP Client
	cl := http.DefaultClient

	// Setting DB
	pg := cs.NewPG(c)
	defer pg.Close()

	// Setting Migrations
	err := pgMigrate(c, "up")
	if err != nil {
		return err
	}

	var servers []cs.Servable
	// Setting Probe
	probe := cs.NewProbe(c)
	if probe != nil {
		servers = append(servers, probe)
		defer probe.Close()
	}

	// Setting Pprof
	pprof := cs.NewPprof(c)
	if pprof != nil {
		servers = append(servers, pprof)
		defer pprof.Close()
	}

	// Setting Gin
	r := gin.Default()
	r.RedirectTrailingSlash = false
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	// Setting Web
	web, err := w.New(c, r)
	if err != nil {
		return err
	}
	servers = append(servers, web)
	defer web.Close()

	// Setting Redis
	redis := cs.NewRedisClient(c)
	defer redis.Close()

	// Setting S3 Client
	s3Cl := cs.NewS3Client(c, cl)

	// Setting Auth
	a := auth.New(c, pg)
	a.RegisterHandler(r)

	// Setting AuthHandler
	wau.RegisterHandler(r, a)

	// Setting Enricher
	en := makeEnricher(c, cl, pg)

	// Setting JobQueues
	queues := job.NewQueues(job.NewStorage(redis, gin.Mode()))

	// Setting Jobs
	jobs := j.New(queues, en)

	// Setting ContentHandler
	wc.RegisterHandler(r, pg, jobs)

	// Setting Playback
	pb := playback.New(pg)

	// Setting PlaybackHandler
	wp.RegisterHandler(r, pg, pb)

	// Setting Catalog
	cat := catalog.New(pg)

	// Setting Recommender
	rec := recommend.NewRecommender(pb, cat)

	// Setting RecommendHandler
	wrec.RegisterHandler(r, rec)

	// Setting UploadHandler
	upload.RegisterHandler(c, r, s3Cl)

	// Setting Serve
	serve := cs.NewServe(servers...)

	// And SERVE!
	err = serve.Serve()
	if err != nil {
		log.WithError(err).Error("got server error")
	}
	return err
}
