package main

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"

	"github.com/playlizt-io/playlizt-server/models"
)

func makeEnrichCMD() cli.Command {
	enrichCMD := cli.Command{
		Name:    "enrich",
		Aliases: []string{"e"},
		Usage:   "Enriches content with AI-generated metadata",
		Action:  enrich,
	}
	configureEnrich(&enrichCMD)
	return enrichCMD
}

func configureEnrich(c *cli.Command) {
	c.Flags = append(c.Flags,
		cli.BoolFlag{
			Name:  "force",
			Usage: "re-enrich content that already has AI metadata",
		},
		cli.StringFlag{
			Name:  "id",
			Usage: "content id for enrichment",
		},
	)
	c.Flags = cs.RegisterPGFlags(c.Flags)
	c.Flags = configureEnricher(c.Flags)
}

func enrich(c *cli.Context) error {
	force := c.Bool("force")
	id := c.String("id")

	// Setting DB
	pg := cs.NewPG(c)
	defer pg.Close()

	// Setting Migrations
	err := pgMigrate(c, "up")
	if err != nil {
		return err
	}
	db := pg.Get()
	if db == nil {
		return errors.New("db is nil")
	}

	// Setting HTTP Client
	cl := http.DefaultClient

	// Setting Enricher
	en := makeEnricher(c, cl, pg)
	if en == nil {
		return errors.New("enricher is not configured")
	}

	var contents []*models.Content
	ctx := context.Background()
	if id != "" {
		cid, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "wrong content id %v", id)
		}
		content, err := models.GetContentByID(ctx, db, cid)
		if err != nil {
			return err
		}
		if content == nil {
			return errors.Errorf("content %v not found", cid)
		}
		contents = append(contents, content)
	} else {
		contents, err = models.GetContentForEnrichment(ctx, db, force)
		if err != nil {
			return err
		}
	}
	for _, content := range contents {
		err = en.Enrich(ctx, content.ContentID)
		if err != nil {
			return err
		}
	}
	return nil
}
