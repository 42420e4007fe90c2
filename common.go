package main

import (
	"net/http"

	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"

	enr "github.com/playlizt-io/playlizt-server/services/enrich"
	"github.com/playlizt-io/playlizt-server/services/gemini"
)

func configureEnricher(f []cli.Flag) []cli.Flag {
	f = gemini.RegisterFlags(f)
	return f
}

func makeEnricher(c *cli.Context, cl *http.Client, pg *cs.PG) *enr.Enricher {
	// Setting Gemini API
	gapi := gemini.New(c, cl)
	if gapi == nil {
		return nil
	}

	// Setting Enricher
	return enr.NewEnricher(enr.NewPGContentStore(pg), gapi, gemini.GetModels(c))
}
