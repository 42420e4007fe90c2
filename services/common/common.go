package common

import (
	"github.com/urfave/cli"
)

var (
	DomainFlag = "domain"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   DomainFlag,
			Usage:  "domain",
			Value:  "http://localhost:8080",
			EnvVar: "DOMAIN",
		},
	)
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)
