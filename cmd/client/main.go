package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/mediaup/internal/buildinfo"
	"github.com/dmitrijs2005/mediaup/internal/client/cli"
	"github.com/dmitrijs2005/mediaup/internal/client/config"
)

func main() {

	cfg := config.LoadConfig()
	if cfg.Verbose {
		buildinfo.PrintBuildData(os.Stderr)
	}

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	os.Exit(app.Run(context.Background()))
}
