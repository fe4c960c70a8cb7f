package main

import (
	"context"
	"log"
	"os"

	"github.com/saeon/odp-identity/internal/buildinfo"
	"github.com/saeon/odp-identity/internal/cli"
	"github.com/saeon/odp-identity/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
