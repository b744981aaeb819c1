package main

import (
	"context"
	"log"
	"os"

	"github.com/edusys/eduauth/internal/client/cli"
	"github.com/edusys/eduauth/internal/client/config"
)

func main() {

	ctx := context.Background()

	cfg, args, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	app := cli.NewApp(cfg)
	if err := app.Run(ctx, args); err != nil {
		log.Fatalf("%v", err)
	}

}
