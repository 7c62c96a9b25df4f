package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/anchorageoss/rs256signer/cmd/rs256ctl"
)

func main() {
	app := &cli.Command{
		Name:  "rs256ctl",
		Usage: "Decode RSA keys and sign/verify messages with RS256",
		Commands: []*cli.Command{
			rs256ctl.DecodeKeyCommand(),
			rs256ctl.SignCommand(),
			rs256ctl.VerifyCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
