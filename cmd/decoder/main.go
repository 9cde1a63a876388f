package main

import (
	"os"

	"k8s.io/component-base/cli"

	"github.com/mihai-snyk/substitution-decoder/cmd/decoder/app"
)

func main() {
	command := app.NewDecoderCommand()
	code := cli.Run(command)
	os.Exit(code)
}
