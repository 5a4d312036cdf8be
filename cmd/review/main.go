package main

import (
	"os"

	"github.com/povarna/generative-ai-agents/review-agent/cmd/review/cli"
)

func main() {
	os.Exit(cli.Run())
}
