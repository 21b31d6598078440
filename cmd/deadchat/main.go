package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "deadchat",
		Version:      version,
		Short:        "Talk with historical figures",
		Long:         "DeadChat relays persona conversations to Gemini and offers a terminal chat against the relay.",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newServeCmd(), newChatCmd(), newDebateCmd(), newPersonasCmd())
	return rootCmd
}
