package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	api      string
	timeZone string
	jsonOut  bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "memoryctl",
		Short:         "CLI client for the Memory Lane timeline service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&opts.api, "api", "a", "http://localhost:8080", "Memory Lane service base URL")
	root.PersistentFlags().StringVar(&opts.timeZone, "tz", "Local", "IANA time zone for local snapshots")
	root.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "Print raw JSON instead of text")

	root.AddCommand(newTimelineCmd(opts), newStatsCmd(opts), newMemoriesCmd(opts))
	return root
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
