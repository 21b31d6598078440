package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sweetpotato0/deadchat/persona"
)

func newDebateCmd() *cobra.Command {
	var (
		a, b, topic string
		pace        time.Duration
		listTopics  bool
	)
	cmd := &cobra.Command{
		Use:   "debate",
		Short: "Watch two scientists debate a topic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := persona.Builtin()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if listTopics {
				for _, t := range catalog.DebateTopics() {
					fmt.Fprintln(out, t)
				}
				return nil
			}

			d, err := catalog.Debate(a, b, topic)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s vs %s: %s\n", d.A.Name, d.B.Name, d.Topic)
			return d.Play(cmd.Context(), pace, func(turn persona.DebateTurn) {
				fmt.Fprintf(out, "%s: %s\n", turn.Speaker.Name, turn.Text)
			})
		},
	}
	cmd.Flags().StringVar(&a, "a", "", "persona id of the opening speaker")
	cmd.Flags().StringVar(&b, "b", "", "persona id of the responding speaker")
	cmd.Flags().StringVarP(&topic, "topic", "t", "", "debate topic, see --topics")
	cmd.Flags().DurationVar(&pace, "pace", 0, "pause between turns")
	cmd.Flags().BoolVar(&listTopics, "topics", false, "list debate topics and exit")
	return cmd
}
