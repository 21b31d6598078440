package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sweetpotato0/deadchat/client"
	"github.com/sweetpotato0/deadchat/config"
	"github.com/sweetpotato0/deadchat/persona"
)

func newChatCmd() *cobra.Command {
	var (
		personaID string
		canned    bool
		backend   string
	)
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with a persona in the terminal",
		Long:  "Chat reads one message per line from stdin. Type /quit to leave.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := persona.Builtin()
			if err != nil {
				return err
			}
			p, err := choosePersona(catalog, personaID)
			if err != nil {
				return err
			}

			var responder client.Responder = client.CannedResponder{}
			if !canned {
				ccfg, err := config.LoadClientConfig(os.Getenv)
				if err != nil {
					return err
				}
				if backend != "" {
					ccfg.BackendURL = strings.TrimRight(backend, "/")
				}
				if err := ccfg.Validate(); err != nil {
					return err
				}
				responder = client.RelayResponder{Client: client.New(ccfg)}
			}
			return runChat(cmd, client.NewConversation(p, responder))
		},
	}
	cmd.Flags().StringVarP(&personaID, "persona", "p", "", "persona id; a random chat figure when empty")
	cmd.Flags().BoolVar(&canned, "canned", false, "answer from scripted replies instead of the relay")
	cmd.Flags().StringVarP(&backend, "backend", "b", "", "relay base URL (default $DEADCHAT_BACKEND_URL or "+config.DefaultBackendURL+")")
	return cmd
}

func choosePersona(catalog *persona.Catalog, id string) (*persona.Persona, error) {
	if id == "" {
		p, ok := catalog.Random(persona.RoomChat, nil)
		if !ok {
			return nil, fmt.Errorf("catalog has no chat personas")
		}
		return p, nil
	}
	p, ok := catalog.Get(id)
	if !ok {
		return nil, fmt.Errorf("unknown persona %q, see `deadchat personas`", id)
	}
	return p, nil
}

func runChat(cmd *cobra.Command, conv *client.Conversation) error {
	out := cmd.OutOrStdout()
	p := conv.Persona()
	name := p.DisplayName(nil)

	fmt.Fprintf(out, "Talking with %s. Type /quit to leave.\n", name)
	if greet := conv.Greet(nil); greet != nil {
		fmt.Fprintf(out, "%s: %s\n", name, greet.Content)
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := scanner.Text()
		if trimmed := strings.TrimSpace(line); trimmed == "/quit" || trimmed == "/exit" {
			break
		}
		reply := conv.Send(cmd.Context(), line)
		if reply == nil {
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", name, reply.Content)
	}
	return scanner.Err()
}

func newPersonasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "personas",
		Short: "List the persona catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := persona.Builtin()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tROOM\tERA")
			for _, p := range catalog.List() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Room, p.Era)
			}
			return w.Flush()
		},
	}
}
