package client

import (
	"context"
	"strings"
	"sync"

	"github.com/sweetpotato0/deadchat/credential"
	"github.com/sweetpotato0/deadchat/message"
	"github.com/sweetpotato0/deadchat/persona"
)

// Responder produces a persona's answer to one user turn. It never fails;
// implementations substitute a fallback text instead.
type Responder interface {
	Respond(ctx context.Context, p *persona.Persona, input string) string
}

// RelayResponder answers through the relay.
type RelayResponder struct {
	Client *Client
}

// Respond implements Responder.
func (r RelayResponder) Respond(ctx context.Context, p *persona.Persona, input string) string {
	desc, err := p.Describe()
	if err != nil {
		r.Client.logger().Warn("describe persona", "persona", p.ID, "error", err)
		return p.FallbackReply()
	}
	return r.Client.ReplyOr(ctx, desc, input, p.FallbackReply())
}

// CannedResponder answers from the persona's scripted replies.
type CannedResponder struct {
	Source credential.Source
}

// Respond implements Responder.
func (r CannedResponder) Respond(_ context.Context, p *persona.Persona, input string) string {
	return p.CannedReply(input, r.Source)
}

// Conversation is an in-memory transcript with one persona.
type Conversation struct {
	// turn serialises Send so a user entry and its reply stay adjacent.
	turn       sync.Mutex
	mu         sync.Mutex
	persona    *persona.Persona
	responder  Responder
	transcript []*message.Message
}

// NewConversation starts an empty conversation.
func NewConversation(p *persona.Persona, r Responder) *Conversation {
	return &Conversation{persona: p, responder: r}
}

// Persona returns who the conversation is with.
func (c *Conversation) Persona() *persona.Persona {
	return c.persona
}

// Greet appends the persona's opening line, if it has one.
func (c *Conversation) Greet(src credential.Source) *message.Message {
	text := c.persona.Greeting(src)
	if text == "" {
		return nil
	}
	return c.append(message.SpeakerPersona, text)
}

// Send records the trimmed user input and the persona's reply. Blank input
// is ignored and yields nil. Concurrent calls are handled one turn at a
// time.
func (c *Conversation) Send(ctx context.Context, input string) *message.Message {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	c.turn.Lock()
	defer c.turn.Unlock()
	c.append(message.SpeakerUser, input)
	reply := c.responder.Respond(ctx, c.persona, input)
	return c.append(message.SpeakerPersona, reply)
}

// Transcript returns a copy of the entries so far.
func (c *Conversation) Transcript() []*message.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return message.CloneMessages(c.transcript)
}

func (c *Conversation) append(speaker message.Speaker, text string) *message.Message {
	msg := message.NewMessage(speaker, text)
	msg.Metadata["persona"] = c.persona.ID
	c.mu.Lock()
	c.transcript = append(c.transcript, msg)
	c.mu.Unlock()
	return message.Clone(msg)
}
