// Package persona holds the catalog of historical figures, tutors and the
// spirit that a conversation can be held with, and the scripted debates
// between scientists.
package persona

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/sweetpotato0/deadchat/credential"
	"github.com/sweetpotato0/deadchat/prompt"
)

// Room groups personas by the experience they belong to.
type Room string

const (
	RoomChat   Room = "chat"
	RoomTutor  Room = "tutor"
	RoomBoard  Room = "board"
	RoomDebate Room = "debate"
)

// Reply texts used when nothing more specific applies.
const (
	DefaultReply    = "That's quite interesting! Tell me more about your perspective on this matter."
	DefaultFallback = "Sorry, I could not connect right now. Please try again."
)

// Description templates, one per room. The board has none: its personas
// carry an explicit description.
var templates = mustTemplates(map[string]string{
	describeTemplateName(RoomChat): "You are {{.Name}}{{with .Era}} ({{.}}){{end}}." +
		"{{with .Traits}} Your personality: {{.}}.{{end}}" +
		" Chat casually with a visitor from the present day, stay in character, and keep your responses concise (2-3 sentences maximum).",
	describeTemplateName(RoomTutor): "You are {{.Name}}{{with .Era}} ({{.}}){{end}}." +
		"{{with .Field}} You are tutoring a student in {{.}}{{with $.Specialty}}, specialising in {{.}}{{end}}.{{end}}" +
		" Explain ideas simply, draw on your own discoveries, and keep your responses concise (2-3 sentences maximum).",
	describeTemplateName(RoomDebate): "You are {{.Name}}{{with .Era}} ({{.}}){{end}}." +
		"{{with .Field}} Your field is {{.}}.{{end}}" +
		" Defend your views firmly but courteously, and keep your responses concise (2-3 sentences maximum).",
})

func describeTemplateName(room Room) string {
	return "describe." + string(room)
}

func mustTemplates(contents map[string]string) *prompt.Manager {
	m := prompt.NewManager()
	for name, content := range contents {
		if err := m.RegisterString(name, content); err != nil {
			panic(err)
		}
	}
	return m
}

// Topic maps trigger keywords to canned replies.
type Topic struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Replies  []string `yaml:"replies"`
}

// Matches reports whether any keyword occurs in lowered.
func (t Topic) Matches(lowered string) bool {
	return lo.SomeBy(t.Keywords, func(k string) bool {
		return k != "" && strings.Contains(lowered, strings.ToLower(k))
	})
}

// Persona is one character of the catalog.
type Persona struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Room        Room     `yaml:"room"`
	Era         string   `yaml:"era"`
	Field       string   `yaml:"field"`
	Specialty   string   `yaml:"specialty"`
	Traits      string   `yaml:"traits"`
	Description string   `yaml:"description"`
	Greetings   []string `yaml:"greetings"`
	Topics      []Topic  `yaml:"topics"`
	Casual      []string `yaml:"casual"`
	Default     string   `yaml:"default"`
	Fallback    string   `yaml:"fallback"`
	Aliases     []string `yaml:"aliases"`
}

// Describe returns the persona description sent to the relay as
// characterPrompt. An explicit description wins over the rendered one.
func (p *Persona) Describe() (string, error) {
	if p.Description != "" {
		return p.Description, nil
	}
	out, err := templates.Render(describeTemplateName(p.Room), p)
	if err != nil {
		return "", fmt.Errorf("persona %s: %w", p.ID, err)
	}
	return out, nil
}

// CannedReply answers input without a provider: the first topic whose
// keyword occurs in the lower-cased input picks one of its replies, then a
// casual remark, then the default reply.
func (p *Persona) CannedReply(input string, src credential.Source) string {
	lowered := strings.ToLower(input)
	for _, t := range p.Topics {
		if len(t.Replies) > 0 && t.Matches(lowered) {
			return pick(t.Replies, src)
		}
	}
	if len(p.Casual) > 0 {
		return pick(p.Casual, src)
	}
	if p.Default != "" {
		return p.Default
	}
	return DefaultReply
}

// Greeting returns one of the opening lines, or "" when the persona has none.
func (p *Persona) Greeting(src credential.Source) string {
	if len(p.Greetings) == 0 {
		return ""
	}
	return pick(p.Greetings, src)
}

// DisplayName returns the name shown in a transcript. Personas with aliases
// reveal a random one per session.
func (p *Persona) DisplayName(src credential.Source) string {
	if len(p.Aliases) == 0 {
		return p.Name
	}
	return pick(p.Aliases, src)
}

// FallbackReply is shown when the relay cannot be reached.
func (p *Persona) FallbackReply() string {
	if p.Fallback != "" {
		return p.Fallback
	}
	return DefaultFallback
}

func pick(items []string, src credential.Source) string {
	if src == nil {
		src = credential.Default
	}
	return items[src.IntN(len(items))]
}
