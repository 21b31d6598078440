package persona

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/sweetpotato0/deadchat/config"
	relayerrors "github.com/sweetpotato0/deadchat/errors"
)

type debateFile struct {
	Topics  []string       `yaml:"topics"`
	Scripts []debateScript `yaml:"scripts"`
	Generic []scriptLine   `yaml:"generic"`
}

type debateScript struct {
	A     string       `yaml:"a"`
	B     string       `yaml:"b"`
	Turns []scriptLine `yaml:"turns"`
}

// scriptLine names its speaker by persona id in scripts and by "a" or "b"
// in the generic exchange.
type scriptLine struct {
	Speaker string `yaml:"speaker"`
	Text    string `yaml:"text"`
}

const (
	sideA = "a"
	sideB = "b"
)

// Debaters are drawn from these rooms.
var debateRooms = []Room{RoomTutor, RoomDebate}

// DebateTurn is one line of a debate.
type DebateTurn struct {
	Speaker *Persona
	Text    string
}

// Debate is a scripted exchange between two personas on a topic.
type Debate struct {
	A, B  *Persona
	Topic string
	// Scripted is false when the generic exchange was used.
	Scripted bool
	Turns    []DebateTurn
}

// DebateTopics lists the topics a debate can be held on.
func (c *Catalog) DebateTopics() []string {
	return append([]string(nil), c.debate.Topics...)
}

// Debaters lists the personas that can take part in a debate.
func (c *Catalog) Debaters() []*Persona {
	return lo.Filter(c.order, func(p *Persona, _ int) bool { return lo.Contains(debateRooms, p.Room) })
}

// Debate builds the exchange between personas aID and bID. The topic is
// matched case-insensitively against DebateTopics. A script written for
// the ordered pair wins; otherwise the generic exchange is rendered for
// the topic.
func (c *Catalog) Debate(aID, bID, topic string) (*Debate, error) {
	a, err := c.debater(aID)
	if err != nil {
		return nil, err
	}
	b, err := c.debater(bID)
	if err != nil {
		return nil, err
	}
	if a == b {
		return nil, fmt.Errorf("persona: %w: %s cannot debate themselves", relayerrors.ErrInvalidInput, a.ID)
	}
	canonical, ok := lo.Find(c.debate.Topics, func(t string) bool { return strings.EqualFold(t, strings.TrimSpace(topic)) })
	if !ok {
		return nil, fmt.Errorf("persona: %w: unknown debate topic %q", relayerrors.ErrInvalidInput, topic)
	}

	d := &Debate{A: a, B: b, Topic: canonical}
	if script, ok := lo.Find(c.debate.Scripts, func(s debateScript) bool { return s.A == a.ID && s.B == b.ID }); ok {
		d.Scripted = true
		for _, line := range script.Turns {
			d.Turns = append(d.Turns, DebateTurn{Speaker: c.byID[line.Speaker], Text: line.Text})
		}
		return d, nil
	}

	if len(c.debate.Generic) == 0 {
		return nil, fmt.Errorf("persona: no debate script for %s and %s", a.ID, b.ID)
	}
	vars := struct{ Topic string }{Topic: strings.ToLower(canonical)}
	for i, line := range c.debate.Generic {
		text, err := c.lines.Render(genericLineName(i), vars)
		if err != nil {
			return nil, fmt.Errorf("persona: render debate line %d: %w", i, err)
		}
		speaker := a
		if line.Speaker == sideB {
			speaker = b
		}
		d.Turns = append(d.Turns, DebateTurn{Speaker: speaker, Text: text})
	}
	return d, nil
}

// Play hands each turn to emit, waiting pace between turns. It returns
// ctx.Err() when ctx ends before the last turn.
func (d *Debate) Play(ctx context.Context, pace time.Duration, emit func(DebateTurn)) error {
	for i, turn := range d.Turns {
		if i > 0 && pace > 0 {
			timer := time.NewTimer(pace)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}
		emit(turn)
	}
	return nil
}

func (c *Catalog) debater(id string) (*Persona, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("persona: %w: unknown persona %q", relayerrors.ErrInvalidInput, id)
	}
	if !lo.Contains(debateRooms, p.Room) {
		return nil, fmt.Errorf("persona: %w: %s is not a scientist and cannot debate", relayerrors.ErrInvalidInput, id)
	}
	return p, nil
}

func genericLineName(i int) string {
	return fmt.Sprintf("debate.generic.%d", i)
}

func validateDebate(v *config.Validator, d debateFile, ids []string) {
	if dups := lo.FindDuplicates(d.Topics); len(dups) > 0 {
		v.AddError("debate.topics", fmt.Sprintf("duplicate topics %v", dups))
	}
	for i, s := range d.Scripts {
		field := fmt.Sprintf("debate.scripts[%d]", i)
		if !lo.Contains(ids, s.A) || !lo.Contains(ids, s.B) {
			v.AddError(field, fmt.Sprintf("unknown debaters %q and %q", s.A, s.B))
		}
		v.RequirePositive(field+".turns", len(s.Turns))
		for j, line := range s.Turns {
			v.ValidateOneOf(fmt.Sprintf("%s.turns[%d].speaker", field, j), line.Speaker, s.A, s.B)
		}
	}
	for i, line := range d.Generic {
		v.ValidateOneOf(fmt.Sprintf("debate.generic[%d].speaker", i), line.Speaker, sideA, sideB)
	}
}
