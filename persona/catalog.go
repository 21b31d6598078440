package persona

import (
	_ "embed"
	"fmt"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/sweetpotato0/deadchat/config"
	"github.com/sweetpotato0/deadchat/credential"
	relayerrors "github.com/sweetpotato0/deadchat/errors"
	"github.com/sweetpotato0/deadchat/prompt"
)

//go:embed personas.yaml
var builtin []byte

type catalogFile struct {
	Personas []*Persona `yaml:"personas"`
	Debate   debateFile `yaml:"debate"`
}

// Catalog is a read-only, ordered set of personas and debate scripts.
type Catalog struct {
	order  []*Persona
	byID   map[string]*Persona
	debate debateFile
	// Generic debate lines, registered as genericLineName(i).
	lines *prompt.Manager
}

// Builtin parses the embedded catalog.
func Builtin() (*Catalog, error) {
	return Parse(builtin)
}

// Parse decodes a YAML catalog and validates it.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("persona: decode catalog: %w", err)
	}

	v := config.NewValidator()
	v.RequirePositive("personas", len(f.Personas))
	for i, p := range f.Personas {
		field := fmt.Sprintf("personas[%d]", i)
		if p == nil {
			v.AddError(field, "entry is empty")
			continue
		}
		v.RequireNonEmpty(field+".id", p.ID)
		v.RequireNonEmpty(field+".name", p.Name)
		v.ValidateOneOf(field+".room", string(p.Room),
			string(RoomChat), string(RoomTutor), string(RoomBoard), string(RoomDebate))
	}
	ids := lo.Map(lo.Compact(f.Personas), func(p *Persona, _ int) string { return p.ID })
	if dups := lo.FindDuplicates(ids); len(dups) > 0 {
		v.AddError("personas", fmt.Sprintf("duplicate ids %v", dups))
	}
	validateDebate(v, f.Debate, ids)

	lines := prompt.NewManager()
	for i, line := range f.Debate.Generic {
		if err := lines.RegisterString(genericLineName(i), line.Text); err != nil {
			v.AddError(fmt.Sprintf("debate.generic[%d].text", i), err.Error())
		}
	}
	if v.HasErrors() {
		return nil, fmt.Errorf("persona: %w: %w", relayerrors.ErrInvalidInput, v.Error())
	}

	return &Catalog{
		order:  f.Personas,
		byID:   lo.KeyBy(f.Personas, func(p *Persona) string { return p.ID }),
		debate: f.Debate,
		lines:  lines,
	}, nil
}

// Get looks a persona up by id.
func (c *Catalog) Get(id string) (*Persona, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// List returns personas in catalog order.
func (c *Catalog) List() []*Persona {
	return append([]*Persona(nil), c.order...)
}

// InRoom returns the personas of one room in catalog order.
func (c *Catalog) InRoom(room Room) []*Persona {
	return lo.Filter(c.order, func(p *Persona, _ int) bool { return p.Room == room })
}

// Random picks any persona of the given room; an empty room picks from
// the whole catalog.
func (c *Catalog) Random(room Room, src credential.Source) (*Persona, bool) {
	candidates := c.order
	if room != "" {
		candidates = c.InRoom(room)
	}
	if len(candidates) == 0 {
		return nil, false
	}
	if src == nil {
		src = credential.Default
	}
	return candidates[src.IntN(len(candidates))], true
}
