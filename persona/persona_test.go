package persona

import (
	"strings"
	"testing"

	"github.com/sweetpotato0/deadchat/credential"
)

func builtinCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}
	return c
}

func mustGet(t *testing.T, c *Catalog, id string) *Persona {
	t.Helper()
	p, ok := c.Get(id)
	if !ok {
		t.Fatalf("persona %q not found", id)
	}
	return p
}

func TestBuiltinCatalog(t *testing.T) {
	c := builtinCatalog(t)

	list := c.List()
	if len(list) == 0 {
		t.Fatal("empty catalog")
	}
	if list[0].ID != "leonardo" {
		t.Errorf("first persona = %q, want leonardo", list[0].ID)
	}
	for _, room := range []Room{RoomChat, RoomTutor, RoomBoard, RoomDebate} {
		if len(c.InRoom(room)) == 0 {
			t.Errorf("room %q has no personas", room)
		}
	}
	if _, ok := c.Get("nobody"); ok {
		t.Error("Get(nobody) should miss")
	}
}

func TestListReturnsCopy(t *testing.T) {
	c := builtinCatalog(t)
	list := c.List()
	list[0] = nil
	if c.List()[0] == nil {
		t.Error("List() exposed internal slice")
	}
}

func TestDescribe(t *testing.T) {
	c := builtinCatalog(t)

	einstein, err := mustGet(t, c, "einstein").Describe()
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if !strings.HasPrefix(einstein, "You are Albert Einstein (1879-1955).") {
		t.Errorf("einstein description = %q", einstein)
	}
	if !strings.Contains(einstein, "specialising in Relativity & Quantum Physics") {
		t.Errorf("einstein description missing specialty: %q", einstein)
	}

	napoleon, err := mustGet(t, c, "napoleon").Describe()
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if strings.Contains(napoleon, "Your field") {
		t.Errorf("napoleon has no field: %q", napoleon)
	}
	if !strings.Contains(napoleon, "Your personality: Ambitious, strategic, confident.") {
		t.Errorf("napoleon description = %q", napoleon)
	}

	spirit, err := mustGet(t, c, "spirit").Describe()
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if !strings.HasPrefix(spirit, "You are a mysterious spirit from beyond the veil.\n") {
		t.Errorf("spirit description = %q", spirit)
	}
}

func TestDescribeUsesRoomTemplate(t *testing.T) {
	c := builtinCatalog(t)

	tests := []struct {
		id   string
		want string
	}{
		{id: "leonardo", want: "Chat casually with a visitor"},
		{id: "newton", want: "You are tutoring a student in Physics & Mathematics"},
		{id: "bohr", want: "Your field is Quantum Physics."},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := mustGet(t, c, tt.id).Describe()
			if err != nil {
				t.Fatalf("Describe() error = %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Describe() = %q, want it to contain %q", got, tt.want)
			}
		})
	}

	boardless := &Persona{ID: "ghost", Name: "Ghost", Room: RoomBoard}
	if _, err := boardless.Describe(); err == nil {
		t.Error("board persona without description should not render")
	}
}

func TestCannedReply(t *testing.T) {
	c := builtinCatalog(t)
	first := credential.Fixed(0)

	tests := []struct {
		name    string
		persona string
		input   string
		want    string
	}{
		{
			name:    "tutor topic",
			persona: "einstein",
			input:   "Tell me about RELATIVITY",
			want:    "Ah, relativity!",
		},
		{
			name:    "tutor later topic",
			persona: "newton",
			input:   "what are the laws of motion?",
			want:    "My three laws",
		},
		{
			name:    "tutor default",
			persona: "tesla",
			input:   "what is your favourite colour",
			want:    "That's a fascinating question!",
		},
		{
			name:    "chat modern topic",
			persona: "leonardo",
			input:   "do you like my phone",
			want:    "Your modern world fascinates me!",
		},
		{
			name:    "chat casual",
			persona: "shakespeare",
			input:   "hello there",
			want:    "All the world's a stage",
		},
		{
			name:    "chat without script",
			persona: "socrates",
			input:   "hello",
			want:    DefaultReply,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustGet(t, c, tt.persona).CannedReply(tt.input, first)
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("CannedReply(%q) = %q, want prefix %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGreetingAndNames(t *testing.T) {
	c := builtinCatalog(t)

	if got := mustGet(t, c, "cleopatra").Greeting(nil); got != "" {
		t.Errorf("cleopatra greeting = %q, want empty", got)
	}
	if got := mustGet(t, c, "napoleon").Greeting(credential.Fixed(1)); !strings.HasPrefix(got, "Ah, a visitor!") {
		t.Errorf("napoleon greeting = %q", got)
	}

	spirit := mustGet(t, c, "spirit")
	if got := spirit.DisplayName(credential.Fixed(0)); got != "HELENA" {
		t.Errorf("spirit name = %q, want HELENA", got)
	}
	if got := mustGet(t, c, "tesla").DisplayName(nil); got != "Nikola Tesla" {
		t.Errorf("tesla name = %q", got)
	}
}

func TestFallbackReply(t *testing.T) {
	c := builtinCatalog(t)
	if got := mustGet(t, c, "spirit").FallbackReply(); got != "The spirit cannot reach you right now..." {
		t.Errorf("spirit fallback = %q", got)
	}
	if got := mustGet(t, c, "einstein").FallbackReply(); got != DefaultFallback {
		t.Errorf("einstein fallback = %q", got)
	}
}

func TestRandom(t *testing.T) {
	c := builtinCatalog(t)

	p, ok := c.Random(RoomTutor, credential.Fixed(0))
	if !ok || p.ID != "einstein" {
		t.Errorf("Random(tutor) = %v, %v", p, ok)
	}
	if _, ok := c.Random(Room("kitchen"), nil); ok {
		t.Error("Random on empty room should miss")
	}
	for i := 0; i < 20; i++ {
		p, ok := c.Random("", nil)
		if !ok {
			t.Fatal("Random() missed on full catalog")
		}
		if _, found := c.Get(p.ID); !found {
			t.Fatalf("Random() returned unknown persona %q", p.ID)
		}
	}
}

func TestParseRejectsInvalidCatalog(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not yaml", data: "personas: [unterminated"},
		{name: "empty", data: "personas: []"},
		{name: "missing name", data: "personas:\n  - id: a\n    room: chat\n"},
		{name: "bad room", data: "personas:\n  - id: a\n    name: A\n    room: kitchen\n"},
		{name: "duplicate id", data: "personas:\n  - id: a\n    name: A\n    room: chat\n  - id: a\n    name: B\n    room: tutor\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("Parse() expected error")
			}
		})
	}
}
