package prompt

import (
	"strings"
	"testing"
)

func TestRelayPromptLayout(t *testing.T) {
	tests := []struct {
		persona string
		message string
	}{
		{"You are Albert Einstein...", "What is relativity?"},
		{"You are a mysterious spirit.\nSpeak in riddles.", "  who are you?  "},
		{"p", "line one\nline two"},
	}
	for _, tt := range tests {
		want := tt.persona + "\nUser: " + tt.message + "\nAI:"
		if got := Relay(tt.persona, tt.message); got != want {
			t.Errorf("Relay(%q, %q) = %q, want %q", tt.persona, tt.message, got, want)
		}
	}
}

func TestTemplateRender(t *testing.T) {
	tmpl, err := NewTemplate("persona", "You are {{.Name}} from the {{.Era}}.")
	if err != nil {
		t.Fatalf("NewTemplate: %v", err)
	}
	got, err := tmpl.Render(map[string]string{"Name": "Socrates", "Era": "Ancient Greece"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "You are Socrates from the Ancient Greece." {
		t.Errorf("Render() = %q", got)
	}

	if _, err := tmpl.Render(map[string]string{"Name": "Socrates"}); err == nil {
		t.Error("expected missing key error")
	}
}

func TestManagerRegisterAndRender(t *testing.T) {
	m := NewManager()
	if err := m.RegisterString("greet", "Hello {{.}}"); err != nil {
		t.Fatalf("RegisterString: %v", err)
	}
	if err := m.RegisterString("greet", "dup"); err == nil {
		t.Error("expected duplicate registration error")
	}
	if err := m.Register(&Template{}); err == nil {
		t.Error("expected empty name error")
	}
	out, err := m.Render("greet", "Joan")
	if err != nil || out != "Hello Joan" {
		t.Errorf("Render() = %q, %v", out, err)
	}
	if _, err := m.Render("missing", nil); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestMustTemplatePanicsOnBadSyntax(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustTemplate("bad", "{{.Name")
}
