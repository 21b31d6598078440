package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	relayerrors "github.com/sweetpotato0/deadchat/errors"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPersonasCommand(t *testing.T) {
	out, err := execute(t, "", "personas")
	if err != nil {
		t.Fatalf("personas error = %v", err)
	}
	for _, want := range []string{"ID", "leonardo", "Albert Einstein", "spirit"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestChatCanned(t *testing.T) {
	out, err := execute(t, "tell me about gravity\n\n/quit\nignored\n", "chat", "--persona", "newton", "--canned")
	if err != nil {
		t.Fatalf("chat error = %v", err)
	}
	if !strings.Contains(out, "Isaac Newton: Good day! I am Sir Isaac Newton.") {
		t.Errorf("missing greeting:\n%s", out)
	}
	if !strings.Contains(out, "Isaac Newton: An apple fell") {
		t.Errorf("missing gravity reply:\n%s", out)
	}
	if strings.Count(out, "Isaac Newton:") != 2 {
		t.Errorf("expected greeting and one reply:\n%s", out)
	}
}

func TestChatThroughRelay(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":"Imagination is everything."}`))
	}))
	defer ts.Close()

	out, err := execute(t, "hello\n", "chat", "-p", "einstein", "--backend", ts.URL)
	if err != nil {
		t.Fatalf("chat error = %v", err)
	}
	if !strings.Contains(out, "Albert Einstein: Imagination is everything.") {
		t.Errorf("missing relay reply:\n%s", out)
	}
}

func TestChatUnknownPersona(t *testing.T) {
	if _, err := execute(t, "", "chat", "--persona", "nobody", "--canned"); err == nil {
		t.Fatal("expected error for unknown persona")
	}
}

func TestDebateCommand(t *testing.T) {
	out, err := execute(t, "", "debate", "--a", "tesla", "--b", "edison", "--topic", "the future of human technology")
	if err != nil {
		t.Fatalf("debate error = %v", err)
	}
	if !strings.HasPrefix(out, "Nikola Tesla vs Thomas Edison: The Future of Human Technology\n") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "Thomas Edison: Nikola, AC is dangerous!") {
		t.Errorf("missing scripted turn:\n%s", out)
	}
	if n := strings.Count(out, "\n"); n != 7 {
		t.Errorf("printed %d lines, want header and 6 turns:\n%s", n, out)
	}
}

func TestDebateCommandTopics(t *testing.T) {
	out, err := execute(t, "", "debate", "--topics")
	if err != nil {
		t.Fatalf("debate --topics error = %v", err)
	}
	if !strings.Contains(out, "Consciousness and Artificial Intelligence") {
		t.Errorf("topic list:\n%s", out)
	}
}

func TestDebateCommandRejectsUnknownTopic(t *testing.T) {
	_, err := execute(t, "", "debate", "--a", "einstein", "--b", "bohr", "--topic", "cooking")
	if !errors.Is(err, relayerrors.ErrInvalidInput) {
		t.Fatalf("debate error = %v, want ErrInvalidInput", err)
	}
}

func TestServeRequiresCredentials(t *testing.T) {
	t.Setenv("GEMINI_API_KEYS", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY_1", "")

	_, err := execute(t, "", "serve")
	if !errors.Is(err, relayerrors.ErrNoCredentials) {
		t.Fatalf("serve error = %v, want ErrNoCredentials", err)
	}
}
