package ai

import (
	"strings"
	"testing"

	"github.com/pieronoviello/natsh/internal/domain"
)

func TestExtractCommand(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"plain", "ls -la", "ls -la"},
		{"surrounding whitespace", "  ls -la\n", "ls -la"},
		{"backticks", "`ls -la`", "ls -la"},
		{"code fence", "```\nls -la\n```", "ls -la"},
		{"fence with language", "```bash\nls -la\n```", "ls -la"},
		{"fence with cmd language", "```cmd\ndir /b\n```", "dir /b"},
		{"command prefix", "Command: ls -la", "ls -la"},
		{"prefix inside fence", "```\ncommand: ls -la\n```", "ls -la"},
		{"first non-empty line wins", "\n\nls -la\nrm -rf /", "ls -la"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractCommand(tc.content); got != tc.want {
				t.Fatalf("extractCommand(%q) = %q, want %q", tc.content, got, tc.want)
			}
		})
	}
}

func TestTranslatePromptUnix(t *testing.T) {
	prompt := buildTranslatePrompt(domain.TranslationRequest{
		Prompt:     "list everything",
		WorkingDir: "/home/user/project",
		OSHint:     "linux",
		Recent: []domain.HistoryEntry{
			{Command: "git status"},
			{Command: "git diff"},
		},
	})

	for _, want := range []string{
		"bash/zsh",
		"/home/user/project",
		"1. > git status",
		"2. > git diff",
		"User request: list everything",
		"Output ONLY the command",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "cmd.exe") {
		t.Error("unix prompt contains Windows shell rules")
	}
}

func TestTranslatePromptWindows(t *testing.T) {
	prompt := buildTranslatePrompt(domain.TranslationRequest{
		Prompt: "clear the screen",
		OSHint: "windows",
	})

	if !strings.Contains(prompt, "cmd.exe") {
		t.Fatalf("windows prompt missing shell info:\n%s", prompt)
	}
	if !strings.Contains(prompt, "No previous commands.") {
		t.Fatalf("empty history placeholder missing:\n%s", prompt)
	}
}

func TestExplainPromptContainsCommand(t *testing.T) {
	prompt := buildExplainPrompt("tar -xzf backup.tar.gz")
	if !strings.Contains(prompt, "Command: tar -xzf backup.tar.gz") {
		t.Fatalf("explain prompt missing command:\n%s", prompt)
	}
}
