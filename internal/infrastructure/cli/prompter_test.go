package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func newTestPrompter(input string) (*TerminalPrompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	p := &TerminalPrompter{
		in:          bufio.NewReader(strings.NewReader(input)),
		out:         out,
		interactive: false,
	}
	return p, out
}

func TestConfirmOnlyAffirmsOnY(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{" y \n", true},
		{"n\n", false},
		{"\n", false},
		{"yes\n", false},
		{"yeah\n", false},
		{"sure\n", false},
	}
	for _, tc := range cases {
		p, _ := newTestPrompter(tc.input)
		got, err := p.Confirm("continue? ")
		if err != nil {
			t.Fatalf("Confirm(%q): %v", tc.input, err)
		}
		if got != tc.want {
			t.Errorf("Confirm(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestConfirmPrintsPrompt(t *testing.T) {
	p, out := newTestPrompter("n\n")
	if _, err := p.Confirm("Run it anyway? [y/N] "); err != nil {
		t.Fatal(err)
	}
	if out.String() != "Run it anyway? [y/N] " {
		t.Fatalf("prompt output = %q", out.String())
	}
}

func TestConfirmDeclinesOnClosedInput(t *testing.T) {
	p, _ := newTestPrompter("")
	ok, err := p.Confirm("? ")
	if ok {
		t.Fatal("closed input affirmed")
	}
	if err == nil {
		t.Fatal("closed input reported no error")
	}
}

func TestReadSecretNonInteractiveReadsLine(t *testing.T) {
	p, _ := newTestPrompter("  sk-abc123  \n")
	got, err := p.ReadSecret("key: ")
	if err != nil {
		t.Fatalf("ReadSecret: %v", err)
	}
	if got != "sk-abc123" {
		t.Fatalf("secret = %q", got)
	}
}
