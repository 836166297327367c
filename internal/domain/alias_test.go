package domain

import "testing"

func TestValidAliasName(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"gs", true},
		{"deploy-prod", true},
		{"g", true},
		{"", false},
		{"two words", false},
		{"help", false},
		{"HELP", false},
		{"uninstall", false},
		{"exit", false},
		{"quit", false},
	}
	for _, tc := range cases {
		if got := ValidAliasName(tc.name); got != tc.want {
			t.Errorf("ValidAliasName(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestResolveAlias(t *testing.T) {
	aliases := map[string]string{
		"gs": "git status",
		"gl": "git log",
	}
	cases := []struct {
		input string
		want  string
	}{
		{"gs", "git status"},
		{"gl -n 5", "git log -n 5"},
		{"ls -la", "ls -la"},
		{"gsx", "gsx"},
	}
	for _, tc := range cases {
		if got := ResolveAlias(tc.input, aliases); got != tc.want {
			t.Errorf("ResolveAlias(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
