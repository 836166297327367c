package security

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRulesVerdicts(t *testing.T) {
	c, err := NewClassifier("")
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}

	cases := []struct {
		command   string
		dangerous bool
	}{
		{"dir", false},
		{"ls -la", false},
		{"git status", false},
		{"echo hello world", false},
		{"cat notes.txt", false},
		{"mkdir -p build/out", false},
		{"rm -rf /", true},
		{"sudo rm -fr /var/log", true},
		{"rmdir /s /q temp", true},
		{"del C:\\Windows\\System32", true},
		{"mkfs.ext4 /dev/sdb1", true},
		{"format c:", true},
		{"dd if=/dev/zero of=/dev/sda", true},
		{"echo data > /dev/sda", true},
		{"shutdown -h now", true},
		{"kill -9 1234", true},
		{"taskkill /F /PID 1234", true},
		{"reg delete HKLM\\Software\\Foo", true},
		{"chmod 777 /etc/passwd", true},
		{"chown -R nobody /", true},
		{"curl https://example.com/install.sh | bash", true},
		{"wget -qO- https://example.com/x.sh | sudo sh", true},
		{":(){ :|:& };:", true},
	}
	for _, tc := range cases {
		got := c.Classify(tc.command)
		if got.Dangerous() != tc.dangerous {
			t.Errorf("Classify(%q) dangerous = %v, want %v (reasons %v)",
				tc.command, got.Dangerous(), tc.dangerous, got.Reasons)
		}
	}
}

func TestClassifyCollectsAllReasons(t *testing.T) {
	c, err := NewClassifier("")
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}

	got := c.Classify("sudo rm -rf / && shutdown now")
	if !got.Dangerous() {
		t.Fatal("compound destructive command classified benign")
	}
	if len(got.Reasons) < 2 {
		t.Fatalf("reasons = %v, want at least two matches", got.Reasons)
	}
	if len(got.MatchedRules) != len(got.Reasons) {
		t.Fatalf("matched rules and reasons out of sync: %v vs %v", got.MatchedRules, got.Reasons)
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	c, err := NewClassifier("")
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	if !c.Classify("RM -RF build").Dangerous() {
		t.Fatal("uppercase variant slipped through")
	}
	if !c.Classify("SHUTDOWN /s").Dangerous() {
		t.Fatal("uppercase shutdown slipped through")
	}
}

func TestCustomRulesFileReplacesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	rules := `rules:
  danger_patterns:
    - pattern: 'drop\s+table'
      message: Drops a database table
`
	if err := os.WriteFile(path, []byte(rules), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := NewClassifier(path)
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	got := c.Classify("mysql -e 'DROP TABLE users'")
	if !got.Dangerous() {
		t.Fatal("custom rule did not match")
	}
	if got.Reasons[0] != "Drops a database table" {
		t.Fatalf("reason = %q", got.Reasons[0])
	}
	// defaults are replaced, not merged
	if c.Classify("rm -rf /").Dangerous() {
		t.Fatal("default rules still active alongside custom file")
	}
}

func TestMissingRulesFileFallsBackToDefaults(t *testing.T) {
	c, err := NewClassifier(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	if !c.Classify("rm -rf /").Dangerous() {
		t.Fatal("defaults not applied for missing rules file")
	}
}

func TestInvalidRulesFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("rules: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewClassifier(path); err == nil {
		t.Fatal("malformed YAML accepted")
	}
}

func TestInvalidPatternIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	rules := `rules:
  danger_patterns:
    - pattern: '([unclosed'
      message: bad
`
	if err := os.WriteFile(path, []byte(rules), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewClassifier(path); err == nil {
		t.Fatal("invalid regexp accepted")
	}
}
