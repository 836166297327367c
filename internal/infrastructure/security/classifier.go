// Package security implements the pattern-based danger classifier that
// gates command execution.
package security

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pieronoviello/natsh/internal/domain"
	"github.com/pieronoviello/natsh/internal/ports"
)

// Classifier evaluates resolved command strings against a fixed rule set.
// Rules are compiled once at construction; Classify itself does no I/O.
type Classifier struct {
	patterns []compiledRule
}

type compiledRule struct {
	re   *regexp.Regexp
	rule domain.DangerRule
}

// RulesFile is the YAML schema for user-extensible rules.
type RulesFile struct {
	Rules struct {
		DangerPatterns []domain.DangerRule `yaml:"danger_patterns"`
	} `yaml:"rules"`
}

// NewClassifier loads rules from the YAML file at path, falling back to the
// built-in defaults when the file is missing or empty. Patterns match
// case-insensitively.
func NewClassifier(path string) (*Classifier, error) {
	rules, err := loadRules(path)
	if err != nil {
		return nil, err
	}

	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, compiledRule{re: re, rule: rule})
	}
	return &Classifier{patterns: compiled}, nil
}

// Classify implements ports.SafetyClassifier. A command is dangerous iff at
// least one rule matches any part of it.
func (c *Classifier) Classify(command string) domain.Assessment {
	assessment := domain.Assessment{Verdict: domain.VerdictBenign}
	for _, p := range c.patterns {
		if p.re.MatchString(command) {
			assessment.Verdict = domain.VerdictDangerous
			assessment.Reasons = append(assessment.Reasons, p.rule.Message)
			assessment.MatchedRules = append(assessment.MatchedRules, p.rule.Pattern)
		}
	}
	return assessment
}

func loadRules(path string) ([]domain.DangerRule, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	data, err := os.ReadFile(expandPath(path))
	if err != nil {
		// missing file is not an error, the defaults apply
		return DefaultRules(), nil
	}
	var file RulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Rules.DangerPatterns) == 0 {
		return DefaultRules(), nil
	}
	return file.Rules.DangerPatterns, nil
}

// DefaultRules is the built-in rule set. Rules operate on the literal
// resolved command, so aliased and direct-mode commands get the same
// scrutiny as AI-translated ones.
func DefaultRules() []domain.DangerRule {
	return []domain.DangerRule{
		{Pattern: `(^|[\s;&|])(rm|del|rmdir|rd)(\.exe)?(\s|$)`, Message: "Deletes files or directories"},
		{Pattern: `rm\s+-[a-z]*r[a-z]*f|rm\s+-[a-z]*f[a-z]*r`, Message: "Recursive force delete"},
		{Pattern: `(^|[\s;&|])(mkfs|fdisk|diskpart|format)(\.\w+)?(\s|$)`, Message: "Formats or partitions a disk"},
		{Pattern: `dd\s+if=`, Message: "Raw disk writing"},
		{Pattern: `>\s*/dev/(sd[a-z]|nvme)`, Message: "Writes to a block device"},
		{Pattern: `(^|[\s;&|])(shutdown|reboot|poweroff|halt|restart)(\s|$)`, Message: "Shuts down or restarts the machine"},
		{Pattern: `(^|[\s;&|])(kill|killall|pkill|taskkill)(\s|$)`, Message: "Terminates a process or service"},
		{Pattern: `reg\s+(delete|add)\b`, Message: "Edits the Windows registry"},
		{Pattern: `chmod\s+(-[a-z]+\s+)?777`, Message: "Overly permissive chmod"},
		{Pattern: `chown\s+-[a-z]*r`, Message: "Recursive ownership change"},
		{Pattern: `(curl|wget|iwr|invoke-webrequest)[^|]*\|\s*(sudo\s+)?(sh|bash|zsh|powershell|iex)`, Message: "Pipes remote content into an interpreter"},
		{Pattern: `:\(\)\s*\{\s*:\|:&\s*\}\s*;:`, Message: "Fork bomb"},
	}
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

var _ ports.SafetyClassifier = (*Classifier)(nil)
