package domain

// Verdict is the binary result of the safety classifier.
type Verdict string

const (
	VerdictBenign    Verdict = "benign"
	VerdictDangerous Verdict = "dangerous"
)

// DangerRule describes one pattern-based classifier rule. Patterns are
// regular expressions matched case-insensitively against the literal
// resolved command string.
type DangerRule struct {
	Pattern string `yaml:"pattern"`
	Message string `yaml:"message"`
}

// Assessment aggregates the classifier result for one command. A command is
// dangerous iff at least one rule matched.
type Assessment struct {
	Verdict      Verdict
	Reasons      []string
	MatchedRules []string
}

// Dangerous reports whether the assessment flags the command.
func (a Assessment) Dangerous() bool {
	return a.Verdict == VerdictDangerous
}
