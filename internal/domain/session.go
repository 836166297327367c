package domain

// Intent is the result of classifying one raw input line. Classification
// happens before any other logic runs; the dispatcher switches on the
// resulting value exactly once per line.
type Intent int

const (
	// IntentNoop covers empty or whitespace-only input.
	IntentNoop Intent = iota
	// IntentExit terminates the session ("exit"/"quit", case-insensitive).
	IntentExit
	// IntentExplain asks the provider to describe a literal command ("?cmd").
	IntentExplain
	// IntentAliasDefine creates or replaces an alias ("!alias name=cmd").
	IntentAliasDefine
	// IntentMeta is a first-class session command ("!help", "!provider", ...).
	IntentMeta
	// IntentDirect executes a command without AI translation ("!cmd" or a
	// bare alias token).
	IntentDirect
	// IntentTranslate sends the input to the active provider.
	IntentTranslate
)

// OutcomeKind enumerates what handling a line amounted to.
type OutcomeKind int

const (
	OutcomeNoop OutcomeKind = iota
	OutcomeExecuted
	OutcomeDeclined
	OutcomeExplained
	OutcomeConfigChanged
	OutcomeExited
	OutcomeError
)

// Outcome is the dispatcher's answer for a single input line.
type Outcome struct {
	Kind     OutcomeKind
	ExitCode int
	// Text carries the explanation for OutcomeExplained and the
	// human-readable detail for OutcomeError.
	Text string
	Err  error
}

// SessionState is the single process-lifetime state owned by the dispatcher.
// No other component mutates it.
type SessionState struct {
	ID         string
	Config     Config
	WorkingDir string
}

// TranslationRequest is built per natural-language input and consumed
// immediately by the provider; it is never persisted.
type TranslationRequest struct {
	Prompt     string
	WorkingDir string
	OSHint     string
	// Recent supplies the last few history entries so the provider can
	// resolve references like "do that again".
	Recent []HistoryEntry
}
