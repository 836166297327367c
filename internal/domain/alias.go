package domain

import "strings"

// reservedAliasNames are tokens an alias may never shadow: the meta-command
// table plus the session terminators.
var reservedAliasNames = map[string]struct{}{
	"help": {}, "api": {}, "provider": {}, "model": {}, "history": {},
	"config": {}, "alias": {}, "aliases": {}, "update": {}, "uninstall": {},
	"exit": {}, "quit": {},
}

// ValidAliasName reports whether name is a non-empty single token that does
// not collide with a reserved meta-command.
func ValidAliasName(name string) bool {
	if name == "" || strings.ContainsAny(name, " \t") {
		return false
	}
	_, reserved := reservedAliasNames[strings.ToLower(name)]
	return !reserved
}

// ResolveAlias substitutes the first token of input when it names a defined
// alias, preserving any trailing arguments. Unmatched input comes back
// verbatim.
func ResolveAlias(input string, aliases map[string]string) string {
	name, rest, _ := strings.Cut(input, " ")
	command, ok := aliases[name]
	if !ok {
		return input
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return command
	}
	return command + " " + rest
}
