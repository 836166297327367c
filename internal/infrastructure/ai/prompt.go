// Package ai implements the provider abstraction: three backends (Gemini,
// OpenAI, Claude) behind a uniform translate/explain capability.
//
// Each variant encapsulates its own wire format and authentication; the
// shared pieces here are prompt composition and reducing whatever the
// backend returns down to a single actionable command line.
package ai

import (
	"fmt"
	"strings"

	"github.com/pieronoviello/natsh/internal/domain"
)

// buildTranslatePrompt composes the instruction sent for natural-language
// translation. The rules differ per platform so the model emits commands
// the local shell actually understands.
func buildTranslatePrompt(req domain.TranslationRequest) string {
	shellInfo := "bash/zsh"
	shellRules := unixShellRules
	if req.OSHint == "windows" {
		shellInfo = "Windows CMD (cmd.exe)"
		shellRules = windowsShellRules
	}

	return fmt.Sprintf(`You are a shell command translator. Convert the user's natural language request into a shell command for %s.

Current directory: %s

Recent command history:
%s

STRICT RULES:
- Output ONLY the command, nothing else
- No explanations, no markdown, no backticks, no quotes around the command
- If unclear, make a reasonable assumption
- Use the command history for context (e.g., "do that again", "undo that")
%s

User request: %s`, shellInfo, req.WorkingDir, historyContext(req.Recent), shellRules, req.Prompt)
}

// buildExplainPrompt composes the instruction for explain mode.
func buildExplainPrompt(command string) string {
	return fmt.Sprintf(`Explain this shell command in simple terms. Be concise (2-3 sentences max).

Command: %s

Explain what it does and any important flags/options.`, command)
}

const unixShellRules = `- Use Unix shell commands (ls, rm, cp, mv, cat, etc.)
- Use forward slashes for paths
- Use '~' for home directory
- Use 'open' on macOS or 'xdg-open' on Linux to open files`

const windowsShellRules = `- Use Windows CMD commands (dir, del, copy, move, type, cls, start, etc.)
- Use backslashes for paths (C:\Users\...)
- Use 'dir' instead of 'ls'
- Use 'del' or 'rmdir /s /q' instead of 'rm -r'
- Use 'type' instead of 'cat'
- Use '%USERPROFILE%' for home directory`

func historyContext(entries []domain.HistoryEntry) string {
	if len(entries) == 0 {
		return "No previous commands."
	}
	var lines []string
	for i, entry := range entries {
		lines = append(lines, fmt.Sprintf("%d. > %s", i+1, entry.Command))
	}
	return strings.Join(lines, "\n")
}

// extractCommand reduces a model reply to a single command line. It strips
// markdown code fences and "command:" prefixes when the model ignores the
// plain-output instruction.
func extractCommand(content string) string {
	if strings.Contains(content, "```") {
		start := strings.Index(content, "```")
		suffix := content[start+3:]
		if end := strings.Index(suffix, "```"); end != -1 {
			block := suffix[:end]
			lines := strings.Split(block, "\n")
			if len(lines) > 0 {
				marker := strings.TrimSpace(strings.ToLower(lines[0]))
				if marker == "sh" || marker == "bash" || marker == "shell" || marker == "cmd" || marker == "powershell" {
					lines = lines[1:]
				}
			}
			content = strings.Join(lines, "\n")
		}
	}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(line), "command:") {
			line = strings.TrimSpace(line[len("command:"):])
		}
		return strings.Trim(line, "`")
	}
	return strings.TrimSpace(content)
}
