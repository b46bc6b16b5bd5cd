package cli

import "strings"

// promptLine prints a prompt and reads one trimmed line from stdin.
func (a *App) promptLine(prompt string) string {
	a.printf("%s", prompt)
	line, _ := a.reader.ReadString('\n')
	return strings.TrimSpace(line)
}
