package preview

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

const filePlaceholder = "{file}"

// commandTemplate is a viewer command line. Arguments may contain the
// {file} placeholder; a template without one gets the path appended.
type commandTemplate []string

// render returns the command line for path.
func (t commandTemplate) render(path string) []string {
	out := make([]string, 0, len(t)+1)
	substituted := false
	for _, arg := range t {
		if strings.Contains(arg, filePlaceholder) {
			arg = strings.ReplaceAll(arg, filePlaceholder, path)
			substituted = true
		}
		out = append(out, arg)
	}
	if !substituted {
		out = append(out, path)
	}
	return out
}

// splitCommand breaks a command line into arguments. Single or double quotes
// group words, and the other quote character is literal inside them. A
// leading "~" in the program name means the home directory.
func splitCommand(line string) commandTemplate {
	var (
		args  commandTemplate
		word  []rune
		quote rune
		open  bool
	)
	endWord := func() {
		if open {
			args = append(args, string(word))
		}
		word, open = word[:0], false
	}

	for _, r := range line {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote != 0:
			word = append(word, r)
		case r == '\'' || r == '"':
			quote, open = r, true
		case unicode.IsSpace(r):
			endWord()
		default:
			word, open = append(word, r), true
		}
	}
	endWord()

	if len(args) > 0 {
		args[0] = homeRelative(args[0])
	}
	return args
}

// homeRelative expands "~", "~/x" and "~\x" against the user's home.
func homeRelative(path string) string {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok || (rest != "" && rest[0] != '/' && rest[0] != '\\') {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
