package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// promptValue returns value when set, otherwise reads a line from in.
// Callers share one reader so buffered input is not lost between prompts.
func promptValue(in *bufio.Reader, out io.Writer, label, value string) (string, error) {
	if value != "" {
		return value, nil
	}

	fmt.Fprintf(out, "%s: ", label)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("no %s provided", strings.ToLower(label))
	}
	return line, nil
}
