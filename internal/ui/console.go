// ABOUTME: Line-oriented operator console for non-terminal sessions
// ABOUTME: Reads commands until quit or end of input
package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// RunConsole reads lines from r until "q" or EOF, then requests shutdown
// through ctrl. Any other line gets "Unknown command" on w.
func RunConsole(r io.Reader, w io.Writer, ctrl *Control) error {
	defer ctrl.RequestQuit()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		switch strings.TrimRight(scanner.Text(), " \t\r\n") {
		case "q":
			return nil
		default:
			if _, err := fmt.Fprintln(w, "Unknown command"); err != nil {
				return fmt.Errorf("failed to write console output: %w", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read console input: %w", err)
	}
	return nil
}
