package stderr

import (
	"bufio"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const bufferSize = 100

// LineMsg carries one captured line into the update loop.
type LineMsg string

// scan forwards trimmed lines from r to out, dropping them when out is
// full, and closes out at EOF.
func scan(r io.ReadCloser, out chan<- string) {
	defer close(out)
	defer r.Close()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case out <- line:
		default:
		}
	}
}

// Listen waits for the next line on lines. It yields nil once lines is
// closed or nil, so re-arming stops naturally.
func Listen(lines <-chan string) tea.Cmd {
	if lines == nil {
		return nil
	}
	return func() tea.Msg {
		line, ok := <-lines
		if !ok {
			return nil
		}
		return LineMsg(line)
	}
}
