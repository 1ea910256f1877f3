package vocab

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Merges is the ordered BPE merge table. The position of a pair defines
// its rank; lower rank means higher merge priority.
type Merges struct {
	ranks map[string]int
}

// LoadMerges reads a merges file: blank lines and '#' comment lines are
// skipped, every other line must be exactly two whitespace-separated
// tokens, and rank is the 0-based order of appearance.
func LoadMerges(path string) (*Merges, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open merges file: %w", err)
	}
	defer func() { _ = f.Close() }()

	m, err := ReadMerges(f)
	if err != nil {
		return nil, fmt.Errorf("read merges file %q: %w", path, err)
	}
	return m, nil
}

// ReadMerges parses a merge table from r. See LoadMerges for the format.
func ReadMerges(r io.Reader) (*Merges, error) {
	m := &Merges{ranks: make(map[string]int, 50000)}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("merges line %d: expected 2 tokens, got %d", lineNo, len(fields))
		}

		key := fields[0] + " " + fields[1]
		if _, dup := m.ranks[key]; !dup {
			m.ranks[key] = len(m.ranks)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan merges: %w", err)
	}

	return m, nil
}

// Rank returns the rank of the (left, right) pair, or -1 when the pair
// has no merge rule.
func (m *Merges) Rank(left, right string) int {
	if r, ok := m.ranks[left+" "+right]; ok {
		return r
	}
	return -1
}

// Len returns the number of merge rules.
func (m *Merges) Len() int {
	return len(m.ranks)
}
