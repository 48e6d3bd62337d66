package roster

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"fauna-warden/internal/logger"
)

// Parse reads comma-separated roster lines from r. Each line must carry
// exactly three fields: name, habitat, threat. Fields keep their spacing as
// written; only the line ends are trimmed. Blank lines are ignored. The int
// result is the number of malformed lines that were dropped.
func Parse(r io.Reader) ([]Animal, int, error) {
	var animals []Animal
	skipped := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) != 3 {
			skipped++
			continue
		}
		animals = append(animals, Animal{Name: parts[0], Habitat: parts[1], Threat: parts[2]})
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("roster: read: %w", err)
	}
	return animals, skipped, nil
}

// LoadFile reads a roster from disk. A missing file is not an error: the
// warden may be pointed at a roster that has not been written yet, so it
// warns and returns an empty roster instead.
func LoadFile(path string) ([]Animal, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Roster", fmt.Sprintf("%s not found, starting with an empty roster", path))
			return nil, nil
		}
		return nil, fmt.Errorf("roster: open %s: %w", path, err)
	}
	defer f.Close()

	animals, skipped, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("roster: %s: %w", path, err)
	}
	if skipped > 0 {
		logger.Warn("Roster", fmt.Sprintf("%s: dropped %d malformed line(s)", path, skipped))
	}
	return animals, nil
}
