package territory

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed territories/*.yaml
var builtinFS embed.FS

// Parse decodes and validates a single territory map payload.
func Parse(data []byte) (*Map, error) {
	var m Map
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("territory: decode map: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadFile reads a territory map from a YAML file on disk.
func LoadFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("territory: read %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Load resolves nameOrPath to a territory map. A readable file path wins;
// otherwise the name is looked up among the built-in maps.
func Load(nameOrPath string) (*Map, error) {
	trimmed := strings.TrimSpace(nameOrPath)
	if trimmed == "" {
		return nil, fmt.Errorf("territory: empty territory name")
	}
	if _, err := os.Stat(trimmed); err == nil {
		return LoadFile(trimmed)
	}
	name := strings.TrimSuffix(strings.ToLower(trimmed), ".yaml")
	data, err := builtinFS.ReadFile("territories/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("territory: unknown territory %q (no such file or built-in map)", nameOrPath)
	}
	return Parse(data)
}

// Builtin returns the names of the embedded territory maps, sorted.
func Builtin() []string {
	entries, err := builtinFS.ReadDir("territories")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}
