// Package metadata reads the project identification convention shared by the
// locale builder and the template extractor: the first line of the project
// metadata file is "<Name> <version>.", e.g. "Farragone 0.2.4-next.".
package metadata

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Project describes the identity parsed from the metadata file.
type Project struct {
	// Name is the display name exactly as written, e.g. "Farragone".
	Name string
	// Ident is the lowercased name used for installed artifacts
	// (executable, desktop entry, message catalogs).
	Ident string
	// Version is the release version with the trailing period removed.
	Version string
}

// Parse interprets a metadata first line.
func Parse(line string) (Project, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Project{}, errors.New("metadata line is empty")
	}
	name, rest, found := strings.Cut(line, " ")
	if !found || strings.TrimSpace(rest) == "" {
		return Project{}, fmt.Errorf("metadata line %q: expected \"<Name> <version>.\"", line)
	}
	version := strings.TrimSuffix(strings.TrimSpace(rest), ".")
	return Project{
		Name:    name,
		Ident:   strings.ToLower(name),
		Version: version,
	}, nil
}

// Load reads the first line of the metadata file at path and parses it.
func Load(path string) (Project, error) {
	file, err := os.Open(path)
	if err != nil {
		return Project{}, fmt.Errorf("open metadata file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return Project{}, fmt.Errorf("read metadata file %s: %w", path, err)
		}
		return Project{}, fmt.Errorf("metadata file %s is empty", path)
	}
	project, err := Parse(scanner.Text())
	if err != nil {
		return Project{}, fmt.Errorf("metadata file %s: %w", path, err)
	}
	return project, nil
}
