package shader

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Source holds the vertex and fragment stages of one program.
type Source struct {
	Vertex   string
	Fragment string
}

// ParseCombined splits a combined shader file into its stages. Sections
// start with a "#shader vertex" or "#shader fragment" line; text before the
// first marker is ignored.
func ParseCombined(src string) (Source, error) {
	var stages [2]strings.Builder
	mode := -1

	sc := bufio.NewScanner(strings.NewReader(src))
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := sc.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#shader") {
			switch kind := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "#shader")); kind {
			case "vertex":
				mode = 0
			case "fragment", "pixel":
				mode = 1
			default:
				return Source{}, fmt.Errorf("line %d: unknown shader stage %q", lineNo, kind)
			}
			continue
		}
		if mode >= 0 {
			stages[mode].WriteString(line)
			stages[mode].WriteByte('\n')
		}
	}
	if err := sc.Err(); err != nil {
		return Source{}, err
	}

	s := Source{Vertex: stages[0].String(), Fragment: stages[1].String()}
	if strings.TrimSpace(s.Vertex) == "" {
		return Source{}, fmt.Errorf("missing vertex stage")
	}
	if strings.TrimSpace(s.Fragment) == "" {
		return Source{}, fmt.Errorf("missing fragment stage")
	}
	return s, nil
}

// LoadCombined reads and splits a combined shader file.
func LoadCombined(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("reading shader: %w", err)
	}
	s, err := ParseCombined(string(data))
	if err != nil {
		return Source{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
