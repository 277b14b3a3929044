package screenshots

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// LoadRequest reads a Request from a .json, .yaml or .yml
// file. JSON numbers inside label_fmt keep their literal
// form so that "size": 40 renders as 40, not 40.0.
func LoadRequest(path string) (Request, error) {
	const errCtx = "loading request"

	data, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return Request{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	var req Request

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()

		if err := dec.Decode(&req); err != nil {
			return Request{}, fmt.Errorf(
				"%s: decoding json %s: %w", errCtx, path, err,
			)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &req); err != nil {
			return Request{}, fmt.Errorf(
				"%s: decoding yaml %s: %w", errCtx, path, err,
			)
		}
	default:
		return Request{}, fmt.Errorf(
			"%s: unsupported file extension %q", errCtx, ext,
		)
	}

	return req, nil
}

// RequestKeys reports which top-level keys a .json, .yaml
// or .yml request file sets, so that an explicit zero can
// be told apart from an absent key.
func RequestKeys(path string) (map[string]bool, error) {
	const errCtx = "reading request keys"

	data, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var raw map[string]any

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf(
			"%s: unsupported file extension %q", errCtx, ext,
		)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", errCtx, path, err)
	}

	keys := make(map[string]bool, len(raw))
	for key := range raw {
		keys[key] = true
	}

	return keys, nil
}

// LoadJulianDates reads a list of Julian dates. JSON and
// YAML files hold a flat array; any other file is plain
// text with one date per line, where blank lines and
// lines starting with '#' are skipped.
func LoadJulianDates(path string) ([]float64, error) {
	const errCtx = "loading julian dates"

	data, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var jds []float64

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &jds); err != nil {
			return nil, fmt.Errorf(
				"%s: decoding json %s: %w", errCtx, path, err,
			)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &jds); err != nil {
			return nil, fmt.Errorf(
				"%s: decoding yaml %s: %w", errCtx, path, err,
			)
		}
	default:
		jds, err = parseJulianDateLines(data)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %s: %w", errCtx, path, err,
			)
		}
	}

	return jds, nil
}

func parseJulianDateLines(data []byte) ([]float64, error) {
	var jds []float64

	sc := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0

	for sc.Scan() {
		lineNo++

		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		jd, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		jds = append(jds, jd)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning lines: %w", err)
	}

	return jds, nil
}
