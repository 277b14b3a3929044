package templating

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/lithammer/dedent"
	"github.com/valyala/fasttemplate"
)

// ErrMissingKey is returned when a template references a
// placeholder that has no value in the substitution map.
var ErrMissingKey = errors.New("missing substitution key")

// ErrUnterminatedTag is returned when a template opens a
// placeholder that is never closed.
var ErrUnterminatedTag = errors.New("unterminated placeholder")

// Engine renders templates with named placeholders.
type Engine struct {
	StartTag string
	EndTag   string
}

// Render removes the common leading indentation from tpl
// and substitutes every placeholder with the string form
// of its value in ctx. A placeholder without a value in
// ctx fails with ErrMissingKey, a start tag without a
// matching end tag with ErrUnterminatedTag.
func (en *Engine) Render(
	tpl string,
	ctx map[string]any,
) (string, error) {
	const errCtx = "rendering template"

	startTag, endTag := en.tags()
	text := Dedent(tpl)

	// fasttemplate copies an unclosed start tag verbatim.
	// Only the last start tag can be left unclosed.
	if idx := strings.LastIndex(text, startTag); idx >= 0 &&
		!strings.Contains(text[idx+len(startTag):], endTag) {
		return "", fmt.Errorf(
			"%s: %w at offset %d", errCtx, ErrUnterminatedTag, idx,
		)
	}

	out, err := fasttemplate.ExecuteFuncStringWithErr(
		text,
		startTag,
		endTag,
		func(w io.Writer, tag string) (int, error) {
			val, ok := ctx[tag]
			if !ok {
				return 0, fmt.Errorf(
					"%w: %q", ErrMissingKey, tag,
				)
			}

			return io.WriteString(w, Stringify(val))
		},
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return out, nil
}

// tags returns the configured start/end tags, falling
// back to double-brace defaults.
func (en *Engine) tags() (string, string) {
	startTag := en.StartTag
	if startTag == "" {
		startTag = "{{"
	}

	endTag := en.EndTag
	if endTag == "" {
		endTag = "}}"
	}

	return startTag, endTag
}

// Dedent removes any common leading whitespace from every
// line in text. Lines consisting solely of blanks and tabs
// are normalized to empty lines and do not count towards
// the margin.
func Dedent(text string) string {
	return dedent.Dedent(text)
}

// Stringify returns the textual form of a substitution
// value. Floating point values use the shortest
// representation that round-trips and always carry a
// decimal point or an exponent, so 2461386 renders as
// "2461386.0" and 0.00001 as "1e-05".
func Stringify(val any) string {
	switch vv := val.(type) {
	case string:
		return vv
	case float64:
		return formatFloat(vv, 64)
	case float32:
		return formatFloat(float64(vv), 32)
	case int:
		return strconv.Itoa(vv)
	case int64:
		return strconv.FormatInt(vv, 10)
	case uint64:
		return strconv.FormatUint(vv, 10)
	case bool:
		return strconv.FormatBool(vv)
	case []byte:
		return string(vv)
	case fmt.Stringer:
		return vv.String()
	default:
		return fmt.Sprint(val)
	}
}

func formatFloat(val float64, bitSize int) string {
	switch {
	case math.IsNaN(val):
		return "nan"
	case math.IsInf(val, 1):
		return "inf"
	case math.IsInf(val, -1):
		return "-inf"
	}

	abs := math.Abs(val)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(val, 'e', -1, bitSize)
	}

	str := strconv.FormatFloat(val, 'f', -1, bitSize)
	if !strings.Contains(str, ".") {
		str += ".0"
	}

	return str
}

// ParseVars parses NAME=VALUE pairs into a substitution
// map. Later pairs override earlier ones.
func ParseVars(vars []string) (map[string]any, error) {
	const errCtx = "parsing variables"

	ctx := make(map[string]any, len(vars))

	for _, vr := range vars {
		parts := strings.SplitN(vr, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf(
				"%s: variable must be NAME=value, got %s",
				errCtx, vr,
			)
		}

		ctx[parts[0]] = parts[1]
	}

	return ctx, nil
}

// ReadTemplate reads a template from a file path.
func ReadTemplate(tplPath string) ([]byte, error) {
	const errCtx = "reading template"

	content, err := os.ReadFile(tplPath) //nolint:gosec // paths from CLI flags
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return content, nil
}

// WriteFile writes content to outPath, creating or
// truncating it. If outPath is empty it writes to stdout.
func WriteFile(outPath string, content string) (retErr error) {
	const errCtx = "writing output"

	if outPath == "" {
		if _, err := os.Stdout.WriteString(content); err != nil {
			return fmt.Errorf(
				"%s: writing to stdout: %w", errCtx, err,
			)
		}

		return nil
	}

	fi, err := os.OpenFile( //nolint:gosec // paths from CLI flags
		outPath,
		os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
		0o666,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := fi.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	if _, err := fi.WriteString(content); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
