package screenshots

import (
	_ "embed"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/byte4ever/stellarium_screenshots/templating"
)

// Extension is appended to every script name.
const Extension = ".ssc"

// DefaultPausePoll is the polling interval, in seconds,
// used by pauseUntilPlay when Request.PausePoll is zero.
const DefaultPausePoll = 0.5

const fovDecimals = 4

//go:embed screenshots.ssc.tmpl
var builtinTemplate string

//go:embed pause_until_play.js
var pauseUntilPlayFn string

// Request describes a single screenshot script.
type Request struct {
	// Path is the directory the script is written to.
	Path string `json:"path" yaml:"path"`

	// ScriptName is the file name without extension. It
	// also prefixes every screenshot file.
	ScriptName string `json:"script_name" yaml:"script_name"`

	// ObjectName is inserted verbatim into the script.
	ObjectName string `json:"object_name" yaml:"object_name"`

	// JDs are the UTC Julian dates, one per screenshot.
	JDs []float64 `json:"jds" yaml:"jds"`

	// FOVDeg is the field of view in degrees.
	FOVDeg float64 `json:"fov_deg" yaml:"fov_deg"`

	// LabelFormat overrides DefaultLabelStyle key by key.
	LabelFormat map[string]any `json:"label_fmt,omitempty" yaml:"label_fmt,omitempty"`

	// PauseUntilPlay holds the script after each
	// screenshot until the user presses play.
	PauseUntilPlay bool `json:"pause_until_play,omitempty" yaml:"pause_until_play,omitempty"`

	// PausePoll is the pause polling interval in seconds.
	PausePoll float64 `json:"pause_poll,omitempty" yaml:"pause_poll,omitempty"`
}

// Generator renders screenshot scripts. The zero value
// uses the built-in template with "{{" and "}}" tags.
type Generator struct {
	Engine   templating.Engine
	Template string
}

// Generate writes the script described by the arguments
// to path/scriptName.ssc using the built-in template and
// returns the file path. Existing files are overwritten.
func Generate(
	path string,
	scriptName string,
	objectName string,
	jds []float64,
	fovDeg float64,
	labelFmt map[string]any,
) (string, error) {
	ge := Generator{}

	return ge.Generate(Request{
		Path:        path,
		ScriptName:  scriptName,
		ObjectName:  objectName,
		JDs:         jds,
		FOVDeg:      fovDeg,
		LabelFormat: labelFmt,
	})
}

// Generate renders req and writes it to
// req.Path/req.ScriptName.ssc, returning the file path.
func (ge *Generator) Generate(req Request) (string, error) {
	const errCtx = "generating script"

	script, err := ge.Render(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	outPath := filepath.Join(req.Path, ScriptFileName(req.ScriptName))

	if err := templating.WriteFile(outPath, script); err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Debug(
		"script written",
		"path", outPath,
		"captures", len(req.JDs),
	)

	return outPath, nil
}

// Render returns the script text for req.
func (ge *Generator) Render(req Request) (string, error) {
	const errCtx = "rendering script"

	tpl := ge.Template
	if tpl == "" {
		tpl = builtinTemplate
	}

	script, err := ge.Engine.Render(tpl, Mapping(req))
	if err != nil {
		return "", fmt.Errorf(
			"%s %q: %w", errCtx, req.ScriptName, err,
		)
	}

	return script, nil
}

// Mapping builds the substitution map for req: the
// default label style, overridden by req.LabelFormat,
// overridden by the values derived from req.
func Mapping(req Request) map[string]any {
	derived := map[string]any{
		"script_name": req.ScriptName,
		"jd_list":     FormatJulianDates(req.JDs),
		"object_name": req.ObjectName,
		"fov_deg":     RoundFOV(req.FOVDeg),
		"pause_fn":    "",
		"pause_call":  "",
	}

	if req.PauseUntilPlay {
		poll := req.PausePoll
		if poll == 0 {
			poll = DefaultPausePoll
		}

		derived["pause_fn"] = pauseUntilPlayFn
		derived["pause_call"] = "  pauseUntilPlay(" +
			templating.Stringify(poll) + ");\n"
	}

	return MergeMappings(
		DefaultLabelStyle().Mapping(),
		req.LabelFormat,
		derived,
	)
}

// FormatJulianDates renders jds as the body of a script
// array literal, one date per line, order preserved.
func FormatJulianDates(jds []float64) string {
	parts := make([]string, 0, len(jds))
	for _, jd := range jds {
		parts = append(parts, templating.Stringify(jd))
	}

	return strings.Join(parts, ",\n  ")
}

// RoundFOV rounds val to four decimal places, halfway
// cases resolved on the exact binary value.
func RoundFOV(val float64) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return val
	}

	rounded, err := strconv.ParseFloat(
		strconv.FormatFloat(val, 'f', fovDecimals, 64), 64,
	)
	if err != nil {
		return val
	}

	return rounded
}

// ScriptFileName returns the file name for a script.
// The extension is appended even if name already has it.
func ScriptFileName(name string) string {
	return name + Extension
}
