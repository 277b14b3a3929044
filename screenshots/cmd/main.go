// Binary stellarium_screenshots writes a Stellarium script
// that takes one labelled screenshot of an object for each
// Julian date given on the command line or in a file.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/byte4ever/stellarium_screenshots/screenshots"
	"github.com/byte4ever/stellarium_screenshots/templating"
)

type arrayFlags []string

func (af *arrayFlags) String() string {
	return ""
}

func (af *arrayFlags) Set(value string) error {
	*af = append(*af, value)
	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // CLI flag setup is inherently long
func run() error {
	const errCtx = "generating stellarium script"

	var (
		jdFlags    arrayFlags
		labelFlags arrayFlags
	)

	configFile := flag.String(
		"config", "",
		"Request file (.json, .yaml or .yml)",
	)
	path := flag.String(
		"path", ".",
		"Output directory for the script",
	)
	scriptName := flag.String(
		"script_name", "",
		"Script file name without the .ssc extension",
	)
	objectName := flag.String(
		"object_name", "",
		"Name of the object to select and track",
	)
	jdFile := flag.String(
		"jd_file", "",
		"File with Julian dates (.json, .yaml or one per line)",
	)
	fovDeg := flag.Float64(
		"fov_deg", 0,
		"Field of view in degrees (required unless set in -config)",
	)
	tplFile := flag.String(
		"template", "",
		"Custom script template (built-in if empty)",
	)
	startTag := flag.String(
		"start_tag", "{{",
		"Start tag for template placeholders",
	)
	endTag := flag.String(
		"end_tag", "}}",
		"End tag for template placeholders",
	)
	pause := flag.Bool(
		"pause_until_play", false,
		"Wait for the play button after each screenshot",
	)
	pausePoll := flag.Float64(
		"pause_poll", screenshots.DefaultPausePoll,
		"Polling interval in seconds while paused",
	)
	toStdout := flag.Bool(
		"stdout", false,
		"Print the script instead of writing it",
	)

	flag.Var(
		&jdFlags,
		"jd",
		"Julian date in UTC (repeatable)",
	)

	flag.Var(
		&labelFlags,
		"label",
		"Label format in NAME=VALUE format (repeatable)",
	)

	flag.Parse()

	req := screenshots.Request{}
	fileKeys := map[string]bool{}

	if *configFile != "" {
		loaded, err := screenshots.LoadRequest(*configFile)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		keys, err := screenshots.RequestKeys(*configFile)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		req, fileKeys = loaded, keys
	}

	set := make(map[string]bool)
	flag.Visit(func(fl *flag.Flag) {
		set[fl.Name] = true
	})

	req, err := mergeRequest(req, fileKeys, options{
		Path:           *path,
		ScriptName:     *scriptName,
		ObjectName:     *objectName,
		JDFile:         *jdFile,
		JDs:            jdFlags,
		FOVDeg:         *fovDeg,
		Labels:         labelFlags,
		PauseUntilPlay: *pause,
		PausePoll:      *pausePoll,
	}, set)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	ge := screenshots.Generator{
		Engine: templating.Engine{
			StartTag: *startTag,
			EndTag:   *endTag,
		},
	}

	if *tplFile != "" {
		content, err := templating.ReadTemplate(*tplFile)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		ge.Template = string(content)
	}

	if *toStdout {
		script, err := ge.Render(req)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		if err := templating.WriteFile("", script); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		return nil
	}

	outPath, err := ge.Generate(req)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Info(
		"script written",
		"path", outPath,
		"object", req.ObjectName,
		"captures", len(req.JDs),
	)

	return nil
}
