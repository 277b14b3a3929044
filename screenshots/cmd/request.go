package main

import (
	"fmt"
	"strconv"

	"github.com/byte4ever/stellarium_screenshots/screenshots"
	"github.com/byte4ever/stellarium_screenshots/templating"
)

// options holds the raw command line values.
type options struct {
	Path           string
	ScriptName     string
	ObjectName     string
	JDFile         string
	JDs            []string
	FOVDeg         float64
	Labels         []string
	PauseUntilPlay bool
	PausePoll      float64
}

// mergeRequest applies the command line on top of req,
// the request loaded from the config file (zero value
// without one). fileKeys holds the keys the config file
// sets and set the names of the flags given explicitly.
// An explicit flag always replaces the config value.
func mergeRequest(
	req screenshots.Request,
	fileKeys map[string]bool,
	opts options,
	set map[string]bool,
) (screenshots.Request, error) {
	const errCtx = "merging request"

	if set["path"] || req.Path == "" {
		req.Path = opts.Path
	}

	if set["script_name"] {
		req.ScriptName = opts.ScriptName
	}

	if set["object_name"] {
		req.ObjectName = opts.ObjectName
	}

	if set["fov_deg"] {
		req.FOVDeg = opts.FOVDeg
	}

	if set["pause_until_play"] {
		req.PauseUntilPlay = opts.PauseUntilPlay
	}

	if set["pause_poll"] {
		req.PausePoll = opts.PausePoll
	}

	jds, err := flagJulianDates(opts)
	if err != nil {
		return screenshots.Request{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	// -jd_file and -jd together replace the config dates.
	if jds != nil {
		req.JDs = jds
	}

	labels, err := templating.ParseVars(opts.Labels)
	if err != nil {
		return screenshots.Request{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	req.LabelFormat = screenshots.MergeMappings(
		req.LabelFormat, labels,
	)

	if req.ScriptName == "" || req.ObjectName == "" {
		return screenshots.Request{}, fmt.Errorf(
			"%s: --script_name and --object_name are required",
			errCtx,
		)
	}

	if len(req.JDs) == 0 {
		return screenshots.Request{}, fmt.Errorf(
			"%s: at least one --jd or a --jd_file is required",
			errCtx,
		)
	}

	if !set["fov_deg"] && !fileKeys["fov_deg"] {
		return screenshots.Request{}, fmt.Errorf(
			"%s: --fov_deg or fov_deg in the config is required",
			errCtx,
		)
	}

	return req, nil
}

// flagJulianDates returns the dates from -jd_file followed
// by every -jd value, or nil when neither was given.
func flagJulianDates(opts options) ([]float64, error) {
	if opts.JDFile == "" && len(opts.JDs) == 0 {
		return nil, nil
	}

	jds := []float64{}

	if opts.JDFile != "" {
		loaded, err := screenshots.LoadJulianDates(opts.JDFile)
		if err != nil {
			return nil, err
		}

		jds = append(jds, loaded...)
	}

	for _, raw := range opts.JDs {
		jd, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf(
				"invalid julian date %q: %w", raw, err,
			)
		}

		jds = append(jds, jd)
	}

	return jds, nil
}
