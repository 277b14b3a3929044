// Package templating provides a strict placeholder engine built on
// valyala/fasttemplate with configurable delimiters (default "{{" and "}}").
//
// Engine.Render dedents a template and substitutes every placeholder from a
// value map, failing with ErrMissingKey when a placeholder has no value.
// Stringify, ParseVars, ReadTemplate and WriteFile cover the surrounding
// plumbing: value formatting, NAME=VALUE flags and file I/O.
package templating
