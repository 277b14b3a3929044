// Package screenshots generates Stellarium scripts (.ssc) that step through a
// list of Julian dates, keep a named object centred at a fixed field of view,
// label it with the current date and time, and take one screenshot per date.
//
// Stellarium stores the screenshots in its default directory, named after the
// script: "<script_name>_NNN.png". A Request can be built in code or loaded
// from JSON or YAML with LoadRequest; Generator renders it through the
// templating package and writes <path>/<script_name>.ssc.
package screenshots
