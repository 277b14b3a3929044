package screenshots

// Side is the position of the date label relative to
// the target object.
type Side string

// Label positions understood by Stellarium's LabelMgr.
const (
	SideNorth Side = "N"
	SideSouth Side = "S"
	SideEast  Side = "E"
	SideWest  Side = "W"
)

// Label format keys referenced by the built-in template.
const (
	KeySize     = "size"
	KeyColor    = "color"
	KeySide     = "side"
	KeyDistance = "distance"
)

// LabelStyle controls how the date/time label is drawn.
type LabelStyle struct {
	// Size is the font size in pixels.
	Size int

	// Color is an HTML hex triplet such as "#ffffff".
	Color string

	// Side places the label relative to the object.
	Side Side

	// Distance is the label offset in pixels from the
	// object's centre.
	Distance int
}

// DefaultLabelStyle returns the style used for every key
// the caller does not override.
func DefaultLabelStyle() LabelStyle {
	return LabelStyle{
		Size:     36,
		Color:    "#ffffff",
		Side:     SideNorth,
		Distance: 250,
	}
}

// Mapping returns the style as a substitution map.
func (ls LabelStyle) Mapping() map[string]any {
	return map[string]any{
		KeySize:     ls.Size,
		KeyColor:    ls.Color,
		KeySide:     string(ls.Side),
		KeyDistance: ls.Distance,
	}
}

// MergeMappings merges layers in order into a new map.
// A key present in a later layer replaces the value from
// any earlier one. The layers are left untouched.
func MergeMappings(layers ...map[string]any) map[string]any {
	size := 0
	for _, la := range layers {
		size += len(la)
	}

	merged := make(map[string]any, size)

	for _, la := range layers {
		for key, val := range la {
			merged[key] = val
		}
	}

	return merged
}
