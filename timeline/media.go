package timeline

import "github.com/cbsinteractive/timeline/timing"

// Marker colors
const (
	MarkerRed     = "RED"
	MarkerGreen   = "GREEN"
	MarkerBlue    = "BLUE"
	MarkerYellow  = "YELLOW"
	MarkerMagenta = "MAGENTA"
)

// Marker annotates a range of an item, in the item's internal space
type Marker struct {
	Name        string
	MarkedRange timing.Range
	Color       string
	Metadata    Metadata
}

func (m *Marker) Copy() *Marker {
	if m == nil {
		return nil
	}
	c := *m
	c.Metadata = m.Metadata.Copy()
	return &c
}

// MediaReference points a clip at its media. Resolving TargetURL is
// left to the caller.
type MediaReference struct {
	Name           string
	TargetURL      string
	AvailableRange *timing.Range
	Metadata       Metadata
}

// IsMissing reports whether the reference has nowhere to point.
func (m *MediaReference) IsMissing() bool {
	return m == nil || m.TargetURL == ""
}

func (m *MediaReference) Copy() *MediaReference {
	if m == nil {
		return nil
	}
	c := *m
	if m.AvailableRange != nil {
		r := *m.AvailableRange
		c.AvailableRange = &r
	}
	c.Metadata = m.Metadata.Copy()
	return &c
}
