package shared

import "fmt"

// TravelMode selects how a fleet moves between sectors
type TravelMode int

const (
	// TravelModeAuto lets the action layer choose warp or subwarp
	TravelModeAuto TravelMode = iota
	TravelModeWarp
	TravelModeSubwarp
)

var travelModeNames = map[TravelMode]string{
	TravelModeAuto:    "auto",
	TravelModeWarp:    "warp",
	TravelModeSubwarp: "subwarp",
}

// Name returns the mode name
func (m TravelMode) Name() string {
	if name, ok := travelModeNames[m]; ok {
		return name
	}
	return "unknown"
}

func (m TravelMode) String() string {
	return m.Name()
}

// ParseTravelMode parses a travel mode name. The empty string maps to auto.
func ParseTravelMode(name string) (TravelMode, error) {
	if name == "" {
		return TravelModeAuto, nil
	}
	for mode, modeName := range travelModeNames {
		if modeName == name {
			return mode, nil
		}
	}
	return TravelModeAuto, fmt.Errorf("invalid travel mode: %s", name)
}
