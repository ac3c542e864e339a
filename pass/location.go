package pass

// Location is a geographic point at which the pass becomes relevant.
type Location struct {
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	Altitude     *float64 `json:"altitude,omitempty"`
	Distance     *float64 `json:"distance,omitempty"`
	RelevantText string   `json:"relevantText,omitempty"`
}

// Beacon is a Bluetooth beacon near which the pass becomes relevant.
type Beacon struct {
	ProximityUUID string `json:"proximityUUID"`
	Major         *int   `json:"major,omitempty"`
	Minor         *int   `json:"minor,omitempty"`
	RelevantText  string `json:"relevantText,omitempty"`
}
