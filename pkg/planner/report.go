package planner

import (
	"github.com/staragarcia/routeplanner/pkg/route"
)

// Route is one path in a report. Driving routes only fill Path and Cost;
// park-and-walk routes also fill the parking location and both legs.
type Route struct {
	Path        []int `json:"path"`
	Cost        int64 `json:"cost"`
	Parking     *int  `json:"parking,omitempty"`
	DrivingPath []int `json:"driving_path,omitempty"`
	WalkingPath []int `json:"walking_path,omitempty"`
	DrivingTime *int64 `json:"driving_time,omitempty"`
	WalkingTime *int64 `json:"walking_time,omitempty"`
}

func drivingRoute(r route.Route[int]) *Route {
	return &Route{Path: r.Path, Cost: r.Cost}
}

func hybridRoute(h route.HybridRoute[int]) *Route {
	parking, driving, walking := h.Parking, h.Driving, h.Walking
	return &Route{
		Path:        h.Path,
		Cost:        h.Total(),
		Parking:     &parking,
		DrivingPath: h.DrivingPath(),
		WalkingPath: h.WalkingPath(),
		DrivingTime: &driving,
		WalkingTime: &walking,
	}
}

// Hybrid reports whether r is a park-and-walk route.
func (r *Route) Hybrid() bool { return r != nil && r.Parking != nil }

// Times returns the driving and walking legs' costs. Both are zero for a
// route that is not park-and-walk.
func (r *Route) Times() (driving, walking int64) {
	if !r.Hybrid() {
		return 0, 0
	}
	if r.DrivingTime != nil {
		driving = *r.DrivingTime
	}
	if r.WalkingTime != nil {
		walking = *r.WalkingTime
	}
	return driving, walking
}

// Report is the answer to a Request.
type Report struct {
	ID          string `json:"id"`
	Mode        Mode   `json:"mode"`
	Source      int    `json:"source"`
	Destination int    `json:"destination"`

	// Restricted is set for driving requests with avoid lists or an include
	// location. Such requests have no alternative.
	Restricted bool `json:"restricted,omitempty"`

	Best        *Route `json:"best"`
	Alternative *Route `json:"alternative,omitempty"`

	// NoAlternative is set when an alternative was looked for but none
	// exists.
	NoAlternative bool `json:"no_alternative,omitempty"`

	// Relaxed is set when the park-and-walk constraints had to be relaxed.
	// Stage names the relaxation step that succeeded.
	Relaxed bool   `json:"relaxed,omitempty"`
	Stage   string `json:"stage,omitempty"`
	Message string `json:"message,omitempty"`
}
