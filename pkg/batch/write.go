package batch

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/staragarcia/routeplanner/pkg/planner"
)

const none = "none"

// Write writes report in the batch report format.
//
// Unrestricted driving reports produce BestDrivingRoute and
// AlternativeDrivingRoute lines; restricted ones a single
// RestrictedDrivingRoute line. Park-and-walk reports produce DrivingRoute,
// ParkingNode, WalkingRoute and TotalTime lines. When there is an alternative
// or the constraints were relaxed those keys are numbered (DrivingRoute1,
// DrivingRoute2, ...) for the best route and its alternative; relaxed reports
// end with a Message line.
func Write(w io.Writer, report *planner.Report) error {
	var b strings.Builder
	field(&b, "Source", strconv.Itoa(report.Source))
	field(&b, "Destination", strconv.Itoa(report.Destination))

	switch {
	case report.Mode == planner.ModeDrivingWalking && (report.Relaxed || report.Alternative != nil):
		writeHybrid(&b, "1", report.Best)
		if report.Alternative != nil {
			writeHybrid(&b, "2", report.Alternative)
		}
		if report.Relaxed {
			field(&b, "Message", report.Message)
		}
	case report.Mode == planner.ModeDrivingWalking:
		writeHybrid(&b, "", report.Best)
	case report.Restricted:
		field(&b, "RestrictedDrivingRoute", FormatRoute(report.Best))
	default:
		field(&b, "BestDrivingRoute", FormatRoute(report.Best))
		field(&b, "AlternativeDrivingRoute", FormatRoute(report.Alternative))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteFailure writes the report lines for a request that produced err.
// Path fields are written as "none" and the error message goes to a Message
// line.
func WriteFailure(w io.Writer, req planner.Request, err error) error {
	var b strings.Builder
	field(&b, "Source", strconv.Itoa(req.Source))
	field(&b, "Destination", strconv.Itoa(req.Destination))

	mode, _ := planner.ParseMode(string(req.Mode))
	switch {
	case mode == planner.ModeDrivingWalking:
		field(&b, "DrivingRoute", none)
		field(&b, "ParkingNode", none)
		field(&b, "WalkingRoute", none)
		field(&b, "TotalTime", none)
	case req.Restricted():
		field(&b, "RestrictedDrivingRoute", none)
	default:
		field(&b, "BestDrivingRoute", none)
		field(&b, "AlternativeDrivingRoute", none)
	}
	field(&b, "Message", planner.ErrorMessage(err))

	_, werr := io.WriteString(w, b.String())
	return werr
}

func writeHybrid(b *strings.Builder, suffix string, r *planner.Route) {
	if r == nil || r.Parking == nil {
		field(b, "DrivingRoute"+suffix, none)
		field(b, "ParkingNode"+suffix, none)
		field(b, "WalkingRoute"+suffix, none)
		field(b, "TotalTime"+suffix, none)
		return
	}
	driving, walking := r.Times()
	field(b, "DrivingRoute"+suffix, FormatPath(r.DrivingPath, driving))
	field(b, "ParkingNode"+suffix, strconv.Itoa(*r.Parking))
	field(b, "WalkingRoute"+suffix, FormatPath(r.WalkingPath, walking))
	field(b, "TotalTime"+suffix, strconv.FormatInt(r.Cost, 10))
}

func field(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "%s:%s\n", key, value)
}

// FormatRoute formats r as "1,2,3(19)", or "none" when r is nil.
func FormatRoute(r *planner.Route) string {
	if r == nil {
		return none
	}
	return FormatPath(r.Path, r.Cost)
}

// FormatPath formats a path and its cost as "1,2,3(19)". An empty path is
// "none".
func FormatPath(path []int, cost int64) string {
	if len(path) == 0 {
		return none
	}
	ids := make([]string, len(path))
	for i, id := range path {
		ids[i] = strconv.Itoa(id)
	}
	return fmt.Sprintf("%s(%d)", strings.Join(ids, ","), cost)
}
