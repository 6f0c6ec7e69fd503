package batch

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	rperrors "github.com/staragarcia/routeplanner/pkg/errors"
	"github.com/staragarcia/routeplanner/pkg/planner"
	"github.com/staragarcia/routeplanner/pkg/route"
)

// Parse reads every request block from r.
func Parse(r io.Reader) ([]planner.Request, error) {
	var (
		out   []planner.Request
		cur   planner.Request
		seen  = map[string]bool{}
		line  int
		sc    = bufio.NewScanner(r)
		flush = func() error {
			if len(seen) == 0 {
				return nil
			}
			for _, key := range []string{"Mode", "Source", "Destination"} {
				if !seen[key] {
					return rperrors.New(rperrors.ErrCodeInvalidInput, "line %d: request is missing %s", line, key)
				}
			}
			out = append(out, cur)
			cur, seen = planner.Request{}, map[string]bool{}
			return nil
		}
	)

	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		if strings.HasPrefix(text, "#") {
			continue
		}

		key, value, ok := strings.Cut(text, ":")
		if !ok {
			return nil, rperrors.New(rperrors.ErrCodeInvalidInput, "line %d: expected Key:value, got %q", line, text)
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if seen[key] {
			return nil, rperrors.New(rperrors.ErrCodeInvalidInput, "line %d: duplicate key %s", line, key)
		}
		seen[key] = true

		if err := setField(&cur, key, value); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, rperrors.New(rperrors.ErrCodeInvalidInput, "no requests found")
	}
	return out, nil
}

func setField(req *planner.Request, key, value string) error {
	var err error
	switch key {
	case "Mode":
		req.Mode, err = planner.ParseMode(value)
	case "Source":
		req.Source, err = parseID("Source", value)
	case "Destination":
		req.Destination, err = parseID("Destination", value)
	case "AvoidNodes":
		req.AvoidNodes, err = ParseNodeList(value)
	case "AvoidSegments":
		req.AvoidSegments, err = ParseSegmentList(value)
	case "IncludeNode":
		if value == "" {
			return nil
		}
		var id int
		if id, err = strconv.Atoi(value); err != nil {
			return rperrors.New(rperrors.ErrCodeInvalidIncludeNode, "IncludeNode: %q is not a location id", value)
		}
		req.IncludeNode = &id
	case "MaxWalkTime":
		if value == "" {
			return nil
		}
		var minutes int64
		if minutes, err = strconv.ParseInt(value, 10, 64); err != nil {
			return rperrors.New(rperrors.ErrCodeInvalidInput, "MaxWalkTime: %q is not a number", value)
		}
		req.MaxWalkTime = &minutes
	default:
		return rperrors.New(rperrors.ErrCodeInvalidInput, "unknown key %q", key)
	}
	return err
}

func parseID(key, value string) (int, error) {
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, rperrors.New(rperrors.ErrCodeInvalidInput, "%s: %q is not a location id", key, value)
	}
	return id, nil
}

// ParseNodeList parses a comma separated list of location ids such as
// "1,2,3". An empty string yields an empty list.
func ParseNodeList(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, rperrors.New(rperrors.ErrCodeInvalidAvoidList, "invalid location id %q in %q", p, s)
		}
		out = append(out, id)
	}
	return out, nil
}

// ParseSegmentList parses a list of directed segments such as
// "(1,2),(3,4)". An empty string yields an empty list.
func ParseSegmentList(s string) ([]route.Segment[int], error) {
	rest := strings.TrimSpace(s)
	var out []route.Segment[int]
	for rest != "" {
		if !strings.HasPrefix(rest, "(") {
			return nil, rperrors.New(rperrors.ErrCodeInvalidAvoidList, "expected '(' in segment list %q", s)
		}
		body, tail, ok := strings.Cut(rest[1:], ")")
		if !ok {
			return nil, rperrors.New(rperrors.ErrCodeInvalidAvoidList, "unterminated segment in %q", s)
		}
		ids, err := ParseNodeList(body)
		if err != nil || len(ids) != 2 {
			return nil, rperrors.New(rperrors.ErrCodeInvalidAvoidList, "segment (%s) must name exactly two location ids", body)
		}
		out = append(out, route.Segment[int]{From: ids[0], To: ids[1]})

		rest = strings.TrimSpace(tail)
		if strings.HasPrefix(rest, ",") {
			rest = strings.TrimSpace(rest[1:])
			if rest == "" {
				return nil, rperrors.New(rperrors.ErrCodeInvalidAvoidList, "trailing comma in %q", s)
			}
		}
	}
	return out, nil
}
