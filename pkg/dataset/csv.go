package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	rperrors "github.com/staragarcia/routeplanner/pkg/errors"
	"github.com/staragarcia/routeplanner/pkg/httputil"
	"github.com/staragarcia/routeplanner/pkg/roadmap"
)

// Fetcher downloads remote dataset files. *httputil.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Load reads a locations file and a distances file into a new graph.
func Load(locationsPath, distancesPath string) (*roadmap.Graph[int], error) {
	return LoadFrom(context.Background(), nil, locationsPath, distancesPath)
}

// LoadFrom is like Load, but http and https names are downloaded with fetch.
func LoadFrom(ctx context.Context, fetch Fetcher, locations, distances string) (*roadmap.Graph[int], error) {
	g := roadmap.New[int]()

	if err := loadFile(ctx, fetch, locations, func(r io.Reader) error { return ReadLocations(r, g) }); err != nil {
		return nil, err
	}
	if err := loadFile(ctx, fetch, distances, func(r io.Reader) error { return ReadDistances(r, g) }); err != nil {
		return nil, err
	}
	return g, nil
}

func loadFile(ctx context.Context, fetch Fetcher, name string, read func(io.Reader) error) error {
	r, err := open(ctx, fetch, name)
	if err != nil {
		return err
	}
	defer r.Close()

	if err := read(r); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// open returns a reader for a local path or, when fetch is set, a URL.
func open(ctx context.Context, fetch Fetcher, name string) (io.ReadCloser, error) {
	if fetch != nil && httputil.IsURL(name) {
		data, err := fetch.Fetch(ctx, name)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	}

	if err := rperrors.ValidateFilePath(name, false); err != nil {
		return nil, err
	}
	f, err := os.Open(name)
	if errors.Is(err, os.ErrNotExist) {
		return nil, rperrors.Wrap(rperrors.ErrCodeFileNotFound, err, "dataset file %s", name)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return f, nil
}

// ReadLocations adds one vertex per row of a Location,Id,Code,Parking file
// to g. A header row is detected by a non-numeric Id column and skipped.
func ReadLocations(r io.Reader, g *roadmap.Graph[int]) error {
	return eachRecord(r, func(line int, rec []string) error {
		id, err := strconv.Atoi(rec[1])
		if err != nil {
			if line == 1 {
				return nil
			}
			return rperrors.New(rperrors.ErrCodeInvalidDataset, "line %d: invalid location id %q", line, rec[1])
		}
		if err := rperrors.ValidateLocationCode(rec[2]); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}

		v := roadmap.Vertex[int]{
			ID:      id,
			Name:    rec[0],
			Code:    rec[2],
			Parking: parseFlag(rec[3]),
		}
		if err := g.AddVertex(v); err != nil {
			return rperrors.Wrap(rperrors.ErrCodeInvalidDataset, err, "line %d: location %d (%s)", line, id, v.Code)
		}
		return nil
	})
}

// ReadDistances adds one two-way road per row of a
// Location1,Location2,Driving,Walking file to g. Locations are referenced by
// code and must already be in g. A header row is detected by its first
// column not naming a known code and skipped.
func ReadDistances(r io.Reader, g *roadmap.Graph[int]) error {
	return eachRecord(r, func(line int, rec []string) error {
		from, ok := g.VertexByCode(rec[0])
		if !ok {
			if line == 1 {
				return nil
			}
			return rperrors.New(rperrors.ErrCodeInvalidDataset, "line %d: unknown location code %q", line, rec[0])
		}
		to, ok := g.VertexByCode(rec[1])
		if !ok {
			return rperrors.New(rperrors.ErrCodeInvalidDataset, "line %d: unknown location code %q", line, rec[1])
		}

		driving, err := ParseWeight(rec[2])
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		walking, err := ParseWeight(rec[3])
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}

		if err := g.AddRoad(from.ID, to.ID, driving, walking); err != nil {
			return rperrors.Wrap(rperrors.ErrCodeInvalidDataset, err, "line %d: road %s-%s", line, from.Code, to.Code)
		}
		return nil
	})
}

// ParseWeight converts a weight column to a cost. "X", empty and unparsable
// tokens yield roadmap.Inf. Negative numbers are rejected.
func ParseWeight(s string) (int64, error) {
	s = strings.TrimSpace(s)
	w, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return roadmap.Inf, nil
	}
	if w < 0 {
		return 0, rperrors.New(rperrors.ErrCodeInvalidDataset, "negative weight %d", w)
	}
	return w, nil
}

// FormatWeight is the inverse of ParseWeight.
func FormatWeight(w int64) string {
	if w == roadmap.Inf {
		return "X"
	}
	return strconv.FormatInt(w, 10)
}

func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}

// eachRecord calls fn for every row with at least four columns, trimmed of
// surrounding whitespace. line is the 1-based line the row starts on.
func eachRecord(r io.Reader, fn func(line int, rec []string) error) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return rperrors.Wrap(rperrors.ErrCodeInvalidDataset, err, "malformed CSV")
		}
		line, _ := cr.FieldPos(0)
		if len(rec) < 4 {
			return rperrors.New(rperrors.ErrCodeInvalidDataset, "line %d: expected 4 columns, got %d", line, len(rec))
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		if err := fn(line, rec); err != nil {
			return err
		}
	}
}
