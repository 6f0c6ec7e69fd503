package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	rperrors "github.com/staragarcia/routeplanner/pkg/errors"
	"github.com/staragarcia/routeplanner/pkg/roadmap"
)

const locationsCSV = `Location,Id,Code,Parking
Avenida,1,AV,0
Baixa,2,BX,1
Campanha,3,CP,0
`

const distancesCSV = `Location1,Location2,Driving,Walking
AV,BX,4,10
BX,CP,X,3
AV,CP,9,X
`

func TestReadLocations(t *testing.T) {
	g := roadmap.New[int]()
	if err := ReadLocations(strings.NewReader(locationsCSV), g); err != nil {
		t.Fatalf("ReadLocations: %v", err)
	}
	if g.VertexCount() != 3 {
		t.Fatalf("VertexCount() = %d, want 3", g.VertexCount())
	}
	v, ok := g.VertexByCode("BX")
	if !ok {
		t.Fatal("VertexByCode(BX) not found")
	}
	if v.ID != 2 || v.Name != "Baixa" || !v.Parking {
		t.Errorf("vertex = %+v, want {2 Baixa BX true}", *v)
	}
	if g.ParkingCount() != 1 {
		t.Errorf("ParkingCount() = %d, want 1", g.ParkingCount())
	}
}

func TestReadLocationsWithoutHeader(t *testing.T) {
	g := roadmap.New[int]()
	if err := ReadLocations(strings.NewReader("Avenida,1,AV,1\n"), g); err != nil {
		t.Fatalf("ReadLocations: %v", err)
	}
	if !g.IsParking(1) {
		t.Error("IsParking(1) = false, want true")
	}
}

func TestReadLocationsErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad id after header", "Location,Id,Code,Parking\nX,abc,XX,0\n"},
		{"duplicate id", "A,1,AA,0\nB,1,BB,0\n"},
		{"duplicate code", "A,1,AA,0\nB,2,AA,0\n"},
		{"empty code", "A,1,,0\n"},
		{"too few columns", "A,1,AA\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ReadLocations(strings.NewReader(tt.input), roadmap.New[int]())
			if !rperrors.Is(err, rperrors.ErrCodeInvalidDataset) {
				t.Errorf("ReadLocations() = %v, want %s", err, rperrors.ErrCodeInvalidDataset)
			}
		})
	}
}

func TestReadDistances(t *testing.T) {
	g := roadmap.New[int]()
	if err := ReadLocations(strings.NewReader(locationsCSV), g); err != nil {
		t.Fatalf("ReadLocations: %v", err)
	}
	if err := ReadDistances(strings.NewReader(distancesCSV), g); err != nil {
		t.Fatalf("ReadDistances: %v", err)
	}
	if g.EdgeCount() != 6 {
		t.Fatalf("EdgeCount() = %d, want 6", g.EdgeCount())
	}

	for _, e := range g.Outgoing(2) {
		if e.To != 3 {
			continue
		}
		if e.Traversable(roadmap.Driving) {
			t.Errorf("BX->CP driving = %d, want Inf", e.Driving)
		}
		if e.Walking != 3 {
			t.Errorf("BX->CP walking = %d, want 3", e.Walking)
		}
	}
	for _, e := range g.Incoming(1) {
		if e.From == 2 && (e.Driving != 4 || e.Walking != 10) {
			t.Errorf("BX->AV = %+v, want driving 4 walking 10", *e)
		}
	}
}

func TestReadDistancesUnknownCode(t *testing.T) {
	g := roadmap.New[int]()
	_ = ReadLocations(strings.NewReader(locationsCSV), g)

	err := ReadDistances(strings.NewReader("AV,BX,1,1\nAV,ZZ,1,1\n"), g)
	if !rperrors.Is(err, rperrors.ErrCodeInvalidDataset) {
		t.Errorf("ReadDistances() = %v, want %s", err, rperrors.ErrCodeInvalidDataset)
	}
}

func TestParseWeight(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"12", 12, false},
		{" 7 ", 7, false},
		{"0", 0, false},
		{"X", roadmap.Inf, false},
		{"", roadmap.Inf, false},
		{"n/a", roadmap.Inf, false},
		{"-3", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeight(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeight(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseWeight(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatWeight(t *testing.T) {
	if got := FormatWeight(roadmap.Inf); got != "X" {
		t.Errorf("FormatWeight(Inf) = %q, want X", got)
	}
	if got := FormatWeight(42); got != "42" {
		t.Errorf("FormatWeight(42) = %q, want 42", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	locs := filepath.Join(dir, "Locations.csv")
	dists := filepath.Join(dir, "Distances.csv")
	if err := os.WriteFile(locs, []byte(locationsCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dists, []byte(distancesCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := Load(locs, dists)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g.VertexCount() != 3 || g.EdgeCount() != 6 {
		t.Errorf("graph = %d vertices %d edges, want 3 and 6", g.VertexCount(), g.EdgeCount())
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "nope.csv"), filepath.Join(dir, "nope2.csv"))
	if !rperrors.Is(err, rperrors.ErrCodeFileNotFound) {
		t.Errorf("Load() = %v, want %s", err, rperrors.ErrCodeFileNotFound)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	_, err := Load("", "")
	if !rperrors.Is(err, rperrors.ErrCodeInvalidPath) {
		t.Errorf("Load() = %v, want %s", err, rperrors.ErrCodeInvalidPath)
	}
}

// mapFetcher serves URLs from memory.
type mapFetcher map[string]string

func (m mapFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	body, ok := m[url]
	if !ok {
		return nil, rperrors.New(rperrors.ErrCodeFileNotFound, "dataset %s not found", url)
	}
	return []byte(body), nil
}

func TestLoadFromURLs(t *testing.T) {
	fetch := mapFetcher{
		"https://maps.example/Locations.csv": locationsCSV,
		"https://maps.example/Distances.csv": distancesCSV,
	}

	g, err := LoadFrom(context.Background(), fetch, "https://maps.example/Locations.csv", "https://maps.example/Distances.csv")
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if g.VertexCount() != 3 || g.EdgeCount() != 6 {
		t.Errorf("graph = %d vertices %d edges, want 3 and 6", g.VertexCount(), g.EdgeCount())
	}

	_, err = LoadFrom(context.Background(), fetch, "https://maps.example/Locations.csv", "https://maps.example/missing.csv")
	if !rperrors.Is(err, rperrors.ErrCodeFileNotFound) {
		t.Errorf("LoadFrom() = %v, want %s", err, rperrors.ErrCodeFileNotFound)
	}
}

func TestLoadFromWithoutFetcherTreatsURLAsPath(t *testing.T) {
	_, err := LoadFrom(context.Background(), nil, "https://maps.example/Locations.csv", "x")
	if !rperrors.Is(err, rperrors.ErrCodeFileNotFound) {
		t.Errorf("LoadFrom() = %v, want %s", err, rperrors.ErrCodeFileNotFound)
	}
}
