package render

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"

	rperrors "github.com/staragarcia/routeplanner/pkg/errors"
)

// converter is the external SVG conversion tool.
const converter = "rsvg-convert"

// ToPDF converts SVG bytes to PDF.
func ToPDF(svg []byte) ([]byte, error) {
	return convertSVG(svg, FormatPDF)
}

// ToPNG converts SVG bytes to PNG, scaled by zoom.
func ToPNG(svg []byte, zoom float64) ([]byte, error) {
	return convertSVG(svg, FormatPNG, "--zoom", strconv.FormatFloat(zoom, 'f', 2, 64))
}

// convertSVG pipes svg through the converter. A missing converter is an
// UNSUPPORTED error so callers can fall back to SVG output.
func convertSVG(svg []byte, format string, args ...string) ([]byte, error) {
	bin, err := exec.LookPath(converter)
	if err != nil {
		return nil, rperrors.Wrap(rperrors.ErrCodeUnsupported, err,
			"%s output needs %s (brew install librsvg, or apt install librsvg2-bin)", format, converter)
	}

	cmd := exec.Command(bin, append([]string{"--format", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", converter, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return stdout.Bytes(), nil
}
