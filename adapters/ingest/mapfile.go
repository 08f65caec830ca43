package ingest

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"skynull/domain/core"
	"skynull/domain/sphere"
)

// MapFile reads and writes pixelized maps as plain text: one pixel value per
// line in RING order, '#' lines ignored. The literal UNSEEN marks masked
// pixels. Maps above targetNSide are averaged down on load; maps below it are
// rejected.
type MapFile struct {
	TargetNSide int
}

func NewMapFile(targetNSide int) *MapFile {
	return &MapFile{TargetNSide: targetNSide}
}

// LoadField reads a map and returns it at the adapter's target resolution.
func (m *MapFile) LoadField(path string) (sphere.Field, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map %s: %w", path, err)
	}
	defer fh.Close()

	var f sphere.Field
	sc := bufio.NewScanner(fh)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		v, err := parsePixel(text)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", core.ErrMapFormat, line, err)
		}
		f = append(f, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read map %s: %w", path, err)
	}

	nside, err := sphere.NSideForPixels(len(f))
	if err != nil {
		return nil, err
	}
	if nside == m.TargetNSide {
		return f, nil
	}
	if nside < m.TargetNSide {
		return nil, core.NewResolutionError(nside, m.TargetNSide)
	}
	return f.Downgrade(m.TargetNSide)
}

// WriteField persists a field in the same format LoadField reads.
func (m *MapFile) WriteField(path string, f sphere.Field) error {
	nside, err := f.NSide()
	if err != nil {
		return err
	}
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create map %s: %w", path, err)
	}
	defer fh.Close()

	w := bufio.NewWriter(fh)
	fmt.Fprintf(w, "# nside=%d pixels=%d ordering=ring\n", nside, len(f))
	for i, v := range f {
		if f.Seen(i) {
			fmt.Fprintf(w, "%.10g\n", v)
		} else {
			fmt.Fprintln(w, "UNSEEN")
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write map %s: %w", path, err)
	}
	return nil
}

func parsePixel(text string) (float64, error) {
	if strings.EqualFold(text, "UNSEEN") {
		return sphere.Unseen, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, err
	}
	return v, nil
}
