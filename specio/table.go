package specio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/stellarnet/spectra/spectrum"
)

// ReadParameterTable reads a whitespace-separated table of stellar
// parameters with columns Teff, log g, and [M/H]. Blank lines and lines
// starting with '#' are skipped; a single non-numeric header line is
// tolerated.
func ReadParameterTable(path string) ([]spectrum.Labels, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("specio: %w", err)
	}
	defer f.Close()

	var rows []spectrum.Labels

	scanner := bufio.NewScanner(f)

	line := 0
	headerSkipped := false
	for scanner.Scan() {
		line++

		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) < 3 {
			return nil, fmt.Errorf("%w: %s line %d: %d columns", ErrFormat, path, line, len(fields))
		}

		var vals [3]float64

		parsed := true
		for i := range vals {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				parsed = false
				break
			}

			vals[i] = v
		}

		if !parsed {
			if !headerSkipped && len(rows) == 0 {
				headerSkipped = true
				continue
			}

			return nil, fmt.Errorf("%w: %s line %d: non-numeric fields", ErrFormat, path, line)
		}

		rows = append(rows, spectrum.Labels{Teff: vals[0], LogG: vals[1], MH: vals[2]})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("specio: %s: %w", path, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s: no rows", ErrFormat, path)
	}

	return rows, nil
}
