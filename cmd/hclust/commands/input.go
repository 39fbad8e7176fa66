package commands

import (
	"bufio"
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

// readRows parses CSV observations, one per record. Lines starting with '#'
// are skipped, as is the first record when header is set.
func readRows(r io.Reader, header bool) (*mat.Dense, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	var (
		data []float64
		dims int
		n    int
	)
	for line := 1; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read CSV")
		}
		if header && line == 1 {
			continue
		}
		if n == 0 {
			dims = len(record)
		}
		// csv.Reader already enforces a constant field count.
		for col, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "record %d, column %d", line, col+1)
			}
			data = append(data, v)
		}
		n++
	}
	if n == 0 {
		return nil, errors.New("input contains no observations")
	}
	return mat.NewDense(n, dims, data), nil
}

// readPacked parses a packed lower-triangular dissimilarity vector. Values
// may be separated by commas, whitespace or newlines. It returns the vector
// and the number of observations it describes.
func readPacked(r io.Reader) ([]float64, int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var values []float64
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
		for _, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, 0, errors.Wrapf(err, "line %d", line)
			}
			values = append(values, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, 0, errors.Wrap(err, "failed to read dissimilarities")
	}

	n, ok := observationsFor(len(values))
	if !ok {
		return nil, 0, errors.Newf("%d values is not n*(n-1)/2 for any n", len(values))
	}
	return values, n, nil
}

// observationsFor inverts m = n*(n-1)/2.
func observationsFor(m int) (int, bool) {
	if m == 0 {
		return 0, false
	}
	n := int(math.Round((1 + math.Sqrt(1+8*float64(m))) / 2))
	return n, n*(n-1)/2 == m
}
