package utils

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadTrace reads a multi-axis sensor capture from a CSV file. The first
// record is a header; every following record holds one sample per axis as a
// float reading, which is scaled to fixed point. The result is one slice per
// axis (column-major), ready for proving.
func LoadTrace(filename string) ([][]int64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("trace has no samples")
	}

	axes := make([][]int64, len(records[0]))
	for i, record := range records {
		if i == 0 {
			continue
		}
		if len(record) != len(axes) {
			return nil, fmt.Errorf("line %d has %d columns, header has %d", i+1, len(record), len(axes))
		}
		for j, field := range record {
			reading, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid reading at line %d axis %d: %w", i+1, j, err)
			}
			axes[j] = append(axes[j], FloatToFixed(reading))
		}
	}
	return axes, nil
}

// LoadModelParameters reads a linear model from a text file: a line
// "threshold: <int>" followed by one weight per line.
func LoadModelParameters(filename string) (weights []int64, threshold int64, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open model file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if first {
			first = false
			value, ok := strings.CutPrefix(line, "threshold:")
			if !ok {
				return nil, 0, fmt.Errorf("model file must start with a threshold line")
			}
			threshold, err = strconv.ParseInt(strings.TrimSpace(value), 10, 64)
			if err != nil {
				return nil, 0, fmt.Errorf("invalid threshold: %w", err)
			}
			continue
		}
		w, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid weight %q: %w", line, err)
		}
		weights = append(weights, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read model file: %w", err)
	}
	if first {
		return nil, 0, fmt.Errorf("model file is empty")
	}
	return weights, threshold, nil
}
