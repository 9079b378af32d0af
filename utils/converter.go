package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// StringToFloat64 parses a finite float, ignoring surrounding whitespace.
func StringToFloat64(str string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", str)
	}
	return v, nil
}
