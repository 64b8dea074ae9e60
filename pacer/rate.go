package pacer

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse parses a frame rate string: an integer ("30"), a rational
// ("30000/1001"), a decimal ("29.97"), or one of the named rates "ntsc"
// and "pal".
func Parse(s string) (Rate, error) {
	switch strings.ToLower(s) {
	case "ntsc":
		return NTSC, nil
	case "pal":
		return Rate{Num: 25, Den: 1}, nil
	}

	if numStr, denStr, ok := strings.Cut(s, "/"); ok {
		num, err1 := strconv.Atoi(numStr)
		den, err2 := strconv.Atoi(denStr)
		if err1 != nil || err2 != nil || num <= 0 || den <= 0 {
			return Rate{}, fmt.Errorf("pacer: invalid frame rate %q", s)
		}
		return Rate{Num: num, Den: den}, nil
	}

	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f <= 0 {
			return Rate{}, fmt.Errorf("pacer: invalid frame rate %q", s)
		}
		return Rate{Num: int(f*1000 + 0.5), Den: 1000}, nil
	}

	num, err := strconv.Atoi(s)
	if err != nil || num <= 0 {
		return Rate{}, fmt.Errorf("pacer: invalid frame rate %q", s)
	}
	return Rate{Num: num, Den: 1}, nil
}

// String formats the rate as "Num/Den".
func (r Rate) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}
