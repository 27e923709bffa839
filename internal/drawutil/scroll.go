// Package drawutil contains draw related utility functions.
package drawutil

import (
	"os"
	"strconv"
	"sync"
)

var (
	scrollSizeOnce sync.Once
	scrollSize     setting
)

// setting is a parsed $mousescrollsize.
type setting struct {
	units   int     // constant number of units, when > 0
	percent float64 // percentage of the view height, when > 0
}

// ScrollStep computes the number of pixels a view that is height pixels
// tall should move for one click of the scroll wheel. A unit is the
// view's natural row size in pixels.
//
// The default increment is one unit. This default can be overridden by
// setting the $mousescrollsize environment variable to an integer,
// which specifies a constant number of units, or to a real number
// followed by a percent character, indicating that the increment should
// be a percentage of the view height. For example, setting
// $mousescrollsize to 50% causes a half-view scroll increment.
func ScrollStep(height, unit int) int {
	return scrollStep(&scrollSizeOnce, height, unit)
}

type doer interface {
	Do(func())
}

func scrollStep(once doer, height, unit int) int {
	once.Do(func() {
		scrollSize = parseSetting(os.Getenv("mousescrollsize"))
	})
	if unit < 1 {
		unit = 1
	}
	if scrollSize.units > 0 {
		return scrollSize.units * unit
	}
	if scrollSize.percent > 0 {
		if n := int(scrollSize.percent * float64(height) / 100.0); n > 0 {
			return n
		}
	}
	return unit
}

func parseSetting(s string) setting {
	if s == "" {
		return setting{}
	}
	if s[len(s)-1] == '%' {
		pcnt, err := strconv.ParseFloat(s[:len(s)-1], 64)
		if err != nil || pcnt <= 0 {
			return setting{}
		}
		return setting{percent: min(pcnt, 100)}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return setting{}
	}
	return setting{units: n}
}
