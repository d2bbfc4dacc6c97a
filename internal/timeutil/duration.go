// Package timeutil parses the free-text duration and time inputs accepted on
// the command line into canonical values.
package timeutil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Unit is a duration unit suffix.
type Unit string

const (
	UnitMinute   Unit = "m"
	UnitHour     Unit = "h"
	UnitWorkday  Unit = "d"
	UnitWorkweek Unit = "w"
)

// Fixed per-unit second factors. Workday and workweek use the 8h/40h
// convention rather than calendar time.
var secondsPerUnit = map[Unit]float64{
	UnitMinute:   60,
	UnitHour:     3600,
	UnitWorkday:  28800,
	UnitWorkweek: 144000,
}

var durationPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)([hmdw])$`)

// Duration is a parsed (value, unit) pair.
type Duration struct {
	Value float64
	Unit  Unit
}

// Seconds converts the duration to whole seconds.
func (d Duration) Seconds() int {
	return DurationToSeconds(d.Value, d.Unit)
}

// ParseDuration parses strings like "1.5h", "45m", "2d". The unit suffix is
// case-sensitive and must follow the number without whitespace. Returns
// ok=false for anything that does not match; the caller decides how to
// report invalid input.
func ParseDuration(text string) (Duration, bool) {
	match := durationPattern.FindStringSubmatch(text)
	if match == nil {
		return Duration{}, false
	}
	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return Duration{}, false
	}
	return Duration{Value: value, Unit: Unit(match[2])}, true
}

// DurationToSeconds converts a parsed duration to whole seconds using the
// fixed per-unit factors. An unknown unit is a contract violation, not a
// runtime condition: ParseDuration only produces known units.
func DurationToSeconds(value float64, unit Unit) int {
	factor, ok := secondsPerUnit[unit]
	if !ok {
		panic(fmt.Sprintf("timeutil: unknown duration unit %q", unit))
	}
	return int(math.Round(value * factor))
}
