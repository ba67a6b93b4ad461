package wikitext

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoCoords is returned by ParseCoords for text without a usable
// {{coord}} template.
var ErrNoCoords = errors.New("no coord data found")

var errNotDMS = errors.New("not a degree/minute/second value")

var errAngle = errors.New("too many angle components")

var coordRE = regexp.MustCompile(`(?i){{\s*coord\s*\|([^}]*)}}`)

// A Coord is a point in decimal degrees.
type Coord struct {
	Lon float64
	Lat float64
}

// ParseCoords parses the first {{coord}} template of an article as
// described in
// http://en.wikipedia.org/wiki/Wikipedia:WikiProject_Geographical_coordinates
//
// Both the decimal form ({{coord|44.1|-72.6}}) and the
// degree/minute/second form with hemisphere letters
// ({{coord|57|18|22|N|4|27|32|W}}) are understood.
func ParseCoords(text string) (Coord, error) {
	m := coordRE.FindStringSubmatch(stripNowiki(stripComments(text)))
	if m == nil {
		return Coord{}, ErrNoCoords
	}

	var parts []string
	for _, p := range strings.Split(m[1], "|") {
		p = strings.TrimSpace(p)
		// Named parameters (display=, format=, name=...) never hold
		// the position.
		if p == "" || strings.Contains(p, "=") {
			continue
		}
		parts = append(parts, p)
	}
	// Skip anything in front of the first number.
	for len(parts) > 0 {
		if _, err := strconv.ParseFloat(parts[0], 64); err == nil {
			break
		}
		parts = parts[1:]
	}

	c, err := parseDMS(parts)
	if err == errNotDMS {
		c, err = parseDecimal(parts)
	}
	if err != nil {
		return Coord{}, err
	}
	if math.Abs(c.Lat) > 90 {
		return Coord{}, fmt.Errorf("invalid latitude: %v", c.Lat)
	}
	if math.Abs(c.Lon) > 180 {
		return Coord{}, fmt.Errorf("invalid longitude: %v", c.Lon)
	}
	return c, nil
}

// hemisphere finds the first hemisphere letter.
func hemisphere(parts []string, pos, neg string) int {
	for i := 0; i < len(parts); i++ {
		if strings.EqualFold(parts[i], pos) || strings.EqualFold(parts[i], neg) {
			return i
		}
	}
	return -1
}

// angle sums up to three of degrees, minutes and seconds.
func angle(parts []string, negative bool) (float64, error) {
	switch {
	case len(parts) == 0:
		return 0, ErrNoCoords
	case len(parts) > 3:
		return 0, errAngle
	}
	rv, scale := 0.0, 1.0
	for _, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, err
		}
		rv += f / scale
		scale *= 60
	}
	if negative {
		rv = -rv
	}
	return rv, nil
}

func parseDMS(parts []string) (Coord, error) {
	i := hemisphere(parts, "N", "S")
	if i < 0 {
		return Coord{}, errNotDMS
	}
	lat, err := angle(parts[:i], strings.EqualFold(parts[i], "S"))
	if err != nil {
		return Coord{}, err
	}
	rest := parts[i+1:]
	j := hemisphere(rest, "E", "W")
	if j < 0 {
		return Coord{}, ErrNoCoords
	}
	lon, err := angle(rest[:j], strings.EqualFold(rest[j], "W"))
	if err != nil {
		return Coord{}, err
	}
	return Coord{Lat: lat, Lon: lon}, nil
}

func parseDecimal(parts []string) (c Coord, err error) {
	if len(parts) < 2 {
		return Coord{}, ErrNoCoords
	}
	if c.Lat, err = strconv.ParseFloat(parts[0], 64); err != nil {
		return Coord{}, err
	}
	if c.Lon, err = strconv.ParseFloat(parts[1], 64); err != nil {
		return Coord{}, err
	}
	return c, nil
}
