package wikitext

import (
	"math"
	"testing"
)

type testinput struct {
	input string
	lon   float64
	lat   float64
}

var testdata = []testinput{
	{"{{coord|57|18|22|N|4|27|32|W|display=title}}", -4.458889, 57.306111},
	{"{{Coord|34.1996350|-118.1746540}}", -118.1746540, 34.1996350},
	{"{{coord|51|30|N|0|7|W}}", -0.116667, 51.5},
	{"{{coord|10|S|20|E}}", 20, -10},
	{"{{coord|40.947597 |N| 72.898207 |W|region:US_type:city}}", -72.898207, 40.947597},
	{"{{coord | 45.375121 | -75.897846 | format=dms}}", -75.897846, 45.375121},
	{"{{coord|name=Somewhere|33|55|S|18|25|E}}", 18.416667, -33.916667},
}

func assertEpsilon(t *testing.T, input, field string, expected, got float64) {
	if math.Abs(got-expected) > 0.00001 {
		t.Fatalf("Expected %v for %v of %v, got %v",
			expected, field, input, got)
	}
}

func testOne(t *testing.T, ti testinput, input string) {
	geo, err := ParseCoords(input)
	if err != nil {
		t.Fatalf("Error on %v: %v", input, err)
	}
	assertEpsilon(t, input, "lon", ti.lon, geo.Lon)
	assertEpsilon(t, input, "lat", ti.lat, geo.Lat)
}

func TestCoordSimple(t *testing.T) {
	for _, ti := range testdata {
		testOne(t, ti, ti.input)
	}
}

func TestCoordWithGarbage(t *testing.T) {
	for _, ti := range testdata {
		testOne(t, ti, " some random garbage "+ti.input+" and stuff")
	}
}

func TestCoordMultiline(t *testing.T) {
	for _, ti := range testdata {
		testOne(t, ti, " some random garbage\n\nnewlines\n"+ti.input+" and stuff")
	}
}

func TestCoordFirstWins(t *testing.T) {
	ti := testdata[0]
	testOne(t, ti, ti.input+" then "+testdata[1].input)
}

func TestNoCoords(t *testing.T) {
	for _, input := range []string{
		"",
		"no templates here",
		"{{Infobox|lat=1}}",
		"<!-- {{coord|10|S|20|E}} -->",
		"<nowiki>{{coord|10|S|20|E}}</nowiki>",
		"{{coord|10}}",
		"{{coord|10|N|20}}",
	} {
		if _, err := ParseCoords(input); err != ErrNoCoords {
			t.Errorf("Expected ErrNoCoords for %q, got %v", input, err)
		}
	}
}

func TestBadCoords(t *testing.T) {
	for _, input := range []string{
		"{{coord|95|0|N|20|E}}",
		"{{coord|45|200}}",
		"{{coord|1|2|3|4|N|5|E}}",
	} {
		c, err := ParseCoords(input)
		if err == nil || err == ErrNoCoords {
			t.Errorf("Expected an error for %q, got %v (%v)", input, err, c)
		}
	}
}
