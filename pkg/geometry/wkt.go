// Package geometry parses and normalizes the well-known-text geometries
// stored on plots. Only syntactic well-formedness is checked: rings must be
// closed and long enough, but self-intersection and similar semantic issues
// are out of scope here.
package geometry

import (
	"fmt"
	"strconv"
	"strings"

	"odisea/pkg/apperr"
)

// SRID is the fixed spatial reference for all stored geometries. It is an
// internal constant, never accepted or exposed over the wire.
const SRID = 4326

type geomType int

const (
	typePoint geomType = iota
	typeLineString
	typePolygon
	typeMultiPolygon
)

var geomKeywords = map[string]geomType{
	"POINT":        typePoint,
	"LINESTRING":   typeLineString,
	"POLYGON":      typePolygon,
	"MULTIPOLYGON": typeMultiPolygon,
}

func invalid(format string, args ...any) error {
	return apperr.New(apperr.ValidationError, "invalid geometry: "+fmt.Sprintf(format, args...))
}

// Normalize parses a WKT string and returns its canonical form: upper-case
// keyword, single spaces, shortest float representation. An optional
// "SRID=4326;" EWKT prefix is accepted and stripped; any other SRID is
// rejected.
func Normalize(wkt string) (string, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return "", invalid("empty input")
	}

	if rest, ok := strings.CutPrefix(strings.ToUpper(s), "SRID="); ok {
		semi := strings.Index(rest, ";")
		if semi < 0 {
			return "", invalid("malformed SRID prefix")
		}
		srid, err := strconv.Atoi(rest[:semi])
		if err != nil {
			return "", invalid("malformed SRID prefix")
		}
		if srid != SRID {
			return "", invalid("unsupported SRID %d", srid)
		}
		s = strings.TrimSpace(s[len(s)-len(rest)+semi+1:])
	}

	keyword, body, err := splitKeyword(s)
	if err != nil {
		return "", err
	}
	gt, ok := geomKeywords[keyword]
	if !ok {
		return "", invalid("unsupported geometry type %q", keyword)
	}

	if strings.EqualFold(body, "EMPTY") {
		return keyword + " EMPTY", nil
	}

	p := &parser{input: body}
	var out string
	switch gt {
	case typePoint:
		out, err = p.parsePoint()
	case typeLineString:
		out, err = p.parseCoordList(2)
	case typePolygon:
		out, err = p.parsePolygon()
	case typeMultiPolygon:
		out, err = p.parseMultiPolygon()
	}
	if err != nil {
		return "", err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return "", invalid("trailing input after geometry body")
	}
	return keyword + " " + out, nil
}

func splitKeyword(s string) (keyword, body string, err error) {
	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	if i == 0 {
		return "", "", invalid("missing geometry keyword")
	}
	return strings.ToUpper(s[:i]), strings.TrimSpace(s[i:]), nil
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

type parser struct {
	input string
	pos   int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t' || p.input[p.pos] == '\n' || p.input[p.pos] == '\r') {
		p.pos++
	}
}

func (p *parser) expect(b byte) error {
	p.skipSpace()
	if p.pos >= len(p.input) || p.input[p.pos] != b {
		return invalid("expected %q at position %d", string(b), p.pos)
	}
	p.pos++
	return nil
}

func (p *parser) peek() (byte, bool) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *parser) parseNumber() (string, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) {
		b := p.input[p.pos]
		if (b >= '0' && b <= '9') || b == '.' || b == '-' || b == '+' || b == 'e' || b == 'E' {
			p.pos++
			continue
		}
		break
	}
	if start == p.pos {
		return "", invalid("expected number at position %d", p.pos)
	}
	f, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return "", invalid("malformed number %q", p.input[start:p.pos])
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

// parseCoord reads one "x y" pair.
func (p *parser) parseCoord() (string, error) {
	x, err := p.parseNumber()
	if err != nil {
		return "", err
	}
	y, err := p.parseNumber()
	if err != nil {
		return "", err
	}
	return x + " " + y, nil
}

// parsePoint reads "(x y)".
func (p *parser) parsePoint() (string, error) {
	if err := p.expect('('); err != nil {
		return "", err
	}
	c, err := p.parseCoord()
	if err != nil {
		return "", err
	}
	if err := p.expect(')'); err != nil {
		return "", err
	}
	return "(" + c + ")", nil
}

// parseCoordList reads "(x y, x y, ...)" with at least min coordinates.
func (p *parser) parseCoordList(min int) (string, error) {
	if err := p.expect('('); err != nil {
		return "", err
	}
	var coords []string
	for {
		c, err := p.parseCoord()
		if err != nil {
			return "", err
		}
		coords = append(coords, c)
		b, ok := p.peek()
		if !ok {
			return "", invalid("unterminated coordinate list")
		}
		if b == ',' {
			p.pos++
			continue
		}
		break
	}
	if err := p.expect(')'); err != nil {
		return "", err
	}
	if len(coords) < min {
		return "", invalid("coordinate list needs at least %d points, got %d", min, len(coords))
	}
	return "(" + strings.Join(coords, ", ") + ")", nil
}

// parseRing reads one polygon ring: at least 4 points, first == last.
func (p *parser) parseRing() (string, error) {
	start := p.pos
	out, err := p.parseCoordList(4)
	if err != nil {
		return "", err
	}
	inner := out[1 : len(out)-1]
	coords := strings.Split(inner, ", ")
	if coords[0] != coords[len(coords)-1] {
		return "", invalid("ring starting at position %d is not closed", start)
	}
	return out, nil
}

// parsePolygon reads "((ring), (ring), ...)".
func (p *parser) parsePolygon() (string, error) {
	if err := p.expect('('); err != nil {
		return "", err
	}
	var rings []string
	for {
		r, err := p.parseRing()
		if err != nil {
			return "", err
		}
		rings = append(rings, r)
		b, ok := p.peek()
		if !ok {
			return "", invalid("unterminated polygon")
		}
		if b == ',' {
			p.pos++
			continue
		}
		break
	}
	if err := p.expect(')'); err != nil {
		return "", err
	}
	return "(" + strings.Join(rings, ", ") + ")", nil
}

// parseMultiPolygon reads "(((ring)), ((ring)), ...)".
func (p *parser) parseMultiPolygon() (string, error) {
	if err := p.expect('('); err != nil {
		return "", err
	}
	var polys []string
	for {
		poly, err := p.parsePolygon()
		if err != nil {
			return "", err
		}
		polys = append(polys, poly)
		b, ok := p.peek()
		if !ok {
			return "", invalid("unterminated multipolygon")
		}
		if b == ',' {
			p.pos++
			continue
		}
		break
	}
	if err := p.expect(')'); err != nil {
		return "", err
	}
	return "(" + strings.Join(polys, ", ") + ")", nil
}
