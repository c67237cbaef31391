// Package nrql parses the forecast horizon out of a NRQL predictLinear query.
//
// The accepted call grammar is:
//
//	call     = "predictLinear" "(" argument "," integer unit ")"
//	argument = text up to the first top-level comma; parentheses and quotes nest
//	unit     = "day" | "days" | "week" | "weeks"
//
// The function name and unit are case-insensitive and whitespace is allowed
// between tokens.
package nrql

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FunctionName is the NRQL linear regression function.
const FunctionName = "predictLinear"

// ErrNoPredictLinear indicates the query has no predictLinear call.
var ErrNoPredictLinear = errors.New("no predictLinear call")

// ErrSyntax indicates a malformed predictLinear call.
var ErrSyntax = errors.New("syntax error")

// ErrUnsupportedUnit indicates a time unit that is not a whole number of days.
var ErrUnsupportedUnit = errors.New("unsupported time unit")

// ParseError reports where parsing failed.
type ParseError struct {
	Pos int // byte offset into the query
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("nrql: %v at offset %d: %s", e.Err, e.Pos, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Unit is a predictLinear time unit.
type Unit string

const (
	UnitDay  Unit = "day"
	UnitWeek Unit = "week"
)

// PredictLinear is a parsed predictLinear call.
type PredictLinear struct {
	// Function is the function name as written in the query.
	Function string
	// Metric is the first argument, trimmed.
	Metric string
	// Amount is the integer part of the time interval.
	Amount int
	// Unit is the normalized time unit.
	Unit Unit
}

// Days returns the horizon in days.
func (p PredictLinear) Days() int {
	if p.Unit == UnitWeek {
		return p.Amount * 7
	}
	return p.Amount
}

// HorizonDays parses query and returns its forecast horizon in days.
func HorizonDays(query string) (int, error) {
	p, err := ParsePredictLinear(query)
	if err != nil {
		return 0, err
	}
	return p.Days(), nil
}

// ParsePredictLinear parses the first predictLinear call in query.
func ParsePredictLinear(query string) (PredictLinear, error) {
	for start := indexFold(query, FunctionName, 0); start >= 0; start = indexFold(query, FunctionName, start+1) {
		s := &scanner{src: query, pos: start + len(FunctionName)}
		s.skipSpace()
		if s.peek() == '(' {
			s.pos++
			return s.parseCall(query[start : start+len(FunctionName)])
		}
	}
	return PredictLinear{}, &ParseError{Pos: len(query), Msg: "expected " + FunctionName + "(...)", Err: ErrNoPredictLinear}
}

type scanner struct {
	src string
	pos int
}

func (s *scanner) peek() byte {
	if s.pos >= len(s.src) {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}
}

func (s *scanner) fail(err error, format string, args ...interface{}) error {
	return &ParseError{Pos: s.pos, Msg: fmt.Sprintf(format, args...), Err: err}
}

func (s *scanner) parseCall(name string) (PredictLinear, error) {
	metric, err := s.argument()
	if err != nil {
		return PredictLinear{}, err
	}

	s.skipSpace()
	digits := s.pos
	for s.pos < len(s.src) && s.src[s.pos] >= '0' && s.src[s.pos] <= '9' {
		s.pos++
	}
	if digits == s.pos {
		return PredictLinear{}, s.fail(ErrSyntax, "expected integer time interval")
	}
	amount, err := strconv.Atoi(s.src[digits:s.pos])
	if err != nil {
		return PredictLinear{}, s.fail(ErrSyntax, "time interval %q: %v", s.src[digits:s.pos], err)
	}

	s.skipSpace()
	word := s.pos
	for s.pos < len(s.src) && isLetter(s.src[s.pos]) {
		s.pos++
	}
	if word == s.pos {
		return PredictLinear{}, s.fail(ErrSyntax, "expected time unit")
	}
	unitWord := s.src[word:s.pos]
	unit, err := parseUnit(unitWord)
	if err != nil {
		s.pos = word
		return PredictLinear{}, s.fail(err, "%q is not a whole-day unit", unitWord)
	}
	if unit == UnitWeek && amount > math.MaxInt/7 {
		s.pos = digits
		return PredictLinear{}, s.fail(ErrSyntax, "time interval %d weeks out of range", amount)
	}

	s.skipSpace()
	if s.peek() != ')' {
		return PredictLinear{}, s.fail(ErrSyntax, "expected ')'")
	}
	s.pos++

	return PredictLinear{
		Function: name,
		Metric:   metric,
		Amount:   amount,
		Unit:     unit,
	}, nil
}

// argument consumes the metric argument and the comma that ends it.
func (s *scanner) argument() (string, error) {
	begin := s.pos
	depth := 0
	var quote byte
	for ; s.pos < len(s.src); s.pos++ {
		c := s.src[s.pos]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			if depth == 0 {
				return "", s.fail(ErrSyntax, "expected ',' before time interval")
			}
			depth--
		case c == ',' && depth == 0:
			metric := strings.TrimSpace(s.src[begin:s.pos])
			if metric == "" {
				return "", s.fail(ErrSyntax, "empty metric argument")
			}
			s.pos++
			return metric, nil
		}
	}
	if quote != 0 {
		return "", s.fail(ErrSyntax, "unterminated quote")
	}
	return "", s.fail(ErrSyntax, "unterminated call")
}

func parseUnit(word string) (Unit, error) {
	switch strings.ToLower(word) {
	case "day", "days":
		return UnitDay, nil
	case "week", "weeks":
		return UnitWeek, nil
	default:
		return "", ErrUnsupportedUnit
	}
}

// indexFold returns the first case-insensitive match of substr in s at or
// after from, or -1.
func indexFold(s, substr string, from int) int {
	for i := from; i+len(substr) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
