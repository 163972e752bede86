package scanner

import (
	"strconv"

	"github.com/ructeam/ruc/lang/token"
)

// number scans an integer or floating-point literal starting at the
// scanner's current position and fills val with its decoded value.
func (s *Scanner) number(val *Value, pos token.Pos) token.Token {
	start := s.off
	isFloat := false

	for isDigit(s.cur) {
		s.advance()
	}
	if s.cur == '.' {
		isFloat = true
		s.advance()
		for isDigit(s.cur) {
			s.advance()
		}
	}
	if s.cur == 'e' || s.cur == 'E' {
		isFloat = true
		s.advance()
		if s.cur == '+' || s.cur == '-' {
			s.advance()
		}
		for isDigit(s.cur) {
			s.advance()
		}
	}

	lit := string(s.src[start:s.off])
	if isFloat {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			s.errorf(start, "invalid float literal %q: %v", lit, err)
		}
		*val = Value{Raw: lit, Pos: pos, Flt: f}
		return token.FLOAT
	}

	n, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		s.errorf(start, "invalid integer literal %q: %v", lit, err)
	}
	*val = Value{Raw: lit, Pos: pos, Int: n}
	return token.INT
}
