package analyze

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// parseLiteral reads Python-style literal syntax: quoted strings in either
// quote style, numbers, True/False/None, lists, tuples, dicts and sets.
// Tuples and sets come back as []any, numbers as json.Number. A bare
// comma separated top level ("{...}, {...}") is a tuple.
func parseLiteral(s string) (any, error) {
	p := &literalParser{src: s}
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() == ',' {
		tuple := []any{v}
		for p.peek() == ',' {
			p.pos++
			p.skipSpace()
			if p.pos == len(p.src) {
				break
			}
			next, err := p.value()
			if err != nil {
				return nil, err
			}
			tuple = append(tuple, next)
			p.skipSpace()
		}
		v = tuple
	}
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return v, nil
}

var reJSONNumber = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?(?:[eE][+-]?\d+)?$`)

type literalParser struct {
	src string
	pos int
}

func (p *literalParser) errorf(format string, args ...any) error {
	return fmt.Errorf("literal at offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

func (p *literalParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *literalParser) value() (any, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, p.errorf("unexpected end of input")
	}
	switch c := p.peek(); {
	case c == '[':
		p.pos++
		return p.sequence(']')
	case c == '(':
		p.pos++
		return p.tuple()
	case c == '{':
		p.pos++
		return p.dictOrSet()
	case c == '\'' || c == '"':
		return p.stringLit(false)
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return p.number()
	case c == '_' || unicode.IsLetter(rune(c)):
		return p.name()
	default:
		return nil, p.errorf("unexpected character %q", c)
	}
}

// sequence reads comma separated values up to close; a trailing comma is allowed.
func (p *literalParser) sequence(close byte) ([]any, error) {
	items, _, err := p.items(close)
	return items, err
}

func (p *literalParser) items(close byte) ([]any, bool, error) {
	out := []any{}
	sawComma := false
	for {
		p.skipSpace()
		if p.peek() == close {
			p.pos++
			return out, sawComma, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, false, err
		}
		out = append(out, v)
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
			sawComma = true
		case close:
			p.pos++
			return out, sawComma, nil
		default:
			return nil, false, p.errorf("expected ',' or %q", close)
		}
	}
}

// tuple: "()" is empty, "(x)" is just x, "(x,)" is a one-item tuple.
func (p *literalParser) tuple() (any, error) {
	items, sawComma, err := p.items(')')
	if err != nil {
		return nil, err
	}
	if len(items) == 1 && !sawComma {
		return items[0], nil
	}
	return items, nil
}

func (p *literalParser) dictOrSet() (any, error) {
	p.skipSpace()
	if p.peek() == '}' {
		p.pos++
		return map[string]any{}, nil
	}
	first, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() != ':' {
		rest, _, err := p.itemsAfterFirst('}')
		if err != nil {
			return nil, err
		}
		return append([]any{first}, rest...), nil
	}

	out := map[string]any{}
	key := first
	for {
		p.pos++ // ':'
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		k, err := literalKey(key)
		if err != nil {
			return nil, p.errorf("%v", err)
		}
		out[k] = v

		p.skipSpace()
		switch p.peek() {
		case '}':
			p.pos++
			return out, nil
		case ',':
			p.pos++
		default:
			return nil, p.errorf("expected ',' or '}'")
		}
		p.skipSpace()
		if p.peek() == '}' {
			p.pos++
			return out, nil
		}
		if key, err = p.value(); err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() != ':' {
			return nil, p.errorf("expected ':'")
		}
	}
}

// itemsAfterFirst continues a set literal whose first element is already read.
func (p *literalParser) itemsAfterFirst(close byte) ([]any, bool, error) {
	switch p.peek() {
	case close:
		p.pos++
		return nil, false, nil
	case ',':
		p.pos++
		return p.items(close)
	default:
		return nil, false, p.errorf("expected ',' or %q", close)
	}
}

func literalKey(k any) (string, error) {
	switch t := k.(type) {
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		if t {
			return "True", nil
		}
		return "False", nil
	case nil:
		return "None", nil
	default:
		return "", errors.New("unhashable dict key")
	}
}

func (p *literalParser) name() (any, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c != '_' && !unicode.IsLetter(rune(c)) && !unicode.IsDigit(rune(c)) {
			break
		}
		p.pos++
	}
	switch word := p.src[start:p.pos]; word {
	case "True":
		return true, nil
	case "False":
		return false, nil
	case "None":
		return nil, nil
	default:
		if p.peek() == '\'' || p.peek() == '"' {
			switch strings.ToLower(word) {
			case "u", "r":
				return p.stringLit(strings.EqualFold(word, "r"))
			}
		}
		p.pos = start
		return nil, p.errorf("name %q is not a literal", word)
	}
}

func (p *literalParser) number() (any, error) {
	start := p.pos
	neg := false
	for p.peek() == '-' || p.peek() == '+' {
		if p.peek() == '-' {
			neg = !neg
		}
		p.pos++
		p.skipSpace()
	}
	numStart := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		isExpSign := (c == '+' || c == '-') && p.pos > numStart && (p.src[p.pos-1] == 'e' || p.src[p.pos-1] == 'E')
		if !(c >= '0' && c <= '9') && !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z') && c != '.' && c != '_' && !isExpSign {
			break
		}
		p.pos++
	}
	text := strings.ReplaceAll(p.src[numStart:p.pos], "_", "")
	if text == "" {
		p.pos = start
		return nil, p.errorf("bad number")
	}
	sign := ""
	if neg {
		sign = "-"
	}

	lower := strings.ToLower(text)
	if len(lower) > 2 && lower[0] == '0' && strings.ContainsRune("xob", rune(lower[1])) {
		n, err := strconv.ParseInt(sign+text, 0, 64)
		if err != nil {
			p.pos = start
			return nil, p.errorf("bad integer %q", text)
		}
		return json.Number(strconv.FormatInt(n, 10)), nil
	}

	if reJSONNumber.MatchString(text) {
		return json.Number(sign + text), nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || strings.ContainsAny(lower, "xijnp") {
		p.pos = start
		return nil, p.errorf("bad number %q", text)
	}
	if neg {
		f = -f
	}
	return json.Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

// stringLit reads one or more adjacent string literals and concatenates them.
func (p *literalParser) stringLit(raw bool) (any, error) {
	var b strings.Builder
	for {
		s, err := p.quoted(raw)
		if err != nil {
			return nil, err
		}
		b.WriteString(s)
		save := p.pos
		p.skipSpace()
		if c := p.peek(); c != '\'' && c != '"' {
			p.pos = save
			return b.String(), nil
		}
		raw = false
	}
}

func (p *literalParser) quoted(raw bool) (string, error) {
	q := p.src[p.pos]
	delim := string(q)
	if strings.HasPrefix(p.src[p.pos:], strings.Repeat(delim, 3)) {
		delim = strings.Repeat(delim, 3)
	}
	p.pos += len(delim)

	var b strings.Builder
	for {
		if p.pos >= len(p.src) {
			return "", p.errorf("unterminated string")
		}
		if strings.HasPrefix(p.src[p.pos:], delim) {
			p.pos += len(delim)
			return b.String(), nil
		}
		c := p.src[p.pos]
		if c == '\n' && len(delim) == 1 {
			return "", p.errorf("newline in string")
		}
		if c != '\\' {
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			b.WriteRune(r)
			p.pos += size
			continue
		}
		if p.pos+1 >= len(p.src) {
			return "", p.errorf("unterminated escape")
		}
		if raw {
			b.WriteByte('\\')
			b.WriteByte(p.src[p.pos+1])
			p.pos += 2
			continue
		}
		if err := p.escape(&b); err != nil {
			return "", err
		}
	}
}

var simpleEscapes = map[byte]string{
	'\\': "\\", '\'': "'", '"': "\"", 'n': "\n", 't': "\t", 'r': "\r",
	'a': "\a", 'b': "\b", 'f': "\f", 'v': "\v", '\n': "",
}

func (p *literalParser) escape(b *strings.Builder) error {
	c := p.src[p.pos+1]
	if s, ok := simpleEscapes[c]; ok {
		b.WriteString(s)
		p.pos += 2
		return nil
	}
	switch c {
	case 'x', 'u', 'U':
		width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[c]
		start := p.pos + 2
		if start+width > len(p.src) {
			return p.errorf("truncated \\%c escape", c)
		}
		n, err := strconv.ParseUint(p.src[start:start+width], 16, 32)
		if err != nil {
			return p.errorf("bad \\%c escape", c)
		}
		b.WriteRune(rune(n))
		p.pos = start + width
		return nil
	}
	if c >= '0' && c <= '7' {
		end := p.pos + 1
		for end < len(p.src) && end < p.pos+4 && p.src[end] >= '0' && p.src[end] <= '7' {
			end++
		}
		n, _ := strconv.ParseUint(p.src[p.pos+1:end], 8, 32)
		b.WriteRune(rune(n))
		p.pos = end
		return nil
	}
	// Unknown escapes stay verbatim.
	b.WriteByte('\\')
	p.pos++
	return nil
}
