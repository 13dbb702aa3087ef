package telegram

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	reVarSep  = regexp.MustCompile(`[,;\n]+`)
	reVarName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// ParseVariables читает подпись вида "x=3, y=4.5" (разделители: запятая,
// точка с запятой, перевод строки). Пустая подпись даёт пустой набор.
func ParseVariables(caption string) (map[string]float64, error) {
	vars := map[string]float64{}
	for _, part := range reVarSep.Split(caption, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("%q: нет знака =", part)
		}
		name = strings.TrimSpace(name)
		if !reVarName.MatchString(name) {
			return nil, fmt.Errorf("%q: некорректное имя", name)
		}
		// запятая занята разделителем, дробная часть только через точку
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %q не число", name, strings.TrimSpace(value))
		}
		vars[name] = f
	}
	return vars, nil
}
