package poi

import (
	"strings"

	json "github.com/goccy/go-json"
)

const daysPerWeek = 7

// dayIndexByName maps recognised day keys (lower-cased) to 0=Monday..6=Sunday.
var dayIndexByName = func() map[string]int {
	names := [][]string{
		{"monday", "mon", "mo", "maandag", "ma", "lunes", "montag", "måndag", "poniedziałek"},
		{"tuesday", "tue", "tu", "dinsdag", "di", "martes", "dienstag", "tisdag", "wtorek"},
		{"wednesday", "wed", "we", "woensdag", "wo", "miércoles", "miercoles", "mittwoch", "onsdag", "środa"},
		{"thursday", "thu", "th", "donderdag", "do", "jueves", "donnerstag", "torsdag", "czwartek"},
		{"friday", "fri", "fr", "vrijdag", "vr", "viernes", "freitag", "fredag", "piątek"},
		{"saturday", "sat", "sa", "zaterdag", "za", "sábado", "sabado", "samstag", "lördag", "sobota"},
		{"sunday", "sun", "su", "zondag", "zo", "domingo", "sonntag", "söndag", "niedziela"},
	}
	m := make(map[string]int, 64)
	for idx, aliases := range names {
		for _, a := range aliases {
			m[a] = idx
		}
	}
	return m
}()

var closedTokens = map[string]struct{}{
	"":            {},
	"closed":      {},
	"gesloten":    {},
	"geschlossen": {},
	"cerrado":     {},
	"stängt":      {},
	"zamknięte":   {},
	"nieczynne":   {},
	"fermé":       {},
	"null":        {},
}

// keys that name the day inside an array-of-day-objects entry
var dayFieldNames = []string{"day", "dayOfWeek", "day_of_week", "weekday", "name"}

// keys that carry the day's value inside such an entry
var valueFieldNames = []string{"hours", "status", "value", "open", "time", "times", "ranges"}

// IsPermanentlyClosed reports whether an opening-hours record marks all seven
// weekdays as closed. Fewer than seven recognised days, or data that cannot be
// parsed, count as not closed.
func IsPermanentlyClosed(openingHours any) (closed bool) {
	defer func() {
		if recover() != nil {
			closed = false
		}
	}()

	days := NormalizeOpeningHours(openingHours)
	if len(days) < daysPerWeek {
		return false
	}
	for _, c := range days {
		if !c {
			return false
		}
	}
	return true
}

// NormalizeOpeningHours converts the heterogeneous opening-hours shapes into a
// {dayIndex: closed} mapping. Unrecognised keys are ignored. When a day appears
// more than once it is closed only if every entry is closed.
func NormalizeOpeningHours(openingHours any) map[int]bool {
	days := make(map[int]bool, daysPerWeek)
	collectDays(openingHours, days)
	return days
}

func collectDays(v any, days map[int]bool) {
	switch t := v.(type) {
	case nil:
		return
	case string:
		collectFromString(t, days)
	case []byte:
		collectFromString(string(t), days)
	case json.RawMessage:
		collectFromString(string(t), days)
	case map[string]any:
		for k, val := range t {
			if idx, ok := dayIndex(k); ok {
				markDay(days, idx, isClosedValue(val))
			}
		}
	case map[string]string:
		for k, val := range t {
			if idx, ok := dayIndex(k); ok {
				markDay(days, idx, isClosedValue(val))
			}
		}
	case []any:
		for _, entry := range t {
			collectFromEntry(entry, days)
		}
	case []map[string]any:
		for _, entry := range t {
			collectFromEntry(entry, days)
		}
	case []string:
		for _, entry := range t {
			collectFromEntry(entry, days)
		}
	}
}

func collectFromString(s string, days map[int]bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	var parsed any
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		return
	}
	if inner, isString := parsed.(string); isString {
		// double-encoded column
		collectFromString(inner, days)
		return
	}
	collectDays(parsed, days)
}

// collectFromEntry handles one element of the array-of-day-objects shape, or a
// "Monday: Closed" style line.
func collectFromEntry(entry any, days map[int]bool) {
	switch e := entry.(type) {
	case map[string]any:
		var name string
		for _, f := range dayFieldNames {
			if s, ok := e[f].(string); ok {
				name = s
				break
			}
		}
		idx, ok := dayIndex(name)
		if !ok {
			return
		}
		if flag, ok := e["closed"].(bool); ok {
			markDay(days, idx, flag)
			return
		}
		if flag, ok := e["isClosed"].(bool); ok {
			markDay(days, idx, flag)
			return
		}
		for _, f := range valueFieldNames {
			if val, present := e[f]; present {
				markDay(days, idx, isClosedValue(val))
				return
			}
		}
		// a day object with a name and nothing else says nothing about hours
		markDay(days, idx, false)
	case string:
		name, rest, found := strings.Cut(e, ":")
		if !found {
			return
		}
		if idx, ok := dayIndex(name); ok {
			markDay(days, idx, isClosedValue(strings.TrimSpace(rest)))
		}
	}
}

func dayIndex(key string) (int, bool) {
	idx, ok := dayIndexByName[strings.ToLower(strings.TrimSpace(key))]
	return idx, ok
}

func markDay(days map[int]bool, idx int, closed bool) {
	if prev, seen := days[idx]; seen {
		days[idx] = prev && closed
		return
	}
	days[idx] = closed
}

func isClosedValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		_, ok := closedTokens[strings.ToLower(strings.TrimSpace(t))]
		return ok
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case map[string]any:
		if flag, ok := t["closed"].(bool); ok {
			return flag
		}
		if flag, ok := t["isClosed"].(bool); ok {
			return flag
		}
		if s, ok := t["status"]; ok {
			return isClosedValue(s)
		}
		return len(t) == 0
	}
	return false
}
