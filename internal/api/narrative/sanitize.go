package narrative

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

// maxCleanPasses bounds Clean; real model output settles in one or two.
const maxCleanPasses = 8

type replacement struct {
	re   *regexp.Regexp
	repl string
}

var markdownRules = []replacement{
	{regexp.MustCompile("```[a-zA-Z0-9_-]*"), ""},
	{regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`), "$1"},
	{regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`), "$1"},
	{regexp.MustCompile("`([^`]*)`"), "$1"},
	{regexp.MustCompile(`\*\*([^*]+)\*\*`), "$1"},
	{regexp.MustCompile(`__([^_]+)__`), "$1"},
	{regexp.MustCompile(`\*([^*\n]+)\*`), "$1"},
	{regexp.MustCompile(`\b_([^_\n]+)_\b`), "$1"},
	{regexp.MustCompile(`~~([^~]+)~~`), "$1"},
	{regexp.MustCompile(`(?m)^[ \t]{0,3}#{1,6}[ \t]*`), ""},
	{regexp.MustCompile(`(?m)^[ \t]*>[ \t]?`), ""},
	{regexp.MustCompile(`(?m)^[ \t]*(?:[-*+•]|\d+[.)])[ \t]+`), ""},
	{regexp.MustCompile("[*`~]+"), ""},
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Sanitize strips markdown markup and collapses whitespace into single spaces.
func Sanitize(text string) string {
	for _, r := range markdownRules {
		text = r.re.ReplaceAllString(text, r.repl)
	}
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

type repairRules struct {
	leadVerb    *regexp.Regexp
	preposition *regexp.Regexp
}

var (
	repairOnce  sync.Once
	repairByLng map[string]repairRules
)

func compiledRepairRules(lang string) repairRules {
	repairOnce.Do(func() {
		repairByLng = make(map[string]repairRules, len(locales))
		for code, l := range locales {
			repairByLng[code] = repairRules{
				leadVerb:    leadVerbPattern(l.leadVerbs),
				preposition: prepositionPattern(l.prepositions),
			}
		}
	})
	return repairByLng[NormalizeLanguage(lang)]
}

// leadVerbPattern matches a lead verb at a word start running straight into a
// capitalised token. The verb's first letter may be either case, the rest
// must match exactly.
func leadVerbPattern(verbs []string) *regexp.Regexp {
	alts := make([]string, 0, len(verbs))
	for _, v := range byLengthDesc(verbs) {
		runes := []rune(v)
		first := string(runes[0])
		alts = append(alts, "["+regexp.QuoteMeta(strings.ToUpper(first))+regexp.QuoteMeta(strings.ToLower(first))+"]"+regexp.QuoteMeta(string(runes[1:])))
	}
	return regexp.MustCompile(`(^|[^\p{L}])(` + strings.Join(alts, "|") + `)(\p{Lu})`)
}

// prepositionPattern matches a preposition glued to the end of a lowercase
// word and followed by a capitalised token. Words starting with a capital are
// left alone so names such as "David" or "Schmit" never split.
func prepositionPattern(preps []string) *regexp.Regexp {
	alts := make([]string, 0, len(preps))
	for _, p := range byLengthDesc(preps) {
		alts = append(alts, regexp.QuoteMeta(p))
	}
	return regexp.MustCompile(`(^|[^\p{L}])(\p{Ll}\p{L}*?\p{Ll})((?i:` + strings.Join(alts, "|") + `))(\s+\p{Lu})`)
}

func byLengthDesc(words []string) []string {
	out := append([]string(nil), words...)
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

// Repair re-inserts spaces lost at token boundaries, as in "OntdekCalpe" or
// "wandelnaar Altea".
func Repair(text, lang string) string {
	rules := compiledRepairRules(lang)
	text = rules.leadVerb.ReplaceAllString(text, "${1}${2} ${3}")
	text = rules.preposition.ReplaceAllString(text, "${1}${2} ${3}${4}")
	return text
}

// Clean applies Sanitize and Repair until the text stops changing, so
// Clean(Clean(s)) == Clean(s).
func Clean(text, lang string) string {
	for i := 0; i < maxCleanPasses; i++ {
		next := Repair(Sanitize(text), lang)
		if next == text {
			break
		}
		text = next
	}
	return text
}

// truncateWords shortens text to at most limit words, preferring to cut at
// the last sentence end inside the limit.
func truncateWords(text string, limit int) string {
	words := strings.Fields(text)
	if limit <= 0 || len(words) <= limit {
		return text
	}
	cut := strings.Join(words[:limit], " ")
	if i := strings.LastIndexAny(cut, ".!?"); i > len(cut)/2 {
		return cut[:i+1]
	}
	return strings.TrimRight(cut, ",;:") + "…"
}
