// Package extract turns recognition output into a draft beer record.
//
// Extraction is a best-effort heuristic: it never fails and is deterministic,
// the worst outcome is an empty draft.
package extract

import (
	"regexp"
	"sort"
	"strings"

	"beerbasement/internal/app/client/vision"
)

var (
	// число с % сразу после него, опционально с маркером ABV/ALK./VOL до и VOL после.
	// Без маркера перед числом не должно быть цифры или разделителя, слитный текст
	// вида ALC12.5% тоже подходит.
	abvPattern = regexp.MustCompile(`(?i)(?:\b(ABV|ALK\.?|VOL\.?)\s*|^|[^0-9.,])(\d{1,2}(?:[.,]\d{1,2})?)%(?:\s*VOL\b\.?)?`)
	// число и единица объема, единицы не пересчитываются
	volumePattern = regexp.MustCompile(`(?i)\b(\d+(?:[.,]\d+)?)\s*(ml|cl|l|oz)\b`)
	spaces        = regexp.MustCompile(`\s+`)
)

// Extractor извлекает поля записи из результата распознавания
type Extractor struct {
	gazetteer   *Gazetteer
	keywords    []string
	breweries   []string
	descriptors []wordMatcher
	styles      []wordMatcher
}

type wordMatcher struct {
	entry string
	re    *regexp.Regexp
}

// New готовит экстрактор по справочникам. nil означает встроенные справочники.
func New(g *Gazetteer) *Extractor {
	if g == nil {
		g = DefaultGazetteer()
	}

	e := &Extractor{gazetteer: g}
	for _, k := range g.BeverageKeywords {
		e.keywords = append(e.keywords, strings.ToLower(k))
	}
	for _, b := range g.Breweries {
		e.breweries = append(e.breweries, strings.ToLower(b))
	}
	e.descriptors = wordMatchers(g.Descriptors)
	e.styles = wordMatchers(g.Styles)
	return e
}

// Gazetteer возвращает справочники, с которыми собран экстрактор
func (e *Extractor) Gazetteer() *Gazetteer {
	return e.gazetteer
}

// Extract строит черновик записи. Если метки не похожи на напиток,
// возвращается пустой черновик.
func (e *Extractor) Extract(b vision.Bundle) Draft {
	if !e.isBeverage(b.Labels) {
		return Draft{}
	}

	d := Draft{IsBeverage: true}

	if brewery, ok := e.brewery(b.Logos); ok {
		d = d.WithBrewery(brewery)
	}

	cleanText := sanitize(strings.Join(b.TextLines, "\n"))
	var cut [][2]int

	if m := abvPattern.FindStringSubmatchIndex(cleanText); m != nil {
		d = d.WithABV(decimal(cleanText[m[4]:m[5]]))
		// маркер вырезается вместе с числом, символ перед числом остается
		start := m[4]
		if m[2] >= 0 {
			start = m[0]
		}
		cut = append(cut, [2]int{start, m[1]})
	}

	if m := volumePattern.FindStringSubmatchIndex(cleanText); m != nil {
		d = d.WithVolume(decimal(cleanText[m[2]:m[3]]), strings.ToLower(cleanText[m[4]:m[5]]))
		cut = append(cut, [2]int{m[0], m[1]})
	}

	residual := strings.TrimSpace(spaces.ReplaceAllString(removeSpans(cleanText, cut), " "))

	if name, ok := firstWord(e.descriptors, residual); ok {
		d = d.WithName(name)
	} else if residual != "" {
		d = d.WithName(residual)
	}

	if style, ok := firstWord(e.styles, residual); ok {
		d = d.WithStyle(style)
	}

	return d
}

func (e *Extractor) isBeverage(labels []vision.Annotation) bool {
	for _, l := range labels {
		label := strings.ToLower(strings.TrimSpace(l.Text))
		if label == "" {
			continue
		}
		for _, k := range e.keywords {
			if strings.Contains(label, k) {
				return true
			}
		}
	}
	return false
}

// brewery ищет пивоварню по логотипам. Порядок справочника важнее оценки логотипа.
func (e *Extractor) brewery(logos []vision.Annotation) (string, bool) {
	for i, b := range e.breweries {
		for _, logo := range logos {
			if strings.Contains(strings.ToLower(logo.Text), b) {
				return e.gazetteer.Breweries[i], true
			}
		}
	}
	return "", false
}

// sanitize оставляет только ASCII буквы, цифры, пробелы и символы % . ,
func sanitize(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '%', r == '.', r == ',':
			sb.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r', r == '\v', r == '\f':
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func decimal(s string) string {
	return strings.ReplaceAll(s, ",", ".")
}

// removeSpans вырезает диапазоны из строки, заменяя каждый пробелом
func removeSpans(s string, spans [][2]int) string {
	if len(spans) == 0 {
		return s
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })

	var sb strings.Builder
	pos := 0
	for _, sp := range spans {
		if sp[0] > pos {
			sb.WriteString(s[pos:sp[0]])
		}
		sb.WriteByte(' ')
		if sp[1] > pos {
			pos = sp[1]
		}
	}
	sb.WriteString(s[pos:])
	return sb.String()
}

func wordMatchers(entries []string) []wordMatcher {
	out := make([]wordMatcher, 0, len(entries))
	for _, entry := range entries {
		out = append(out, wordMatcher{
			entry: entry,
			re:    regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(entry) + `\b`),
		})
	}
	return out
}

func firstWord(matchers []wordMatcher, text string) (string, bool) {
	for _, m := range matchers {
		if m.re.MatchString(text) {
			return m.entry, true
		}
	}
	return "", false
}

var defaultExtractor = New(nil)

// Extract извлекает черновик встроенными справочниками
func Extract(b vision.Bundle) Draft {
	return defaultExtractor.Extract(b)
}
