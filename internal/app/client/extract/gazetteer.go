package extract

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"
)

//go:embed gazetteer.yaml
var defaultGazetteer []byte

// Gazetteer справочники для извлечения полей. Во всех списках
// побеждает первое совпадение в порядке файла.
type Gazetteer struct {
	Version          string
	BeverageKeywords []string
	Breweries        []string
	Descriptors      []string
	Styles           []string
}

// DefaultGazetteer возвращает встроенные справочники
func DefaultGazetteer() *Gazetteer {
	g, err := ParseGazetteer(bytes.NewReader(defaultGazetteer))
	if err != nil {
		// встроенный файл проверяется тестами
		panic(fmt.Sprintf("встроенный справочник поврежден: %v", err))
	}
	return g
}

// LoadGazetteer читает справочники из YAML файла
func LoadGazetteer(path string) (*Gazetteer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия справочника: %w", err)
	}
	defer f.Close()

	g, err := ParseGazetteer(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// ParseGazetteer разбирает YAML со справочниками
func ParseGazetteer(r io.Reader) (*Gazetteer, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("ошибка разбора справочника: %w", err)
	}

	return &Gazetteer{
		Version:          v.GetString("version"),
		BeverageKeywords: clean(v.GetStringSlice("beverage_keywords")),
		Breweries:        clean(v.GetStringSlice("breweries")),
		Descriptors:      clean(v.GetStringSlice("descriptors")),
		Styles:           clean(v.GetStringSlice("styles")),
	}, nil
}

// clean убирает пустые строки, сохраняя порядок
func clean(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}
