// Package output печатает результаты команд таблицей или JSON.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	"golang.org/x/term"

	"beerbasement/internal/app/client/extract"
	"beerbasement/internal/domain/beer"
)

type Printer struct {
	out  io.Writer
	err  io.Writer
	json bool
}

// New создает вывод в stdout. JSON включается флагом или если stdout не терминал.
func New(jsonFlag bool) *Printer {
	return &Printer{
		out:  os.Stdout,
		err:  os.Stderr,
		json: jsonFlag || !term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// NewWriter вывод в произвольные writer'ы, используется в тестах
func NewWriter(out, errOut io.Writer, jsonOutput bool) *Printer {
	return &Printer{out: out, err: errOut, json: jsonOutput}
}

func (p *Printer) JSON() bool {
	return p.json
}

// Beers печатает список записей
func (p *Printer) Beers(beers []beer.Record) error {
	if p.json {
		if beers == nil {
			beers = []beer.Record{}
		}
		return p.encode(beers)
	}

	if len(beers) == 0 {
		fmt.Fprintln(p.out, "Записи не найдены")
		return nil
	}

	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tBrewery\tName\tStyle\tABV\tVolume\tQty\t\n")
	fmt.Fprintf(w, "---\t---\t---\t---\t---\t---\t---\t\n")
	for _, b := range beers {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t\n",
			b.ID,
			truncate(b.Brewery, 24),
			truncate(b.Name, 30),
			truncate(b.Style, 16),
			number(b.ABV),
			number(b.Volume),
			b.Quantity,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(p.out, "\nВсего записей: %d\n", len(beers))
	return nil
}

// Beer печатает одну запись
func (p *Printer) Beer(b beer.Record) error {
	if p.json {
		return p.encode(b)
	}
	return p.Beers([]beer.Record{b})
}

type draftView struct {
	IsBeverage bool    `json:"isBeverage"`
	Brewery    *string `json:"brewery"`
	Name       *string `json:"name"`
	Style      *string `json:"style"`
	ABV        *string `json:"abv"`
	Volume     *string `json:"volume"`
	VolumeUnit string  `json:"volumeUnit,omitempty"`
}

func opt(o extract.Opt[string]) *string {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}

// Draft печатает черновик распознавания. Неустановленные поля - null / "-".
func (p *Printer) Draft(d extract.Draft) error {
	view := draftView{
		IsBeverage: d.IsBeverage,
		Brewery:    opt(d.Brewery),
		Name:       opt(d.Name),
		Style:      opt(d.Style),
		ABV:        opt(d.ABV),
		Volume:     opt(d.Volume),
		VolumeUnit: d.VolumeUnit,
	}
	if p.json {
		return p.encode(view)
	}

	if !d.IsBeverage {
		fmt.Fprintln(p.out, color.YellowString("На снимке не найден напиток"))
		return nil
	}

	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Brewery\t%s\n", show(view.Brewery))
	fmt.Fprintf(w, "Name\t%s\n", show(view.Name))
	fmt.Fprintf(w, "Style\t%s\n", show(view.Style))
	fmt.Fprintf(w, "ABV\t%s\n", show(view.ABV))
	volume := show(view.Volume)
	if view.Volume != nil && d.VolumeUnit != "" {
		volume += " " + d.VolumeUnit
	}
	fmt.Fprintf(w, "Volume\t%s\n", volume)
	return w.Flush()
}

// Success строка об успехе, в JSON режиме не печатается
func (p *Printer) Success(format string, args ...interface{}) {
	if p.json {
		return
	}
	fmt.Fprintln(p.out, color.GreenString("✓ "+format, args...))
}

// Failure строка об ошибке в stderr
func (p *Printer) Failure(format string, args ...interface{}) {
	fmt.Fprintln(p.err, color.RedString("✗ "+format, args...))
}

func (p *Printer) encode(v interface{}) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func show(s *string) string {
	if s == nil {
		return "-"
	}
	if *s == "" {
		return `""`
	}
	return *s
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

type printerKey struct{}

func WithPrinter(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, printerKey{}, p)
}

// FromContext возвращает вывод команды, по умолчанию stdout без JSON флага
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(printerKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(false)
}
