package grid

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ErrUnknownFormatter is returned for a column format name with no formatter.
var ErrUnknownFormatter = errors.New("unknown column format")

// namedFormatters are the formatters a column can select by name from configuration.
var namedFormatters = map[string]CellFormatter{
	"upper": func(v any) string {
		return cases.Upper(language.Und).String(FormatValue(v))
	},
	"lower": func(v any) string {
		return cases.Lower(language.Und).String(FormatValue(v))
	},
	"title": func(v any) string {
		return cases.Title(language.Und).String(FormatValue(v))
	},
	// number groups thousands; values that are not numeric render unchanged.
	"number": func(v any) string {
		f, ok := toNumber(v)
		if !ok {
			return FormatValue(v)
		}
		return message.NewPrinter(language.English).Sprint(number.Decimal(f))
	},
}

// LookupFormatter returns the formatter registered under name.
func LookupFormatter(name string) (CellFormatter, error) {
	f, ok := namedFormatters[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %v)", ErrUnknownFormatter, name, FormatterNames())
	}
	return f, nil
}

// FormatterNames lists the registered formatter names, sorted.
func FormatterNames() []string {
	names := make([]string, 0, len(namedFormatters))
	for n := range namedFormatters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ValidateFormatters reports the first column whose FormatName is not registered.
func ValidateFormatters(cols []ColumnDef) error {
	for _, c := range cols {
		if c.FormatName == "" {
			continue
		}
		if _, err := LookupFormatter(c.FormatName); err != nil {
			return fmt.Errorf("column %q: %w", c.Field, err)
		}
	}
	return nil
}
