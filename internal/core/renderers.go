package core

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/JonMunkholm/salesdesk/internal/datatable"
)

// Renderer names accepted by the screen catalog.
const (
	RenderRaw      = "raw"
	RenderCurrency = "currency"
	RenderDate     = "date"
	RenderBadge    = "badge"
	RenderEmail    = "email"
	RenderPercent  = "percent"
)

// badgePalette is assigned to enum values in order when a badge renderer has
// no explicit colors.
var badgePalette = []string{
	"bg-blue-100 text-blue-800",
	"bg-green-100 text-green-800",
	"bg-amber-100 text-amber-800",
	"bg-red-100 text-red-800",
	"bg-purple-100 text-purple-800",
	"bg-gray-100 text-gray-800",
}

const badgeBase = "inline-flex px-2 py-0.5 rounded-full text-xs font-medium"

// RendererByName returns the built-in renderer for a catalog name. enum feeds
// the badge palette.
func RendererByName(name string, enum []string) (datatable.Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", RenderRaw:
		return datatable.Raw(), nil
	case RenderCurrency:
		return Currency(), nil
	case RenderDate:
		return Date(), nil
	case RenderBadge:
		colors := make(map[string]string, len(enum))
		for i, v := range enum {
			colors[v] = badgePalette[i%len(badgePalette)]
		}
		return Badge(colors), nil
	case RenderEmail:
		return Email(), nil
	case RenderPercent:
		return Percent(), nil
	default:
		return datatable.Renderer{}, fmt.Errorf("unknown renderer %q", name)
	}
}

// Currency renders numbers as US dollars with two decimals and grouping.
func Currency() datatable.Renderer {
	return datatable.Custom(func(v any, _ datatable.Row) datatable.Cell {
		n, ok := numberValue(v)
		if !ok {
			return datatable.Cell{Text: datatable.FormatValue(v)}
		}
		p := message.NewPrinter(language.AmericanEnglish)
		text := p.Sprintf("$%.2f", n)
		if n < 0 {
			text = p.Sprintf("-$%.2f", -n)
		}
		return datatable.Cell{Text: text, Class: "text-right tabular-nums"}
	})
}

// Percent renders a 0-100 number as a whole percentage.
func Percent() datatable.Renderer {
	return datatable.Custom(func(v any, _ datatable.Row) datatable.Cell {
		n, ok := numberValue(v)
		if !ok {
			return datatable.Cell{Text: datatable.FormatValue(v)}
		}
		return datatable.Cell{Text: fmt.Sprintf("%.0f%%", n), Class: "text-right tabular-nums"}
	})
}

// Date renders dates as "Jan 2, 2006". Unparsable values render raw.
func Date() datatable.Renderer {
	return datatable.Custom(func(v any, _ datatable.Row) datatable.Cell {
		var t time.Time
		switch d := v.(type) {
		case time.Time:
			t = d
		case string:
			parsed, ok := ParseDate(d)
			if !ok {
				return datatable.Cell{Text: d}
			}
			t = parsed
		default:
			return datatable.Cell{Text: datatable.FormatValue(v)}
		}
		if t.IsZero() {
			return datatable.Cell{}
		}
		return datatable.Cell{Text: t.Format("Jan 2, 2006"), Class: "whitespace-nowrap"}
	})
}

// Badge renders a status pill. colors maps values to classes; unknown values
// get a neutral pill.
func Badge(colors map[string]string) datatable.Renderer {
	return datatable.Custom(func(v any, _ datatable.Row) datatable.Cell {
		text := datatable.FormatValue(v)
		if text == "" {
			return datatable.Cell{}
		}
		color, ok := colors[text]
		if !ok {
			color = colors[strings.ToLower(text)]
		}
		if color == "" {
			color = badgePalette[len(badgePalette)-1]
		}
		return datatable.Cell{Text: text, Class: badgeBase + " " + color}
	})
}

// Email renders a mailto link.
func Email() datatable.Renderer {
	return datatable.Custom(func(v any, _ datatable.Row) datatable.Cell {
		text := datatable.FormatValue(v)
		if text == "" {
			return datatable.Cell{}
		}
		return datatable.Cell{Text: text, Href: "mailto:" + text, Class: "text-blue-600 hover:underline"}
	})
}

func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		return ParseNumber(n)
	}
	return 0, false
}
