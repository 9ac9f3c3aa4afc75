package termbridge

import (
	"fmt"
	"time"
)

type calendarSpec struct {
	year, month, day int
	events           map[string]Style
	monthHeader      bool
	weekdaysHeader   bool
	surrounding      Style
	showSurrounding  bool
	headerStyle      Style
	dayStyle         Style
	block            *Block
}

func parseCalendar(node Node, styles *StyleResolver) (calendarSpec, error) {
	ar := newAttrReader(node, styles)
	now := time.Now()
	spec := calendarSpec{
		year:           ar.int("year", now.Year()),
		month:          ar.int("month", int(now.Month())),
		day:            ar.int("day", 0),
		monthHeader:    ar.bool("show_month_header", false),
		weekdaysHeader: ar.bool("show_weekdays_header", true),
		headerStyle:    ar.style("header_style"),
		dayStyle:       ar.style("day_style"),
		block:          ar.block(),
	}
	if ar.has("default_style") && !ar.has("day_style") {
		spec.dayStyle = ar.style("default_style")
	}
	if ar.has("show_surrounding") {
		spec.showSurrounding = true
		spec.surrounding = ar.style("show_surrounding")
	}
	if spec.month < 1 || spec.month > 12 {
		ar.setErr("month", invalidf("out of range: %d", spec.month))
	}
	if v, ok := ar.raw("events"); ok {
		events, err := ar.styles.calendarEvents(v)
		ar.setErr("events", err)
		spec.events = events
	}
	return spec, ar.Err()
}

// calendarEvents resolves a date-to-style mapping. Keys are YYYY-MM-DD
// strings or time.Time values.
func (r *StyleResolver) calendarEvents(v any) (map[string]Style, error) {
	out := make(map[string]Style)
	switch m := v.(type) {
	case map[string]Style:
		for k, s := range m {
			if _, err := time.Parse(time.DateOnly, k); err != nil {
				return nil, invalidf("bad date %q", k)
			}
			out[k] = s
		}
	case map[time.Time]Style:
		for k, s := range m {
			out[k.Format(time.DateOnly)] = s
		}
	case map[string]any:
		for k, desc := range m {
			if _, err := time.Parse(time.DateOnly, k); err != nil {
				return nil, invalidf("bad date %q", k)
			}
			s, err := r.Style(desc)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out[k] = s
		}
	default:
		return nil, invalidf("expected mapping, got %T", v)
	}
	return out, nil
}

// styleOf returns the style of one date cell.
func (s calendarSpec) styleOf(t time.Time, inMonth bool) Style {
	style := s.dayStyle
	if !inMonth {
		style = style.Patch(s.surrounding)
	}
	if ev, ok := s.events[t.Format(time.DateOnly)]; ok {
		style = style.Patch(ev)
	}
	if inMonth && s.day > 0 && t.Day() == s.day {
		style = style.Add(ModReversed)
	}
	return style
}

func (p *renderPass) renderCalendar(area Rect, node Node) error {
	spec, err := parseCalendar(node, p.r.styles)
	if err != nil {
		return err
	}
	inner := p.applyBlock(area, spec.block)
	if inner.IsEmpty() {
		return nil
	}
	first := time.Date(spec.year, time.Month(spec.month), 1, 0, 0, 0, 0, time.UTC)
	y := inner.Y
	if spec.monthHeader {
		title := first.Format("January 2006")
		drawLine(p.buf, inner, y, Line{Spans: []Span{{Content: title, Style: spec.headerStyle}}}, AlignCenter)
		y++
	}
	if spec.weekdaysHeader && y < inner.Bottom() {
		p.buf.WriteStringN(inner.X, y, " Su Mo Tu We Th Fr Sa", inner.Width, spec.headerStyle)
		y++
	}

	day := first.AddDate(0, 0, -int(first.Weekday()))
	for ; y < inner.Bottom(); y++ {
		if day.Month() != first.Month() && day.After(first) {
			break
		}
		for col := 0; col < 7; col++ {
			inMonth := day.Month() == first.Month()
			x := inner.X + col*3
			if inMonth || spec.showSurrounding {
				text := fmt.Sprintf("%3d", day.Day())
				p.buf.WriteStringN(x, y, text, inner.Right()-x, spec.styleOf(day, inMonth))
			}
			day = day.AddDate(0, 0, 1)
		}
	}
	return nil
}
