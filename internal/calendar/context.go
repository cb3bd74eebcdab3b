// Package calendar exposes the localized labels and formatting settings a
// date picker needs, read from the uniface.calendar resources.
package calendar

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/agentic-research/uniface/internal/resource"
)

const (
	DefaultDateFormat  = "YYYY-MM-DD"
	DefaultTimeFormat  = "HH:mm:ss"
	DefaultConfirmText = "OK"
	DefaultWeekBegin   = time.Monday

	resourcePrefix = "uniface.calendar"
)

// ErrInvalidWeekBegin is returned for a first weekday outside Sunday..Saturday.
var ErrInvalidWeekBegin = errors.New("invalid week begin")

// Context holds the calendar labels of one locale plus the display
// settings. Label accessors return copies.
type Context struct {
	months        []string
	monthsAbbr    []string
	weekTitle     []string
	weekTitleAbbr []string
	confirmText   string

	weekBegin  time.Weekday
	dateFormat string
	timeFormat string
}

// New reads the calendar labels from r. Missing abbreviations fall back to
// the full names of the same locale, and a missing confirm text falls back
// to "OK".
func New(r *resource.Resolver) *Context {
	c := &Context{
		weekBegin:  DefaultWeekBegin,
		dateFormat: DefaultDateFormat,
		timeFormat: DefaultTimeFormat,
	}
	c.months = labels(r, "months")
	c.monthsAbbr = labels(r, "monthsAbbr")
	if c.monthsAbbr == nil {
		c.monthsAbbr = slices.Clone(c.months)
	}
	c.weekTitle = labels(r, "weekTitle")
	c.weekTitleAbbr = labels(r, "weekTitleAbbr")
	if c.weekTitleAbbr == nil {
		c.weekTitleAbbr = slices.Clone(c.weekTitle)
	}
	c.confirmText = r.TextDefault(resourcePrefix+".confirmText", DefaultConfirmText)
	return c
}

func labels(r *resource.Resolver, name string) []string {
	v, ok := r.Strings(resourcePrefix + "." + name)
	if !ok || len(v) == 0 {
		return nil
	}
	return v
}

func (c *Context) Months() []string { return slices.Clone(c.months) }
func (c *Context) MonthsAbbr() []string { return slices.Clone(c.monthsAbbr) }
func (c *Context) WeekTitle() []string { return slices.Clone(c.weekTitle) }
func (c *Context) WeekTitleAbbr() []string { return slices.Clone(c.weekTitleAbbr) }
func (c *Context) ConfirmText() string { return c.confirmText }

// WeekBegin is the weekday shown in the first calendar column.
func (c *Context) WeekBegin() time.Weekday { return c.weekBegin }

// SetWeekBegin changes the first calendar column. d must be in
// time.Sunday..time.Saturday.
func (c *Context) SetWeekBegin(d time.Weekday) error {
	if d < time.Sunday || d > time.Saturday {
		return fmt.Errorf("%w: %d", ErrInvalidWeekBegin, int(d))
	}
	c.weekBegin = d
	return nil
}

func (c *Context) DateFormat() string { return c.dateFormat }
func (c *Context) SetDateFormat(f string) { c.dateFormat = f }
func (c *Context) TimeFormat() string { return c.timeFormat }
func (c *Context) SetTimeFormat(f string) { c.timeFormat = f }

// OrderedWeekTitles returns the week titles starting at WeekBegin.
func (c *Context) OrderedWeekTitles(abbr bool) []string {
	titles := c.weekTitle
	if abbr {
		titles = c.weekTitleAbbr
	}
	n := len(titles)
	out := make([]string, n)
	for i := range out {
		out[i] = titles[(int(c.weekBegin)+i)%n]
	}
	return out
}

// MonthName returns the localized name of m, or m's English name when the
// locale does not provide one.
func (c *Context) MonthName(m time.Month, abbr bool) string {
	names := c.months
	if abbr {
		names = c.monthsAbbr
	}
	if i := int(m) - 1; i >= 0 && i < len(names) {
		return names[i]
	}
	return m.String()
}

// FormatDate renders t with the date format.
func (c *Context) FormatDate(t time.Time) string { return c.Format(t, c.dateFormat) }

// FormatTime renders t with the time format.
func (c *Context) FormatTime(t time.Time) string { return c.Format(t, c.timeFormat) }

// Format renders t with a pattern of YYYY, MMMM, MMM, MM, DD, HH, mm and ss
// tokens. MMMM and MMM use the localized month names.
func (c *Context) Format(t time.Time, pattern string) string {
	return strings.NewReplacer(
		"YYYY", fmt.Sprintf("%04d", t.Year()),
		"MMMM", c.MonthName(t.Month(), false),
		"MMM", c.MonthName(t.Month(), true),
		"MM", fmt.Sprintf("%02d", int(t.Month())),
		"DD", fmt.Sprintf("%02d", t.Day()),
		"HH", fmt.Sprintf("%02d", t.Hour()),
		"mm", fmt.Sprintf("%02d", t.Minute()),
		"ss", fmt.Sprintf("%02d", t.Second()),
	).Replace(pattern)
}
