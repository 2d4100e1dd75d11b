package journal

import (
	"fmt"
	"path/filepath"
	"time"
)

// Daily names the files and labels of one journal day.
type Daily struct {
	Root string
	Time time.Time
}

// NewDaily returns the day of t under root.
func NewDaily(root string, t time.Time) Daily {
	return Daily{Root: root, Time: t}
}

// DayLabel returns the weekday and ordinal day of month, e.g. "Sun 21st".
func (d Daily) DayLabel() string {
	return fmt.Sprintf("%s %d%s", d.Time.Format("Mon"), d.Time.Day(), ordinalSuffix(d.Time.Day()))
}

// MonthDir returns <root>/YYYY/MM.
func (d Daily) MonthDir() string {
	return filepath.Join(d.Root, d.Time.Format("2006"), d.Time.Format("01"))
}

// ResolvedDir returns the resolved subdirectory of the month.
func (d Daily) ResolvedDir() string {
	return filepath.Join(d.MonthDir(), "resolved")
}

// BlotterFileName returns blotter-YYYY-MM-DD.md.
func (d Daily) BlotterFileName() string {
	return "blotter-" + d.Time.Format("2006-01-02") + ".md"
}

// ResolvedFileName returns resolved-YYYY-MM-DD.md.
func (d Daily) ResolvedFileName() string {
	return "resolved-" + d.Time.Format("2006-01-02") + ".md"
}

// BlotterPath returns the full path of today's blotter.
func (d Daily) BlotterPath() string {
	return filepath.Join(d.MonthDir(), d.BlotterFileName())
}

// ResolvedPath returns the full path of today's resolved file.
func (d Daily) ResolvedPath() string {
	return filepath.Join(d.ResolvedDir(), d.ResolvedFileName())
}

func (d Daily) String() string {
	return fmt.Sprintf("%s %s %s", d.MonthDir(), d.BlotterFileName(), d.DayLabel())
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
