package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaily_DayLabel(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2020-06-21", "Sun 21st"},
		{"2020-03-22", "Sun 22nd"},
		{"2021-03-23", "Tue 23rd"},
		{"2021-03-01", "Mon 1st"},
		{"2021-01-03", "Sun 3rd"},
		{"2021-01-11", "Mon 11th"},
		{"2021-03-12", "Fri 12th"},
		{"2021-03-13", "Sat 13th"},
		{"2021-03-31", "Wed 31st"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			day, err := time.Parse("2006-01-02", tt.date)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, NewDaily("/j", day).DayLabel())
		})
	}
}

func TestDaily_Names(t *testing.T) {
	d := NewDaily("/j", time.Date(2021, time.March, 7, 9, 0, 0, 0, time.UTC))

	assert.Equal(t, filepath.Join("/j", "2021", "03"), d.MonthDir())
	assert.Equal(t, filepath.Join("/j", "2021", "03", "resolved"), d.ResolvedDir())
	assert.Equal(t, "blotter-2021-03-07.md", d.BlotterFileName())
	assert.Equal(t, "resolved-2021-03-07.md", d.ResolvedFileName())
	assert.Equal(t, filepath.Join("/j", "2021", "03", "blotter-2021-03-07.md"), d.BlotterPath())
	assert.Equal(t, filepath.Join("/j", "2021", "03", "resolved", "resolved-2021-03-07.md"), d.ResolvedPath())
}
