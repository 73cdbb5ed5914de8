package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrame_ColumnPresence(t *testing.T) {
	f := NewFrame([]string{"location", "age", "age"}, nil)

	assert.True(t, f.Has(ColAge))
	assert.False(t, f.Has(ColRace))
	assert.Equal(t, []string{"location", "age"}, f.Columns())
	assert.Equal(t, []string{"race", "sex"}, f.Missing(ColAge, ColRace, ColSex))
	assert.Empty(t, f.Missing(ColAge))

	f.AddColumn(ColYear)
	assert.Equal(t, []string{"location", "age", "Year"}, f.Columns())
}

func TestFrame_Filter(t *testing.T) {
	f := NewFrame([]string{ColYear}, []Incident{{Year: 2024}, {Year: 2025}, {Year: 0}, {Year: 2025}})

	dropped := f.Filter(func(inc Incident) bool { return inc.Year != 2025 })

	assert.Equal(t, 2, dropped)
	assert.Equal(t, 2, f.Len())
	assert.Equal(t, 2024, f.Rows[0].Year)
	assert.Zero(t, f.Rows[1].Year)
}

func TestFrame_Column(t *testing.T) {
	rows := []Incident{
		{Date: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), Age: 20, HasAge: true, Race: "B", Raw: map[string]string{"code": "3", "ward": "A", "note": "1"}},
		{Age: 30, HasAge: true, Raw: map[string]string{"code": "4.5", "ward": "12", "note": "NaN"}},
		{Race: "W", Raw: map[string]string{"code": "", "ward": "", "note": "Inf"}},
		{Age: -5, HasAge: true, Raw: map[string]string{}},
		{Age: 200, HasAge: true, Raw: map[string]string{}},
	}
	f := NewFrame([]string{ColDate, ColAge, ColRace, "code", "ward", "note"}, rows)

	age, err := f.Column(ColAge)
	require.NoError(t, err)
	assert.Equal(t, KindNumeric, age.Kind)
	assert.Equal(t, []float64{20, 30}, age.Numbers, "out-of-range ages are missing")

	date, err := f.Column(ColDate)
	require.NoError(t, err)
	assert.Equal(t, KindTemporal, date.Kind)
	assert.Equal(t, 1, date.Count())

	race, err := f.Column(ColRace)
	require.NoError(t, err)
	assert.Equal(t, KindCategorical, race.Kind)
	assert.Equal(t, []string{"B", "W"}, race.Strings)

	code, err := f.Column("code")
	require.NoError(t, err)
	assert.Equal(t, KindNumeric, code.Kind)
	assert.Equal(t, []float64{3, 4.5}, code.Numbers)

	ward, err := f.Column("ward")
	require.NoError(t, err)
	assert.Equal(t, KindCategorical, ward.Kind)
	assert.Equal(t, []string{"A", "12"}, ward.Strings)

	note, err := f.Column("note")
	require.NoError(t, err)
	assert.Equal(t, KindCategorical, note.Kind, "non-finite tokens are text")
	assert.Equal(t, []string{"1", "NaN", "Inf"}, note.Strings)

	_, err = f.Column(ColSex)
	assert.ErrorIs(t, err, ErrMissingColumns)
}
