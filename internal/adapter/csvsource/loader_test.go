package csvsource

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/shooting-analytics/internal/domain"
)

const sample = `location,date_,time,point_x,point_y,age,race,sex,wound
1500 BLOCK N 22ND ST,2019-06-14,21:35:00,-75.172,39.978,24,B,M,head
5200 BLOCK CHESTNUT ST,2020-01-02,03:10:00,-75.226,39.958,unknown,W,F,leg
,2021-07-04,,,,17,B,M,
`

func TestRead(t *testing.T) {
	frame, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, []string{"location", "date_", "time", "point_x", "point_y", "age", "race", "sex", "wound"}, frame.Columns())
	require.Equal(t, 3, frame.Len())

	first := frame.Rows[0]
	assert.Equal(t, "1500 BLOCK N 22ND ST", first.Location)
	assert.Equal(t, time.Date(2019, 6, 14, 0, 0, 0, 0, time.UTC), first.Date)
	assert.True(t, first.HasPoint)
	assert.Equal(t, -75.172, first.Point.Lon)
	assert.Equal(t, "head", first.Raw["wound"])

	second := frame.Rows[1]
	assert.False(t, second.HasAge)
	assert.Equal(t, "F", second.Sex)

	third := frame.Rows[2]
	assert.Empty(t, third.Location)
	assert.False(t, third.HasTime)
	assert.False(t, third.HasPoint)
	assert.Equal(t, 17.0, third.Age)
	assert.Empty(t, third.Raw["wound"])
}

func TestRead_DateAlias(t *testing.T) {
	frame, err := Read(strings.NewReader("\ufeffDate ,time\n2019-06-14,01:00:00\n"))
	require.NoError(t, err)

	assert.True(t, frame.Has(domain.ColDate))
	assert.False(t, frame.Rows[0].Date.IsZero())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.csv")
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "incidents.csv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	frame, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, frame.Len())
}
