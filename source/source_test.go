package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTrimsHeaderAndKeepsShortRows(t *testing.T) {
	in := "\ufeff Timestamp , TempC,Pressure\n" +
		"2024-05-01 00:00:00,50,100\n" +
		"\n" +
		"2024-05-01 01:00:00,60\n"
	rows, err := Read(strings.NewReader(in), "trend.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"Timestamp", "TempC", "Pressure"}, rows.Header)
	require.Len(t, rows.Records, 2)
	assert.Equal(t, []string{"2024-05-01 01:00:00", "60"}, rows.Records[1])
}

func TestReadEmptyIsStructural(t *testing.T) {
	_, err := Read(strings.NewReader(""), "empty.csv")
	require.Error(t, err)
	assert.True(t, IsStructural(err))
	assert.Equal(t, "empty.csv: file is empty", err.Error())
}

func TestReadBrokenQuoting(t *testing.T) {
	_, err := Read(strings.NewReader("a,b\n\"x,1\n"), "bad.csv")
	require.Error(t, err)
	assert.False(t, IsStructural(err))
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alarms.csv")
	require.NoError(t, os.WriteFile(path, []byte("timestamp,tag\n2024-05-01 00:30:00,T1\n"), 0o600))
	rows, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "alarms.csv", rows.Name)
	assert.Len(t, rows.Records, 1)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSniff(t *testing.T) {
	assert.Equal(t, KindAlarms, Sniff(&Rows{Header: []string{"Timestamp", "Tag", "Type", "Description"}}))
	assert.Equal(t, KindAlarms, Sniff(&Rows{Header: []string{"TIMESTAMP", "tag", "description"}}))
	assert.Equal(t, KindTrend, Sniff(&Rows{Header: []string{"Timestamp", "TempC", "Tag"}}))
	assert.Equal(t, KindTrend, Sniff(&Rows{Header: []string{"Timestamp", "Description"}}))
	assert.Equal(t, KindTrend, Sniff(&Rows{Header: []string{"Timestamp", "XMEAS_1", "XMEAS_2"}}))
	assert.Equal(t, KindUnknown, Sniff(&Rows{Header: []string{"Timestamp"}}))
	assert.Equal(t, KindUnknown, Sniff(nil))
}

func TestReportText(t *testing.T) {
	r := Report{Name: "trend.csv"}
	r.Keep()
	r.Keep()
	assert.Equal(t, "", r.Warning())
	r.Skip()
	assert.Equal(t, 3, r.Total)
	assert.Equal(t, "Skipped 1 row of trend.csv due to parsing issues", r.Warning())
	r.Loaded = 12500
	assert.Equal(t, "Loaded 12,500 rows from trend.csv", r.Summary())
}
