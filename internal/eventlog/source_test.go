package eventlog

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"pktverify/pkg/model"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatText, f)

	f, err = ParseFormat("PCAP")
	require.NoError(t, err)
	require.Equal(t, FormatPcap, f)

	_, err = ParseFormat("csv")
	require.Error(t, err)
}

func newEventDB(t *testing.T, table string, rows [][2]int64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.sqlite")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE ` + table + ` (timestamp INTEGER, byte_count INTEGER);`)
	require.NoError(t, err)
	for _, r := range rows {
		_, err = db.Exec(`INSERT INTO `+table+` (timestamp, byte_count) VALUES (?, ?);`, r[0], r[1])
		require.NoError(t, err)
	}
	return path
}

func TestReadSQLite_PreservesInsertOrder(t *testing.T) {
	path := newEventDB(t, "events", [][2]int64{{30, 3}, {10, 1}, {20, 2}})

	got, err := Load(context.Background(), Source{Path: path, Format: FormatSQLite})
	require.NoError(t, err)
	require.Equal(t, []model.Event{
		{Timestamp: 30, ByteCount: 3},
		{Timestamp: 10, ByteCount: 1},
		{Timestamp: 20, ByteCount: 2},
	}, got)
}

func TestReadSQLite_CustomTable(t *testing.T) {
	path := newEventDB(t, "rx_events", [][2]int64{{1, 100}})

	got, err := ReadSQLite(context.Background(), path, "rx_events")
	require.NoError(t, err)
	require.Equal(t, []model.Event{{Timestamp: 1, ByteCount: 100}}, got)

	_, err = ReadSQLite(context.Background(), path, "rx_events; DROP TABLE rx_events")
	require.Error(t, err)
}

func TestReadSQLite_NegativeSize(t *testing.T) {
	path := newEventDB(t, "events", [][2]int64{{1, 100}, {2, -1}})

	_, err := ReadSQLite(context.Background(), path, "")
	var fe *FormatError
	require.True(t, errors.As(err, &fe), "err=%v", err)
	require.Equal(t, 2, fe.Line)
}

func TestLoad_NotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	for _, f := range []Format{FormatText, FormatPcap, FormatSQLite} {
		_, err := Load(context.Background(), Source{Path: missing, Format: f})
		var nf *NotFoundError
		require.True(t, errors.As(err, &nf), "format=%s err=%v", f, err)
	}
}
