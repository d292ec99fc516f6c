package eventlog

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"pktverify/pkg/model"
)

const DefaultTable = "events"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ReadSQLite 从 SQLite 事件表读取 (timestamp, byte_count)，按 rowid 即写入顺序返回。
func ReadSQLite(ctx context.Context, path, table string) ([]model.Event, error) {
	if table == "" {
		table = DefaultTable
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("表名非法：%q", table)
	}
	// sql.Open 对不存在的文件会静默建库，这里先确认文件存在。
	f, err := openLog(path)
	if err != nil {
		return nil, err
	}
	_ = f.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open sqlite %s", path)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT timestamp, byte_count FROM `+table+` ORDER BY rowid;`)
	if err != nil {
		return nil, errors.Wrapf(err, "query %s.%s", path, table)
	}
	defer rows.Close()

	out := make([]model.Event, 0, 1024)
	for rows.Next() {
		var ev model.Event
		if err := rows.Scan(&ev.Timestamp, &ev.ByteCount); err != nil {
			return nil, &FormatError{Line: len(out) + 1, Content: fmt.Sprintf("%s row %d", table, len(out)+1), Err: err}
		}
		if ev.ByteCount < 0 {
			return nil, &FormatError{
				Line:    len(out) + 1,
				Content: fmt.Sprintf("%d,%d", ev.Timestamp, ev.ByteCount),
				Err:     errNegativeBytes,
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "iterate %s.%s", path, table)
	}
	return out, nil
}
