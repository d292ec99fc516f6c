package eventlog

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"pktverify/pkg/model"
)

const maxLineSize = 1 << 20

var (
	errFieldCount    = errors.New("expected exactly two comma-separated fields")
	errNegativeBytes = errors.New("byte_count must not be negative")
)

// Reader 按文件顺序逐行产出 Event。需要重新遍历时重新 Open 即可。
type Reader struct {
	f    *os.File
	sc   *bufio.Scanner
	line int
	ev   model.Event
	err  error
}

func Open(path string) (*Reader, error) {
	f, err := openLog(path)
	if err != nil {
		return nil, err
	}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{f: f, sc: sc}, nil
}

// Next 读取下一条 Event；返回 false 时检查 Err。
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}
	if !r.sc.Scan() {
		if errors.Is(r.sc.Err(), bufio.ErrTooLong) {
			r.err = &FormatError{
				Line:    r.line + 1,
				Content: fmt.Sprintf("<line longer than %d bytes>", maxLineSize),
				Err:     r.sc.Err(),
			}
		}
		return false
	}
	r.line++
	ev, err := ParseLine(r.line, r.sc.Text())
	if err != nil {
		r.err = err
		return false
	}
	r.ev = ev
	return true
}

func (r *Reader) Event() model.Event {
	return r.ev
}

func (r *Reader) Err() error {
	if r.err != nil {
		return r.err
	}
	if err := r.sc.Err(); err != nil {
		return errors.Wrapf(err, "read %s", r.f.Name())
	}
	return nil
}

func (r *Reader) Close() error {
	return r.f.Close()
}

// ReadFile 一次性读完整个文本日志。
func ReadFile(path string) ([]model.Event, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	out := make([]model.Event, 0, 1024)
	for r.Next() {
		out = append(out, r.Event())
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseLine 解析一行 "<timestamp>,<byte_count>"，lineNo 从 1 开始。
func ParseLine(lineNo int, raw string) (model.Event, error) {
	line := strings.TrimSpace(raw)
	fields := strings.Split(line, ",")
	if len(fields) != 2 {
		return model.Event{}, &FormatError{Line: lineNo, Content: line, Err: errFieldCount}
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
	if err != nil {
		return model.Event{}, &FormatError{Line: lineNo, Content: line, Err: err}
	}
	n, err := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64)
	if err != nil {
		return model.Event{}, &FormatError{Line: lineNo, Content: line, Err: err}
	}
	if n < 0 {
		return model.Event{}, &FormatError{Line: lineNo, Content: line, Err: errNegativeBytes}
	}
	return model.Event{Timestamp: ts, ByteCount: n}, nil
}

func openLog(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, errors.Wrapf(err, "open %s", path)
	}
	return f, nil
}
