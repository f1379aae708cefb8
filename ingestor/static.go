package ingestor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Record is one line of a records file together with its parsed key.
type Record struct {
	Key  int64
	Line string
}

// RecordKey returns r.Key. It is the key function records are sorted by.
func RecordKey(r Record) int64 { return r.Key }

// skipLine reports whether a trimmed line carries no data.
func skipLine(line string) bool {
	return line == "" || strings.HasPrefix(line, "#")
}

// ParseInts reads one signed integer per line. Blank lines and lines
// starting with '#' are skipped.
func ParseInts(r io.Reader) ([]int64, error) {
	var values []int64
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if skipLine(line) {
			continue
		}
		v, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return values, nil
}

func ReadInts(path string) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseInts(f)
}

// ParseRecords reads comma-separated lines, taking the integer in field
// keyField (zero based) as the key. The full line is kept as payload.
func ParseRecords(r io.Reader, keyField int) ([]Record, error) {
	if keyField < 0 {
		return nil, fmt.Errorf("negative key field %d", keyField)
	}
	var records []Record
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if skipLine(line) {
			continue
		}
		fields := strings.Split(line, ",")
		if keyField >= len(fields) {
			return nil, fmt.Errorf("line %d: has %d fields, key field is %d", lineNo, len(fields), keyField)
		}
		key, err := strconv.ParseInt(strings.TrimSpace(fields[keyField]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		records = append(records, Record{Key: key, Line: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func ReadRecords(path string, keyField int) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseRecords(f, keyField)
}

// WriteInts writes values one per line. An empty path writes to stdout.
func WriteInts(path string, values []int64) error {
	return writeLines(path, len(values), func(w *bufio.Writer, i int) {
		w.WriteString(strconv.FormatInt(values[i], 10))
	})
}

// WriteRecords writes the payload lines of records in order. An empty path
// writes to stdout.
func WriteRecords(path string, records []Record) error {
	return writeLines(path, len(records), func(w *bufio.Writer, i int) {
		w.WriteString(records[i].Line)
	})
}

func writeLines(path string, n int, line func(w *bufio.Writer, i int)) error {
	if path == "" {
		return emitLines(os.Stdout, n, line)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return closeAfter(f, emitLines(f, n, line))
}

func emitLines(out io.Writer, n int, line func(w *bufio.Writer, i int)) error {
	w := bufio.NewWriter(out)
	for i := 0; i < n; i++ {
		line(w, i)
		w.WriteByte('\n')
	}
	return w.Flush()
}

// closeAfter closes c and returns err, or the close error if err is nil.
func closeAfter(c io.Closer, err error) error {
	if cerr := c.Close(); err == nil {
		return cerr
	}
	return err
}
