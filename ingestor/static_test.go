package ingestor

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseInts(t *testing.T) {
	input := "# latencies\n3\n\n-7\n  12  \n0\n# trailing\n"
	got, err := ParseInts(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseInts failed: %v", err)
	}
	want := []int64{3, -7, 12, 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected values. got=%v want=%v", got, want)
	}
}

func TestParseIntsInvalid(t *testing.T) {
	_, err := ParseInts(strings.NewReader("1\n2\nthree\n"))
	if err == nil {
		t.Fatal("expected error for non-integer line")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error should name the line, got %v", err)
	}
}

func TestParseRecords(t *testing.T) {
	input := "# id,key,name\na, 5 ,first\nb,-2,second\n\nc,5,third\n"
	got, err := ParseRecords(strings.NewReader(input), 1)
	if err != nil {
		t.Fatalf("ParseRecords failed: %v", err)
	}
	want := []Record{
		{Key: 5, Line: "a, 5 ,first"},
		{Key: -2, Line: "b,-2,second"},
		{Key: 5, Line: "c,5,third"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected records. got=%v want=%v", got, want)
	}
}

func TestParseRecordsErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		keyField int
	}{
		{"missing field", "a,1\nb\n", 1},
		{"bad key", "a,x\n", 1},
		{"negative field", "1\n", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseRecords(strings.NewReader(tt.input), tt.keyField); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}

func TestWriteAndReadInts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.txt")
	values := []int64{-9, 0, 4, 1 << 40}
	if err := WriteInts(path, values); err != nil {
		t.Fatalf("WriteInts failed: %v", err)
	}
	got, err := ReadInts(path)
	if err != nil {
		t.Fatalf("ReadInts failed: %v", err)
	}
	if !reflect.DeepEqual(got, values) {
		t.Errorf("got=%v want=%v", got, values)
	}
}

func TestWriteRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.csv")
	records := []Record{{Key: 1, Line: "x,1"}, {Key: 2, Line: "y,2"}}
	if err := WriteRecords(path, records); err != nil {
		t.Fatalf("WriteRecords failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "x,1\ny,2\n" {
		t.Errorf("unexpected file content %q", data)
	}
	got, err := ReadRecords(path, 1)
	if err != nil {
		t.Fatalf("ReadRecords failed: %v", err)
	}
	if !reflect.DeepEqual(got, records) {
		t.Errorf("got=%v want=%v", got, records)
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := ReadInts("/nonexistent/values.txt"); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := ReadRecords("/nonexistent/records.csv", 0); err == nil {
		t.Error("expected error for missing file")
	}
}

type failingCloser struct{ err error }

func (c failingCloser) Close() error { return c.err }

func TestCloseAfter(t *testing.T) {
	closeErr := errors.New("disk full")
	writeErr := errors.New("short write")

	if err := closeAfter(failingCloser{}, nil); err != nil {
		t.Errorf("clean close: got %v", err)
	}
	if err := closeAfter(failingCloser{closeErr}, nil); !errors.Is(err, closeErr) {
		t.Errorf("close error after a good flush must surface, got %v", err)
	}
	if err := closeAfter(failingCloser{closeErr}, writeErr); !errors.Is(err, writeErr) {
		t.Errorf("write error takes precedence, got %v", err)
	}
}

func TestWriteIntsUnwritablePath(t *testing.T) {
	if err := WriteInts(t.TempDir(), []int64{1}); err == nil {
		t.Error("expected error writing to a directory")
	}
}
