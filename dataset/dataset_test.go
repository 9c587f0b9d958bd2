package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jjmacky/fluent-lm/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRecord_Field(t *testing.T) {
	rec := Record{"input": "What is 2+2?", "answer": "4"}
	v, err := rec.Field("input")
	if err != nil {
		t.Fatal(err)
	}
	if v != "What is 2+2?" {
		t.Errorf("got %v", v)
	}
	if _, err := rec.Field("missing"); !errors.IsCode(err, errors.ErrCodeMissingContextKey) {
		t.Fatalf("expected MISSING_CONTEXT_KEY, got %v", err)
	}
}

func TestSlice_LenAndRecord(t *testing.T) {
	ds := Slice{{"input": "a"}, {"input": "b"}}
	if ds.Len() != 2 {
		t.Errorf("expected 2, got %d", ds.Len())
	}
	if ds.Record(1)["input"] != "b" {
		t.Errorf("got %v", ds.Record(1))
	}
}

func TestFromJSONFile(t *testing.T) {
	path := writeFile(t, "ds.json", `[{"input":"a","answer":"1"},{"input":"b","answer":"2"}]`)
	ds, err := FromJSONFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if ds.Len() != 2 || ds.Record(0)["input"] != "a" {
		t.Errorf("got %v", ds)
	}
}

func TestFromJSONFile_Invalid(t *testing.T) {
	path := writeFile(t, "bad.json", `{"not":"an array"}`)
	if _, err := FromJSONFile(path); err == nil {
		t.Fatal("expected error for non-array JSON")
	}
}

func TestFromYAMLFile(t *testing.T) {
	path := writeFile(t, "ds.yml", "- input: a\n  answer: 1\n- input: b\n  answer: 2\n")
	ds, err := FromYAMLFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if ds.Len() != 2 || ds.Record(1)["input"] != "b" {
		t.Errorf("got %v", ds)
	}
	if ds.Record(0)["answer"] != 1 {
		t.Errorf("expected YAML int, got %T %v", ds.Record(0)["answer"], ds.Record(0)["answer"])
	}
}

func TestFromCSVFile(t *testing.T) {
	path := writeFile(t, "ds.csv", "input,answer\na,1\nb,2\n")
	ds, err := FromCSVFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if ds.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", ds.Len())
	}
	if ds.Record(0)["input"] != "a" || ds.Record(0)["answer"] != "1" {
		t.Errorf("got %v", ds.Record(0))
	}
}

func TestFromCSVFile_Empty(t *testing.T) {
	path := writeFile(t, "empty.csv", "")
	ds, err := FromCSVFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if ds.Len() != 0 {
		t.Errorf("expected empty dataset, got %d", ds.Len())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := FromJSONFile("/nonexistent/ds.json"); err == nil {
		t.Error("expected error for missing JSON file")
	}
	if _, err := FromYAMLFile("/nonexistent/ds.yml"); err == nil {
		t.Error("expected error for missing YAML file")
	}
	if _, err := FromCSVFile("/nonexistent/ds.csv"); err == nil {
		t.Error("expected error for missing CSV file")
	}
}
