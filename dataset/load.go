package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FromJSONFile loads a dataset from a JSON file containing an array of objects.
func FromJSONFile(path string) (Slice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("dataset: parse %s: %w", path, err)
	}
	return Slice(records), nil
}

// FromYAMLFile loads a dataset from a YAML file containing a list of mappings.
func FromYAMLFile(path string) (Slice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}
	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("dataset: parse %s: %w", path, err)
	}
	return Slice(records), nil
}

// FromCSVFile loads a dataset from a CSV file. The first row is the header;
// every field value is a string.
func FromCSVFile(path string) (Slice, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return Slice{}, nil
	}

	header := rows[0]
	records := make(Slice, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
