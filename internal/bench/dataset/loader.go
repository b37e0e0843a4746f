package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// LoadManifest reads a labeled split manifest CSV with a header row and
// columns id,label[,path]. Labels must be 0 (real) or 1 (fake).
func LoadManifest(path, split string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	records, err := readRecords(f)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("manifest %s has no samples", path)
	}

	m := &Manifest{Split: split, Samples: make([]Sample, 0, len(records))}
	seen := make(map[string]bool, len(records))

	for i, rec := range records {
		id := rec["id"]
		if id == "" {
			return nil, fmt.Errorf("manifest row %d has no id", i)
		}
		if seen[id] {
			return nil, fmt.Errorf("manifest has duplicate id %q", id)
		}
		seen[id] = true

		label, err := strconv.Atoi(rec["label"])
		if err != nil {
			return nil, fmt.Errorf("manifest id %q: invalid label %q", id, rec["label"])
		}

		m.Samples = append(m.Samples, Sample{
			ID:    id,
			Path:  rec["path"],
			Label: label,
		})
	}

	return m, nil
}

// LoadPredictions reads a predictions CSV with a header row and columns
// id,probability, as exported by the training pipeline.
func LoadPredictions(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open predictions: %w", err)
	}
	defer f.Close()

	records, err := readRecords(f)
	if err != nil {
		return nil, fmt.Errorf("read predictions %s: %w", path, err)
	}

	preds := make(map[string]float64, len(records))
	for i, rec := range records {
		id := rec["id"]
		if id == "" {
			return nil, fmt.Errorf("predictions row %d has no id", i)
		}
		if _, ok := preds[id]; ok {
			return nil, fmt.Errorf("predictions have duplicate id %q", id)
		}
		p, err := strconv.ParseFloat(rec["probability"], 64)
		if err != nil {
			return nil, fmt.Errorf("predictions id %q: invalid probability %q", id, rec["probability"])
		}
		preds[id] = p
	}

	return preds, nil
}

// Align joins predictions onto a manifest by sample id, preserving manifest
// order, and returns the validated prediction set.
func Align(m *Manifest, preds map[string]float64) (PredictionSet, error) {
	probs := make([]float64, len(m.Samples))
	labels := make([]int, len(m.Samples))

	for i, s := range m.Samples {
		p, ok := preds[s.ID]
		if !ok {
			return PredictionSet{}, fmt.Errorf("no prediction for sample %q", s.ID)
		}
		probs[i] = p
		labels[i] = s.Label
	}

	return New(probs, labels)
}

func readRecords(r io.Reader) ([]map[string]string, error) {
	csvReader := csv.NewReader(r)

	headers, err := csvReader.Read()
	if err != nil {
		return nil, err
	}

	var records []map[string]string
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		record := make(map[string]string, len(headers))
		for i, h := range headers {
			record[h] = row[i]
		}
		records = append(records, record)
	}

	return records, nil
}
