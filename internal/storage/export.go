// ABOUTME: Export and import of metric observations.
// ABOUTME: Supports JSON, CSV, and YAML export; JSON and CSV import.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/openvital/vital/internal/models"
)

// ExportCSV renders metrics as CSV, optionally filtered by type and
// inclusive date bounds.
func ExportCSV(s Store, metricType string, from, to time.Time) (string, error) {
	entries, err := s.QueryAll(metricType, from, to)
	if err != nil {
		return "", fmt.Errorf("export csv: %w", err)
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write([]string{"timestamp", "type", "value", "unit", "note", "tags", "source"}); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range entries {
		note := ""
		if e.Note != nil {
			note = *e.Note
		}
		tags := "[]"
		if len(e.Tags) > 0 {
			b, err := json.Marshal(e.Tags)
			if err != nil {
				return "", fmt.Errorf("marshal tags: %w", err)
			}
			tags = string(b)
		}
		record := []string{
			e.Timestamp.UTC().Format(time.RFC3339),
			e.MetricType,
			strconv.FormatFloat(e.Value, 'f', -1, 64),
			e.Unit,
			note,
			tags,
			e.Source,
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return sb.String(), nil
}

// ExportJSON renders metrics as a pretty-printed JSON array.
func ExportJSON(s Store, metricType string, from, to time.Time) (string, error) {
	entries, err := s.QueryAll(metricType, from, to)
	if err != nil {
		return "", fmt.Errorf("export json: %w", err)
	}
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal metrics: %w", err)
	}
	return string(b), nil
}

// ExportYAML renders metrics as a YAML sequence.
func ExportYAML(s Store, metricType string, from, to time.Time) (string, error) {
	entries, err := s.QueryAll(metricType, from, to)
	if err != nil {
		return "", fmt.Errorf("export yaml: %w", err)
	}
	b, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshal metrics: %w", err)
	}
	return string(b), nil
}

type importEntry struct {
	MetricType string   `json:"type"`
	Value      float64  `json:"value"`
	Timestamp  string   `json:"timestamp"`
	Note       *string  `json:"note"`
	Tags       []string `json:"tags"`
	Source     string   `json:"source"`
}

// ImportJSON inserts metrics from a JSON array. Value, type, and timestamp
// round-trip exactly through ExportJSON. Returns the count inserted.
func ImportJSON(s Store, data string) (int, error) {
	var entries []importEntry
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		return 0, fmt.Errorf("parse import json: %w", err)
	}

	count := 0
	for _, e := range entries {
		m := models.NewMetric(e.MetricType, e.Value)
		if e.Timestamp != "" {
			t, err := time.Parse(time.RFC3339, e.Timestamp)
			if err != nil {
				return count, fmt.Errorf("parse import timestamp %q: %w", e.Timestamp, err)
			}
			m.Timestamp = t.UTC()
		}
		m.Note = e.Note
		m.Tags = e.Tags
		m.Source = e.Source
		if m.Source == "" {
			m.Source = models.SourceImport
		}
		if err := s.InsertMetric(m); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// ImportCSV inserts metrics from CSV in the ExportCSV column layout.
// Returns the count inserted.
func ImportCSV(s Store, data string) (int, error) {
	r := csv.NewReader(strings.NewReader(data))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("parse import csv: %w", err)
	}
	if len(records) > 0 {
		records = records[1:] // header
	}

	count := 0
	for _, fields := range records {
		if len(fields) < 3 {
			continue
		}
		ts, err := time.Parse(time.RFC3339, fields[0])
		if err != nil {
			return count, fmt.Errorf("parse import timestamp %q: %w", fields[0], err)
		}
		value, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return count, fmt.Errorf("parse import value %q: %w", fields[2], err)
		}
		metricType := fields[1]

		m := &models.Metric{
			ID:         uuid.New().String(),
			Timestamp:  ts.UTC(),
			Category:   models.CategoryOf(metricType),
			MetricType: metricType,
			Value:      value,
			Unit:       models.DefaultUnit(metricType),
			Source:     models.SourceImport,
		}
		if len(fields) > 3 && fields[3] != "" {
			m.Unit = fields[3]
		}
		if len(fields) > 4 && fields[4] != "" {
			note := fields[4]
			m.Note = &note
		}
		if len(fields) > 5 && fields[5] != "" && fields[5] != "[]" {
			if err := json.Unmarshal([]byte(fields[5]), &m.Tags); err != nil {
				m.Tags = nil
			}
		}
		if len(fields) > 6 && fields[6] != "" {
			m.Source = fields[6]
		}

		if err := s.InsertMetric(m); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
