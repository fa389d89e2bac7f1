package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/chill/internal/sim"
)

type ExportData struct {
	ID             string             `json:"id"`
	Network        string             `json:"network"`
	Dt             float64            `json:"dt"`
	Duration       float64            `json:"duration"`
	SampleInterval float64            `json:"sample_interval"`
	NodeNames      []string           `json:"node_names"`
	Times          []float64          `json:"times"`
	Temperatures   [][]float64        `json:"temperatures"`
	Metrics        map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run as one indented JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, samples []sim.Sample) error {
	data := ExportData{
		ID:             meta.ID,
		Network:        meta.Network,
		Dt:             meta.Dt,
		Duration:       meta.Duration,
		SampleInterval: meta.SampleInterval,
		NodeNames:      meta.NodeNames,
		Times:          make([]float64, len(samples)),
		Temperatures:   make([][]float64, len(samples)),
		Metrics:        meta.Metrics,
	}
	for i, sample := range samples {
		data.Times[i] = sample.Time
		data.Temperatures[i] = sample.Temps
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV writes a run as CSV with node names in the header.
func ExportCSV(w io.Writer, meta *RunMetadata, samples []sim.Sample) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := append([]string{"time"}, meta.NodeNames...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, sample := range samples {
		row := make([]string, 0, len(sample.Temps)+1)
		row = append(row, strconv.FormatFloat(sample.Time, 'f', 6, 64))
		for _, temp := range sample.Temps {
			row = append(row, strconv.FormatFloat(temp, 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}
