// Package config defines the declarative YAML network description and
// builds live networks from it. All values in a document are SI base
// units: Kelvin, J/K, K/W, W/K^4, W, seconds, m^3.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/chill/internal/material"
	"github.com/san-kum/chill/internal/thermal"
)

const (
	DefaultDt             = 0.1
	DefaultDuration       = 10.0
	DefaultSampleInterval = 1.0
)

type Config struct {
	Name            string       `yaml:"name"`
	Dt              float64      `yaml:"dt"`
	Duration        float64      `yaml:"duration"`
	SampleInterval  float64      `yaml:"sample_interval"`
	SnapshotInitial bool         `yaml:"snapshot_initial"`
	Nodes           []NodeConfig `yaml:"nodes"`
	Edges           []EdgeConfig `yaml:"edges"`
}

// NodeConfig declares one node. Capacity comes from exactly one of:
// fixed (infinite capacity), material+volume, or capacity directly.
type NodeConfig struct {
	Name        string  `yaml:"name"`
	Temperature float64 `yaml:"temperature"`
	Capacity    float64 `yaml:"capacity,omitempty"`
	Material    string  `yaml:"material,omitempty"`
	Volume      float64 `yaml:"volume,omitempty"`
	Fixed       bool    `yaml:"fixed,omitempty"`
}

// EdgeConfig declares one edge. From/To reference node names; heaters
// use To only.
type EdgeConfig struct {
	Kind       string  `yaml:"kind"`
	From       string  `yaml:"from,omitempty"`
	To         string  `yaml:"to"`
	Resistance float64 `yaml:"resistance,omitempty"`
	RadConst   float64 `yaml:"rad_const,omitempty"`
	HeatInput  float64 `yaml:"heat_input,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:           "network",
		Dt:             DefaultDt,
		Duration:       DefaultDuration,
		SampleInterval: DefaultSampleInterval,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build constructs a thermal network from the document. Node names must
// be unique within a document so edge references are unambiguous.
func (c *Config) Build() (*thermal.Network, error) {
	if len(c.Nodes) == 0 {
		return nil, fmt.Errorf("%w: network has no nodes", thermal.ErrInvalidParameter)
	}

	nw := thermal.NewNetwork()
	ids := make(map[string]thermal.NodeID, len(c.Nodes))

	for i, nc := range c.Nodes {
		if nc.Name == "" {
			return nil, fmt.Errorf("%w: node %d has no name", thermal.ErrInvalidParameter, i)
		}
		if _, dup := ids[nc.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate node name %q", thermal.ErrInvalidParameter, nc.Name)
		}

		capacity, err := nc.capacity()
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", nc.Name, err)
		}

		id, err := nw.AddNode(nc.Name, nc.Temperature, capacity)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", nc.Name, err)
		}
		ids[nc.Name] = id
	}

	for i, ec := range c.Edges {
		to, ok := ids[ec.To]
		if !ok {
			return nil, fmt.Errorf("edge %d: %w: %q", i, thermal.ErrUnknownNode, ec.To)
		}

		var err error
		switch ec.Kind {
		case "conduction":
			from, ok := ids[ec.From]
			if !ok {
				return nil, fmt.Errorf("edge %d: %w: %q", i, thermal.ErrUnknownNode, ec.From)
			}
			err = nw.AddConduction(from, to, ec.Resistance)
		case "radiation":
			from, ok := ids[ec.From]
			if !ok {
				return nil, fmt.Errorf("edge %d: %w: %q", i, thermal.ErrUnknownNode, ec.From)
			}
			err = nw.AddRadiation(from, to, ec.RadConst)
		case "heater":
			err = nw.AddHeater(to, ec.HeatInput)
		default:
			err = fmt.Errorf("%w: unknown edge kind %q", thermal.ErrInvalidParameter, ec.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
	}

	return nw, nil
}

func (nc NodeConfig) capacity() (float64, error) {
	switch {
	case nc.Fixed:
		if nc.Capacity != 0 || nc.Material != "" {
			return 0, fmt.Errorf("%w: fixed node must not also set capacity or material", thermal.ErrInvalidParameter)
		}
		return math.Inf(1), nil
	case nc.Material != "":
		if nc.Capacity != 0 {
			return 0, fmt.Errorf("%w: set material+volume or capacity, not both", thermal.ErrInvalidParameter)
		}
		return material.Capacity(nc.Material, nc.Volume)
	default:
		return nc.Capacity, nil
	}
}
