// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package committee

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type fileFormat struct {
	Epoch       Epoch       `yaml:"epoch"`
	Authorities []Authority `yaml:"authorities"`
}

// Parse decodes a committee from YAML.
func Parse(data []byte) (*Committee, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "decode committee")
	}
	return New(f.Epoch, f.Authorities)
}

// LoadFile reads a committee YAML file.
func LoadFile(path string) (*Committee, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read committee file")
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return c, nil
}

// MarshalYAML implements yaml.Marshaler.
func (c *Committee) MarshalYAML() (any, error) {
	return fileFormat{Epoch: c.epoch, Authorities: c.authorities}, nil
}

// SaveFile writes the committee as YAML.
func (c *Committee) SaveFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encode committee")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "write committee file")
}
