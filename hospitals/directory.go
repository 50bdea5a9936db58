package hospitals

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"go-healthai/types"

	"gopkg.in/yaml.v3"
)

//go:embed hospitals.yaml
var seedYAML []byte

var (
	ErrNoSpecialty = errors.New("hospital has no specialty tags")
	ErrEmpty       = errors.New("hospital directory is empty")
)

// Repository is the read-only source the recommender queries.
type Repository interface {
	All() []types.Hospital
}

// Directory is an immutable, ordered list of hospitals. It is safe for
// concurrent use because nothing mutates it after NewDirectory returns.
type Directory struct {
	hospitals []types.Hospital
}

var _ Repository = (*Directory)(nil)

// NewDirectory validates and copies the given records.
func NewDirectory(list []types.Hospital) (*Directory, error) {
	if len(list) == 0 {
		return nil, ErrEmpty
	}

	hospitals := make([]types.Hospital, len(list))
	for i, h := range list {
		if len(h.Specialties) == 0 {
			return nil, fmt.Errorf("%s: %w", h.Name, ErrNoSpecialty)
		}
		h.Specialties = append([]types.Specialty(nil), h.Specialties...)
		hospitals[i] = h
	}

	return &Directory{hospitals: hospitals}, nil
}

// All returns a copy of the directory in curation order.
func (d *Directory) All() []types.Hospital {
	out := make([]types.Hospital, len(d.hospitals))
	for i, h := range d.hospitals {
		h.Specialties = append([]types.Specialty(nil), h.Specialties...)
		out[i] = h
	}
	return out
}

func (d *Directory) Len() int {
	return len(d.hospitals)
}

// LoadYAML parses a directory from YAML bytes.
func LoadYAML(raw []byte) (*Directory, error) {
	var list []types.Hospital
	if err := yaml.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("parse hospital directory: %w", err)
	}
	return NewDirectory(list)
}

// LoadFile reads a YAML directory from disk.
func LoadFile(path string) (*Directory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hospital directory %s: %w", path, err)
	}
	return LoadYAML(raw)
}

// Default returns the directory compiled into the binary.
func Default() *Directory {
	d, err := LoadYAML(seedYAML)
	if err != nil {
		// the embedded seed is covered by tests
		panic(err)
	}
	return d
}
