package vaccines

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile es el formato YAML del catálogo:
//
//	vaccines:
//	  - name: BCG
//	    category: NATIONAL_CARD
//	    schedule: [FIRST]
type catalogFile struct {
	Vaccines []catalogEntry `yaml:"vaccines"`
}

type catalogEntry struct {
	Name     string   `yaml:"name"`
	Category string   `yaml:"category"`
	Schedule []string `yaml:"schedule"`
}

// ParseCatalog lee un catálogo YAML y valida categoría y tipos de dosis de
// cada entrada. Un archivo vacío devuelve un catálogo vacío.
func ParseCatalog(r io.Reader) ([]CreateInput, error) {
	var f catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	out := make([]CreateInput, 0, len(f.Vaccines))
	for i, e := range f.Vaccines {
		cat, err := ParseCategory(e.Category)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d (%s): %w", i, e.Name, err)
		}
		schedule := make([]DoseKind, 0, len(e.Schedule))
		for _, s := range e.Schedule {
			d, err := ParseDoseKind(s)
			if err != nil {
				return nil, fmt.Errorf("catalog entry %d (%s): %w", i, e.Name, err)
			}
			schedule = append(schedule, d)
		}
		out = append(out, CreateInput{Name: e.Name, Category: cat, Schedule: schedule})
	}
	return out, nil
}

func LoadCatalogFile(path string) ([]CreateInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseCatalog(f)
}
