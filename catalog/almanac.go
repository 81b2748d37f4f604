package catalog

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/signalsfoundry/astroconst/registry"
	"gopkg.in/yaml.v3"
)

//go:embed data/almanac.yaml
var almanacYAML []byte

type almanacTable struct {
	Standard  string         `yaml:"standard"`
	Edition   string         `yaml:"edition"`
	Constants []almanacEntry `yaml:"constants"`
}

type almanacEntry struct {
	Name        string `yaml:"name"`
	Value       string `yaml:"value"`
	Uncertainty string `yaml:"uncertainty"`
	Unit        string `yaml:"unit"`
	Description string `yaml:"description"`
}

// defineAlmanac decodes the transcribed table and defines every entry in the
// almanac namespace. The first entry that fails to parse aborts the whole
// table.
func defineAlmanac(b *registry.Builder, data []byte) error {
	var table almanacTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return fmt.Errorf("%w: almanac table: %v", registry.ErrInvalidDefinition, err)
	}
	if len(table.Constants) == 0 {
		return fmt.Errorf("%w: almanac table has no constants", registry.ErrInvalidDefinition)
	}

	citation := table.Standard
	for i, e := range table.Constants {
		value, err := parseDecimal(e.Value)
		if err != nil {
			return fmt.Errorf("%w: almanac entry %d (%q) value: %v", registry.ErrInvalidDefinition, i, e.Name, err)
		}
		var uncertainty float64
		if e.Uncertainty != "" {
			if uncertainty, err = parseDecimal(e.Uncertainty); err != nil {
				return fmt.Errorf("%w: almanac entry %d (%q) uncertainty: %v", registry.ErrInvalidDefinition, i, e.Name, err)
			}
		}

		err = b.Define(registry.Constant{
			Namespace:   NamespaceAlmanac,
			Name:        e.Name,
			Value:       value,
			Unit:        e.Unit,
			Uncertainty: uncertainty,
			Citation:    citation,
			Description: e.Description,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	return strconv.ParseFloat(s, 64)
}
