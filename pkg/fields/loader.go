package fields

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the field definitions for a screen code from fsys. It looks for
// <code>.json first and falls back to <code>.yaml / <code>.yml, so definition
// bundles can mix both formats.
func Load(fsys fs.FS, code string) (Definitions, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("fields: screen code is required")
	}
	if fsys == nil {
		return nil, fmt.Errorf("fields: filesystem is required")
	}

	for _, ext := range []string{".json", ".yaml", ".yml"} {
		name := code + ext
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			continue
		}
		defs, err := parse(data, name)
		if err != nil {
			return nil, err
		}
		return defs, nil
	}
	return nil, fmt.Errorf("fields: no definition file for code %q", code)
}

// LoadDir is a convenience wrapper over Load for an on-disk directory.
func LoadDir(dir, code string) (Definitions, error) {
	return Load(os.DirFS(dir), code)
}

func parse(data []byte, name string) (Definitions, error) {
	var raw map[string]map[string]string

	if strings.HasSuffix(name, ".json") {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("fields: parse %s: %w", name, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("fields: parse %s: %w", name, err)
		}
	}

	defs := make(Definitions, len(raw))
	for section, cols := range raw {
		section = strings.TrimSpace(section)
		if section == "" {
			return nil, fmt.Errorf("fields: file %s defines an empty section name", name)
		}
		defs[section] = make(map[string]TypeTag, len(cols))
		for column, tag := range cols {
			column = strings.TrimSpace(column)
			if column == "" {
				return nil, fmt.Errorf("fields: section %q in %s defines an empty column name", section, name)
			}
			switch TypeTag(tag) {
			case TypeText, TypeNumeric, TypeDate:
				defs[section][column] = TypeTag(tag)
			default:
				return nil, fmt.Errorf("fields: column %q in section %q has unknown type %q", column, section, tag)
			}
		}
	}
	return defs, nil
}
