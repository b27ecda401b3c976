package importer

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/redmane-backend/internal/platform/apierr"
)

const (
	ColumnRecordID = "record_id"
	ColumnSampleID = "sample_id"
)

// Profile names the CSV columns copied into metadata, one row per column.
type Profile struct {
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns"`
}

var builtinProfiles = map[string]Profile{
	"onj":     {Name: "onj", Columns: []string{"age_range", "smoking", "control"}},
	"rmh":     {Name: "rmh", Columns: []string{"age_range", "diabetes_1", "diabetes_2"}},
	"samples": {Name: "samples", Columns: []string{"ext_sample_batch", "tissue", "sample_date"}},
}

// BuiltinProfile returns a copy of a named built-in profile.
func BuiltinProfile(name string) (Profile, bool) {
	p, ok := builtinProfiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Profile{}, false
	}
	p.Columns = append([]string(nil), p.Columns...)
	return p, true
}

func BuiltinProfileNames() []string {
	names := make([]string, 0, len(builtinProfiles))
	for n := range builtinProfiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LoadProfileFile reads a profile from YAML. The file may hold a single
// profile or a map of named profiles, in which case name selects one.
func LoadProfileFile(path, name string) (Profile, error) {
	const op = "importer.LoadProfileFile"
	raw, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, apierr.Configuration(op, "read %s: %v", path, err)
	}

	var single Profile
	if err := yaml.Unmarshal(raw, &single); err == nil && len(single.Columns) > 0 {
		if single.Name == "" {
			single.Name = path
		}
		return single, nil
	}

	var named map[string]Profile
	if err := yaml.Unmarshal(raw, &named); err != nil {
		return Profile{}, apierr.Configuration(op, "parse %s: %v", path, err)
	}
	p, ok := named[name]
	if !ok {
		return Profile{}, apierr.Configuration(op, "profile %q not defined in %s", name, path)
	}
	if p.Name == "" {
		p.Name = name
	}
	return p, nil
}

// ResolveProfile picks the metadata columns for a run. Explicit columns win
// over a profile file, which wins over the built-in profile.
func ResolveProfile(name, file string, columns []string) (Profile, error) {
	if cols := cleanColumns(columns); len(cols) > 0 {
		return Profile{Name: "custom", Columns: cols}, nil
	}
	if strings.TrimSpace(file) != "" {
		p, err := LoadProfileFile(file, name)
		if err != nil {
			return Profile{}, err
		}
		p.Columns = cleanColumns(p.Columns)
		return p, nil
	}
	p, ok := BuiltinProfile(name)
	if !ok {
		return Profile{}, apierr.Configuration("importer.ResolveProfile",
			"unknown profile %q (known: %s)", name, strings.Join(BuiltinProfileNames(), ", "))
	}
	return p, nil
}

func cleanColumns(in []string) []string {
	var out []string
	for _, c := range in {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func (p Profile) String() string {
	return fmt.Sprintf("%s[%s]", p.Name, strings.Join(p.Columns, ","))
}
