package evaluation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultBenchmark returns the built-in benchmark query set.
func DefaultBenchmark() []Query {
	return []Query{
		{Text: "Scythe of Vitur", Keywords: []string{"scythe", "vitur"}},
		{Text: "Forestry woodcutting", Keywords: []string{"forestry", "woodcutting", "events"}},
		{Text: "Fang nerf", Keywords: []string{"fang", "nerf", "damage", "slash"}},
		{Text: "Desert Treasure 2 rewards", Keywords: []string{"desert treasure", "dt2", "virtus", "soulreaper"}},
		{Text: "mobile tile markers", Keywords: []string{"mobile", "tile", "marker", "ground"}},
		{Text: "wildy boss rework", Keywords: []string{"wildy", "wilderness", "boss", "artio", "calvar", "spindel"}},
		{Text: "runecrafting outfit", Keywords: []string{"runecraft", "outfit", "raiments", "gotr"}},
		{Text: "blowpipe nerf", Keywords: []string{"blowpipe", "nerf", "dart", "damage"}},
		{Text: "tumeken shadow", Keywords: []string{"tumeken", "shadow", "magic", "staff"}},
		{Text: "quest speedrunning", Keywords: []string{"speedrun", "quest", "timer"}},
	}
}

type benchmarkFile struct {
	Queries []Query `yaml:"queries"`
}

// LoadBenchmark reads a YAML benchmark file of the form
//
//	queries:
//	  - query: blowpipe nerf
//	    keywords: [blowpipe, dart]
func LoadBenchmark(path string) ([]Query, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read benchmark: %w", err)
	}
	return ParseBenchmark(data)
}

// ParseBenchmark decodes a YAML benchmark document.
func ParseBenchmark(data []byte) ([]Query, error) {
	var f benchmarkFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse benchmark: %w", err)
	}
	if len(f.Queries) == 0 {
		return nil, fmt.Errorf("parse benchmark: no queries")
	}
	for i, q := range f.Queries {
		if q.Text == "" {
			return nil, fmt.Errorf("parse benchmark: query %d is empty", i)
		}
		if len(q.Keywords) == 0 {
			return nil, fmt.Errorf("parse benchmark: query %q has no keywords", q.Text)
		}
	}
	return f.Queries, nil
}
