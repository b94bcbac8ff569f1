package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/squadbattle/internal/model"
)

// squadFile is the on-disk form of one side:
//
//	owner_id: 1001
//	members:
//	  - {anilist_id: 40881, name: Sun, base_power: 1200, ability_tags: [The Onyx Moon]}
//	  - null
//	  - {anilist_id: 40882, name: Moon, base_power: 900}
type squadFile struct {
	OwnerID int64      `yaml:"owner_id"`
	Members model.Team `yaml:"members"`
}

func loadSquad(path string) (squadFile, error) {
	var sf squadFile
	data, err := os.ReadFile(path)
	if err != nil {
		return sf, fmt.Errorf("reading squad %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return sf, fmt.Errorf("parsing squad %s: %w", path, err)
	}
	if err := sf.Members.Validate(); err != nil {
		return sf, fmt.Errorf("squad %s: %w", path, err)
	}
	return sf, nil
}
