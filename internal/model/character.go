package model

import (
	"fmt"
	"strings"
)

// MaxSquadSize — максимальное количество слотов в отряде.
const MaxSquadSize = 5

// MaxBasePower — верхняя граница базовой силы персонажа.
const MaxBasePower = 1 << 40

// Rarity — редкость персонажа. Ядро боя её не использует, но переносит дальше.
type Rarity string

const (
	RarityR   Rarity = "R"
	RaritySR  Rarity = "SR"
	RaritySSR Rarity = "SSR"
	RarityUR  Rarity = "UR"
)

// ParseRarity разбирает строковое значение редкости (регистр не важен).
func ParseRarity(s string) (Rarity, error) {
	switch r := Rarity(strings.ToUpper(strings.TrimSpace(s))); r {
	case RarityR, RaritySR, RaritySSR, RarityUR:
		return r, nil
	case "":
		return RarityR, nil
	default:
		return "", fmt.Errorf("unknown rarity %q", s)
	}
}

// Character — входная запись персонажа для боя.
// Неизменяема на протяжении боя: движок только читает её.
type Character struct {
	AnilistID   int      `json:"anilist_id" yaml:"anilist_id"`
	Name        string   `json:"name" yaml:"name"`
	BasePower   int      `json:"base_power" yaml:"base_power"`
	AbilityTags []string `json:"ability_tags,omitempty" yaml:"ability_tags"`
	Rarity      Rarity   `json:"rarity,omitempty" yaml:"rarity"`
}

// HasTag сообщает, есть ли у персонажа навык с указанным именем (без учёта регистра).
func (c *Character) HasTag(name string) bool {
	if c == nil {
		return false
	}
	for _, t := range c.AbilityTags {
		if strings.EqualFold(t, name) {
			return true
		}
	}
	return false
}

// Validate проверяет инварианты входной записи.
func (c *Character) Validate() error {
	if c.BasePower < 0 || c.BasePower > MaxBasePower {
		return fmt.Errorf("character %q (anilist %d): base power must be in [0, %d], got %d",
			c.Name, c.AnilistID, MaxBasePower, c.BasePower)
	}
	if c.Rarity != "" {
		if _, err := ParseRarity(string(c.Rarity)); err != nil {
			return fmt.Errorf("character %q (anilist %d): %w", c.Name, c.AnilistID, err)
		}
	}
	return nil
}
