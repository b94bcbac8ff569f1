package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/squadbattle/internal/model"
)

// CharacterRepository хранит карточки персонажей, по одной на anilist ID.
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository создаёт новый CharacterRepository.
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// Upsert сохраняет персонажей одним батчем.
// Существующие записи перезаписываются целиком.
func (r *CharacterRepository) Upsert(ctx context.Context, chars ...*model.Character) error {
	batch := &pgx.Batch{}
	for _, c := range chars {
		if c == nil {
			continue
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("upserting character: %w", err)
		}
		rarity, _ := model.ParseRarity(string(c.Rarity))
		tags := c.AbilityTags
		if tags == nil {
			tags = []string{}
		}
		batch.Queue(`
			INSERT INTO characters (anilist_id, name, base_power, rarity, ability_tags, updated_at)
			VALUES ($1, $2, $3, $4, $5, now())
			ON CONFLICT (anilist_id) DO UPDATE SET
				name = EXCLUDED.name,
				base_power = EXCLUDED.base_power,
				rarity = EXCLUDED.rarity,
				ability_tags = EXCLUDED.ability_tags,
				updated_at = now()`,
			c.AnilistID, c.Name, c.BasePower, string(rarity), tags,
		)
	}
	if batch.Len() == 0 {
		return nil
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()
	for range batch.Len() {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("upserting character: %w", err)
		}
	}
	return nil
}

// LoadByIDs загружает персонажей по anilist ID.
// Отсутствующие ID в результате не появляются.
func (r *CharacterRepository) LoadByIDs(ctx context.Context, ids []int) (map[int]*model.Character, error) {
	out := make(map[int]*model.Character, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT anilist_id, name, base_power, rarity, ability_tags
		FROM characters
		WHERE anilist_id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("querying characters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, err
		}
		out[c.AnilistID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating character rows: %w", err)
	}
	return out, nil
}

func scanCharacter(row pgx.Row) (*model.Character, error) {
	var (
		c      model.Character
		rarity string
	)
	if err := row.Scan(&c.AnilistID, &c.Name, &c.BasePower, &rarity, &c.AbilityTags); err != nil {
		return nil, fmt.Errorf("scanning character row: %w", err)
	}
	r, err := model.ParseRarity(rarity)
	if err != nil {
		return nil, fmt.Errorf("character %d: %w", c.AnilistID, err)
	}
	c.Rarity = r
	return &c, nil
}
