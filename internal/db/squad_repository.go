package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/squadbattle/internal/model"
)

// SquadRepository хранит отряды игроков: до пяти слотов на владельца.
type SquadRepository struct {
	db *pgxpool.Pool
}

// NewSquadRepository создаёт новый SquadRepository.
func NewSquadRepository(db *pgxpool.Pool) *SquadRepository {
	return &SquadRepository{db: db}
}

// Save сохраняет отряд владельца (полная перезапись).
// Удаляет старые слоты, вставляет новые в одной транзакции.
// Персонажи должны быть сохранены заранее через CharacterRepository.
func (r *SquadRepository) Save(ctx context.Context, ownerID int64, team model.Team) error {
	if err := team.Validate(); err != nil {
		return fmt.Errorf("saving squad of %d: %w", ownerID, err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx, `DELETE FROM squads WHERE owner_id = $1`, ownerID); err != nil {
		return fmt.Errorf("deleting squad of %d: %w", ownerID, err)
	}

	for slot, c := range team {
		if c == nil {
			continue
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO squads (owner_id, slot, anilist_id) VALUES ($1, $2, $3)`,
			ownerID, slot, c.AnilistID,
		); err != nil {
			return fmt.Errorf("inserting slot %d of %d: %w", slot, ownerID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing squad of %d: %w", ownerID, err)
	}
	return nil
}

// Load загружает отряд владельца. Пустые слоты между занятыми
// возвращаются как nil; пустой отряд — nil, nil.
func (r *SquadRepository) Load(ctx context.Context, ownerID int64) (model.Team, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.slot, c.anilist_id, c.name, c.base_power, c.rarity, c.ability_tags
		FROM squads s
		JOIN characters c ON c.anilist_id = s.anilist_id
		WHERE s.owner_id = $1
		ORDER BY s.slot`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying squad of %d: %w", ownerID, err)
	}
	defer rows.Close()

	var team model.Team
	for rows.Next() {
		var (
			slot   int
			c      model.Character
			rarity string
		)
		if err := rows.Scan(&slot, &c.AnilistID, &c.Name, &c.BasePower, &rarity, &c.AbilityTags); err != nil {
			return nil, fmt.Errorf("scanning squad row: %w", err)
		}
		if c.Rarity, err = model.ParseRarity(rarity); err != nil {
			return nil, fmt.Errorf("character %d: %w", c.AnilistID, err)
		}
		for len(team) <= slot {
			team = append(team, nil)
		}
		team[slot] = &c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating squad rows: %w", err)
	}
	return team, nil
}
