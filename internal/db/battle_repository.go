package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/squadbattle/internal/battle"
)

const defaultHistoryLimit = 20

// BattleRecord — сохранённый результат одного боя.
type BattleRecord struct {
	ID            int64
	Seed          int64
	AttackerOwner int64
	DefenderOwner int64
	Result        battle.Result
	CreatedAt     time.Time
}

// NewBattleRecord собирает запись из результата боя.
func NewBattleRecord(seed, attackerOwner, defenderOwner int64, res *battle.Result) BattleRecord {
	return BattleRecord{
		Seed:          seed,
		AttackerOwner: attackerOwner,
		DefenderOwner: defenderOwner,
		Result:        *res,
	}
}

// BattleRepository хранит историю боёв.
type BattleRepository struct {
	db *pgxpool.Pool
}

// NewBattleRepository создаёт новый BattleRepository.
func NewBattleRepository(db *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{db: db}
}

// Save сохраняет запись и возвращает её ID.
func (r *BattleRepository) Save(ctx context.Context, rec BattleRecord) (int64, error) {
	res := rec.Result
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO battles (seed, attacker_owner, defender_owner, outcome,
			attacker_total, defender_total, attacker_powers, defender_powers,
			attacker_logs, defender_logs)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		rec.Seed, rec.AttackerOwner, rec.DefenderOwner, string(res.Outcome),
		res.AttackerTotal, res.DefenderTotal,
		res.AttackerPowers[:], res.DefenderPowers[:],
		nonNil(res.AttackerLogs), nonNil(res.DefenderLogs),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting battle record: %w", err)
	}
	return id, nil
}

// ListByOwner возвращает последние бои владельца (в любой роли),
// новые первыми. Исход всегда с точки зрения атакующего.
func (r *BattleRepository) ListByOwner(ctx context.Context, ownerID int64, limit int) ([]BattleRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, seed, attacker_owner, defender_owner, outcome,
			attacker_total, defender_total, attacker_powers, defender_powers,
			attacker_logs, defender_logs, created_at
		FROM battles
		WHERE attacker_owner = $1 OR defender_owner = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying battles of %d: %w", ownerID, err)
	}
	defer rows.Close()

	records := make([]BattleRecord, 0, limit)
	for rows.Next() {
		var (
			rec                BattleRecord
			outcome            string
			attackerP, defendP []int
		)
		if err := rows.Scan(&rec.ID, &rec.Seed, &rec.AttackerOwner, &rec.DefenderOwner, &outcome,
			&rec.Result.AttackerTotal, &rec.Result.DefenderTotal, &attackerP, &defendP,
			&rec.Result.AttackerLogs, &rec.Result.DefenderLogs, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning battle row: %w", err)
		}
		rec.Result.Outcome = battle.Outcome(outcome)
		copy(rec.Result.AttackerPowers[:], attackerP)
		copy(rec.Result.DefenderPowers[:], defendP)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating battle rows: %w", err)
	}
	return records, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
