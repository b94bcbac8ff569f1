package model

import "fmt"

// Team — упорядоченный отряд до пяти слотов. nil означает пустой слот.
// Индекс слота стабилен на всё время боя и служит идентификатором юнита.
type Team []*Character

// Validate проверяет размер отряда и каждую непустую запись.
func (t Team) Validate() error {
	if len(t) > MaxSquadSize {
		return fmt.Errorf("team has %d slots, at most %d allowed", len(t), MaxSquadSize)
	}
	for i, c := range t {
		if c == nil {
			continue
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
	}
	return nil
}

// Slots возвращает отряд, дополненный пустыми слотами до MaxSquadSize.
// Вызывать только после Validate.
func (t Team) Slots() [MaxSquadSize]*Character {
	var out [MaxSquadSize]*Character
	copy(out[:], t)
	return out
}

// Size возвращает число непустых слотов.
func (t Team) Size() int {
	n := 0
	for _, c := range t {
		if c != nil {
			n++
		}
	}
	return n
}

// IsEmpty сообщает, что в отряде нет ни одного персонажа.
func (t Team) IsEmpty() bool {
	return t.Size() == 0
}
