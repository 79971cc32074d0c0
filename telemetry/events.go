// Package telemetry provides population tracking, genome census, bookmarks and CSV output.
package telemetry

import "log/slog"

// DeathCause identifies what pushed a monster's HP to zero or below.
type DeathCause uint8

const (
	CauseMetabolism DeathCause = iota
	CauseAttack
	CauseDivision
)

// String returns the lowercase cause name.
func (c DeathCause) String() string {
	switch c {
	case CauseAttack:
		return "attack"
	case CauseDivision:
		return "division"
	default:
		return "metabolism"
	}
}

// EventType identifies per-monster events reported for followed monsters.
type EventType uint8

const (
	EventBirth EventType = iota
	EventDeath
	EventMeal
	EventAttacked
	EventHealed
)

var eventNames = [...]string{"birth", "death", "meal", "attacked", "healed"}

// String returns the lowercase event name.
func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event represents a single notable thing that happened to a monster.
type Event struct {
	Type      EventType
	Tick      int64
	MonsterID uint64
	Name      string

	// Optional fields depending on event type
	OtherID uint64     // child for births, other party for attacks and heals
	Amount  int        // HP gained or lost
	Cause   DeathCause // deaths only
}

// NewBirthEvent creates an event for a parent whose child was just placed.
func NewBirthEvent(tick int64, parentID, childID uint64, childHP int) Event {
	return Event{Type: EventBirth, Tick: tick, MonsterID: parentID, OtherID: childID, Amount: childHP}
}

// NewDeathEvent creates a death event.
func NewDeathEvent(tick int64, id uint64, cause DeathCause) Event {
	return Event{Type: EventDeath, Tick: tick, MonsterID: id, Cause: cause}
}

// NewMealEvent creates an event for a monster stepping onto food.
func NewMealEvent(tick int64, id uint64, gain int) Event {
	return Event{Type: EventMeal, Tick: tick, MonsterID: id, Amount: gain}
}

// NewAttackedEvent creates an event for a monster losing HP to a neighbor.
func NewAttackedEvent(tick int64, id, attackerID uint64, damage int) Event {
	return Event{Type: EventAttacked, Tick: tick, MonsterID: id, OtherID: attackerID, Amount: -damage}
}

// NewHealedEvent creates an event for a monster healed by a neighbor.
func NewHealedEvent(tick int64, id, healerID uint64, gain int) Event {
	return Event{Type: EventHealed, Tick: tick, MonsterID: id, OtherID: healerID, Amount: gain}
}

// LogEvent logs the event using slog.
func (e Event) LogEvent() {
	attrs := []any{
		"tick", e.Tick,
		"monster", e.MonsterID,
	}
	if e.Name != "" {
		attrs = append(attrs, "name", e.Name)
	}
	switch e.Type {
	case EventDeath:
		attrs = append(attrs, "cause", e.Cause.String())
	case EventBirth, EventAttacked, EventHealed:
		attrs = append(attrs, "other", e.OtherID, "hp", e.Amount)
	case EventMeal:
		attrs = append(attrs, "hp", e.Amount)
	}
	slog.Info(e.Type.String(), attrs...)
}
