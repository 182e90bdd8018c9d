package entities

// SkillLevel is the coarse difficulty bucket used to pick lessons.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// SkillLevels lists levels from easiest to hardest.
var SkillLevels = []SkillLevel{SkillBeginner, SkillIntermediate, SkillAdvanced}

// Valid reports whether l is one of the known levels.
func (l SkillLevel) Valid() bool {
	return l.index() >= 0
}

// Next returns the next harder level and false when l is already the hardest.
func (l SkillLevel) Next() (SkillLevel, bool) {
	i := l.index()
	if i < 0 || i == len(SkillLevels)-1 {
		return l, false
	}
	return SkillLevels[i+1], true
}

// Prev returns the next easier level and false when l is already the easiest.
func (l SkillLevel) Prev() (SkillLevel, bool) {
	i := l.index()
	if i <= 0 {
		return l, false
	}
	return SkillLevels[i-1], true
}

func (l SkillLevel) index() int {
	for i, s := range SkillLevels {
		if s == l {
			return i
		}
	}
	return -1
}

// ParseSkillLevel falls back to beginner for unknown values.
func ParseSkillLevel(s string) SkillLevel {
	l := SkillLevel(s)
	if !l.Valid() {
		return SkillBeginner
	}
	return l
}

// SkillFromXP derives a skill level for users without answer history.
func SkillFromXP(xp int) SkillLevel {
	switch {
	case xp >= 30:
		return SkillAdvanced
	case xp >= 15:
		return SkillIntermediate
	default:
		return SkillBeginner
	}
}

const (
	MinLevel = 1
	MaxLevel = 6
)

// levelThresholds holds the XP needed to reach levels 2..6.
var levelThresholds = []int{10, 25, 50, 100, 200}

// LevelForXP maps accumulated XP to a level in [MinLevel, MaxLevel].
func LevelForXP(xp int) int {
	level := MinLevel
	for _, threshold := range levelThresholds {
		if xp < threshold {
			break
		}
		level++
	}
	return level
}

// ValidLevel reports whether level is within [MinLevel, MaxLevel].
func ValidLevel(level int) bool {
	return level >= MinLevel && level <= MaxLevel
}
