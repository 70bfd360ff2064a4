package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// SkillList is a set of free-form skill tags stored as a JSON array in a
// text column. Matching is case-insensitive; storage preserves the
// original casing.
type SkillList []string

// Value implements driver.Valuer.
func (s SkillList) Value() (driver.Value, error) {
	if s == nil {
		s = SkillList{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (s *SkillList) Scan(value interface{}) error {
	if value == nil {
		*s = SkillList{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type for skills: %T", value)
	}

	if len(raw) == 0 {
		*s = SkillList{}
		return nil
	}

	return json.Unmarshal(raw, s)
}

// Lowered returns the skills lower-cased for matching.
func (s SkillList) Lowered() []string {
	out := make([]string, len(s))
	for i, skill := range s {
		out[i] = strings.ToLower(skill)
	}
	return out
}

// ContainsFold reports whether the list contains skill, case-insensitively.
func (s SkillList) ContainsFold(skill string) bool {
	for _, have := range s {
		if strings.EqualFold(have, skill) {
			return true
		}
	}
	return false
}
