package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// QuizResultRecord archives a computed ranking. The authoritative copy for
// the running session stays in the key-value store; these rows feed admin
// reporting only.
type QuizResultRecord struct {
	BaseModel
	SessionID         uuid.UUID `gorm:"index"`
	DisplayName       string
	PrimaryStyle      string `gorm:"index"`
	PrimaryScore      int
	PrimaryPercentage int
	SecondaryStyles   pq.StringArray `gorm:"type:text[]"`
	TotalSelections   int
	Breakdown         JSONMap `gorm:"type:jsonb"`
}
