package db_models

import "github.com/google/uuid"

// Page type tags. Order matters only inside a funnel, not here.
const (
	PageTypeIntro      = "intro"
	PageTypeQuestion   = "question"
	PageTypeStrategic  = "strategic"
	PageTypeTransition = "transition"
	PageTypeLoading    = "loading"
	PageTypeResult     = "result"
	PageTypeOffer      = "offer"
)

var PageTypes = []string{
	PageTypeIntro,
	PageTypeQuestion,
	PageTypeStrategic,
	PageTypeTransition,
	PageTypeLoading,
	PageTypeResult,
	PageTypeOffer,
}

func IsValidPageType(t string) bool {
	for _, p := range PageTypes {
		if p == t {
			return true
		}
	}
	return false
}

type Funnel struct {
	BaseModel
	Name        string
	IsPublished bool

	Pages []Page `gorm:"foreignKey:FunnelID;constraint:OnDelete:CASCADE"`
}

type Page struct {
	BaseModel
	FunnelID uuid.UUID `gorm:"index"`
	Title    string
	Type     string
	Progress int
	Position int `gorm:"index"`

	Components []Component `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE"`
}

type Component struct {
	BaseModel
	PageID   uuid.UUID `gorm:"index"`
	Type     string
	Position int
	Data     JSONMap `gorm:"type:jsonb"`
	Style    JSONMap `gorm:"type:jsonb"`
}
