package models

import (
	"time"

	"gorm.io/datatypes"
)

type Candidate struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`

	Password string `gorm:"not null" json:"-"`

	Nationality    string `json:"nationality"`
	JapaneseLevel  string `json:"japaneseLevel"` // N1..N5
	Skills         string `json:"skills"`        // comma-separated free text
	VisaStatus     string `json:"visaStatus"`
	CurrentJobType string `json:"currentJobType"`
	SkillTest      string `json:"skillTest"`
	UnionName      string `json:"unionName"`
	RegisteredOrg  string `json:"registeredOrg"`
	SelfPR         string `gorm:"type:text" json:"selfPr"`
	IntroVideoURL  string `json:"introVideoUrl"`

	// Work history entries as submitted by the candidate:
	// [{ "company": "...", "role": "...", "from": "...", "to": "..." }, ...]
	WorkHistory datatypes.JSON `json:"workHistory,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
