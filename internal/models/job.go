package models

import "time"

type Job struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `gorm:"not null;index" json:"companyId"`

	Title            string `gorm:"not null" json:"title"`
	Description      string `gorm:"type:text;not null" json:"description"`
	Location         string `gorm:"not null" json:"location"`
	RequiredLanguage string `gorm:"not null" json:"requiredLanguage"` // e.g. N2
	RequiredSkills   string `gorm:"not null" json:"requiredSkills"`
	VisaSupport      bool   `gorm:"default:false" json:"visaSupport"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}
