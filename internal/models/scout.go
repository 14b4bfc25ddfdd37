package models

import "time"

// Scout is an outbound message from a company to a candidate. A company
// may scout the same candidate any number of times; rows are immutable
// once created.
type Scout struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	CompanyID   uint `gorm:"not null;index" json:"companyId"`
	CandidateID uint `gorm:"not null;index" json:"candidateId"`

	Message string `gorm:"type:text;not null" json:"message"`

	CreatedAt time.Time `json:"createdAt"`

	Company   *Company   `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Candidate *Candidate `gorm:"foreignKey:CandidateID" json:"candidate,omitempty"`
}
