package models

import "time"

type ApplicationStatus string

// Selection pipeline, in order. REJECT is terminal and reachable from
// any state. The pipeline order is advisory: a company may set any
// valid status regardless of the current one.
const (
	StatusUnconfirmed ApplicationStatus = "UNCONFIRMED" // just applied
	StatusDocument    ApplicationStatus = "DOCUMENT"    // document screening
	StatusFirst       ApplicationStatus = "FIRST"       // first interview
	StatusSecond      ApplicationStatus = "SECOND"      // second interview
	StatusAptitude    ApplicationStatus = "APTITUDE"    // aptitude test
	StatusFinal       ApplicationStatus = "FINAL"       // final interview
	StatusOffer       ApplicationStatus = "OFFER"
	StatusReject      ApplicationStatus = "REJECT"

	// Legacy values still accepted on write from older clients.
	// Stored verbatim, never produced by new writes.
	StatusLegacyPending  ApplicationStatus = "PENDING"  // ≈ UNCONFIRMED
	StatusLegacyAccepted ApplicationStatus = "ACCEPTED" // ≈ OFFER
	StatusLegacyRejected ApplicationStatus = "REJECTED" // ≈ REJECT
)

var allowedStatuses = map[ApplicationStatus]bool{
	StatusUnconfirmed:    true,
	StatusDocument:       true,
	StatusFirst:          true,
	StatusSecond:         true,
	StatusAptitude:       true,
	StatusFinal:          true,
	StatusOffer:          true,
	StatusReject:         true,
	StatusLegacyPending:  true,
	StatusLegacyAccepted: true,
	StatusLegacyRejected: true,
}

func IsValidStatus(s string) bool {
	return allowedStatuses[ApplicationStatus(s)]
}

type Application struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	JobID       uint `gorm:"not null;uniqueIndex:idx_applications_job_candidate" json:"jobId"`
	CandidateID uint `gorm:"not null;uniqueIndex:idx_applications_job_candidate" json:"candidateId"`

	Message string            `gorm:"type:text" json:"message"`
	Status  ApplicationStatus `gorm:"type:varchar(20);not null;default:'UNCONFIRMED'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Job       *Job       `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Candidate *Candidate `gorm:"foreignKey:CandidateID" json:"candidate,omitempty"`
}
