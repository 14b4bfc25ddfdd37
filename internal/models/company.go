package models

import "time"

type Company struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`

	Password string `gorm:"not null" json:"-"`

	Country     string `json:"country"`
	City        string `json:"city"`
	Website     string `json:"website"`
	CompanyLogo string `json:"companyLogo"`

	// Descriptive profile shown to candidates.
	Overview       string `gorm:"type:text" json:"overview"`
	FoundedYear    string `json:"foundedYear"`
	Capital        string `json:"capital"`
	Employees      string `json:"employees"`
	Representative string `json:"representative"`
	Headquarters   string `json:"headquarters"`

	RecruitmentTypes  string `json:"recruitmentTypes"`
	RecruitmentTarget string `json:"recruitmentTarget"`
	EmploymentType    string `json:"employmentType"`
	WorkLocation      string `json:"workLocation"`
	WorkingHours      string `json:"workingHours"`

	InitialSalary           string `json:"initialSalary"`
	AnnualSalary            string `json:"annualSalary"`
	BonusInfo               string `json:"bonusInfo"`
	Benefits                string `gorm:"type:text" json:"benefits"`
	SocialInsurance         string `json:"socialInsurance"`
	HousingAllowance        string `json:"housingAllowance"`
	TransportationAllowance string `json:"transportationAllowance"`
	Training                string `json:"training"`
	CertificateSupport      string `json:"certificateSupport"`

	AvgAge         string `json:"avgAge"`
	GenderRatio    string `json:"genderRatio"`
	OvertimeHours  string `json:"overtimeHours"`
	VacationRate   string `json:"vacationRate"`
	RemoteFlexible string `json:"remoteFlexible"`

	ForeignerHiringRecord string `json:"foreignerHiringRecord"`
	VisaSupport           string `json:"visaSupport"`
	InternalLanguage      string `json:"internalLanguage"`
	JapaneseLevel         string `json:"japaneseLevel"`
	AcceptedNationality   string `json:"acceptedNationality"`
	LivingSupport         string `gorm:"type:text" json:"livingSupport"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
