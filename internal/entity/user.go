package entity

import (
	"time"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/pkg/identifier"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type User struct {
	ID           string        `gorm:"size:40;primaryKey" json:"id"`
	Username     string        `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string        `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string        `gorm:"size:255;not null" json:"-"`
	Role         string        `gorm:"size:20;not null;default:member" json:"role"`
	PhoneNumber  *string       `gorm:"size:20" json:"phone_number,omitempty"`
	ProfileImage *string       `gorm:"type:text" json:"profile_image,omitempty"`
	Profile      *NurseProfile `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = identifier.New(identifier.TagUser)
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NurseProfile extends a user with nursing-specific information.
type NurseProfile struct {
	UserID                 string    `gorm:"size:40;primaryKey" json:"user_id"`
	Specialty              *string   `gorm:"size:100;index" json:"specialty,omitempty"`
	LicenseNumber          *string   `gorm:"size:50;uniqueIndex" json:"license_number,omitempty"`
	LicenseVerified        bool      `gorm:"default:false" json:"license_verified"`
	HospitalAffiliation    *string   `gorm:"size:150" json:"hospital_affiliation,omitempty"`
	YearsOfExperience      *int      `json:"years_of_experience,omitempty"`
	Education              *string   `gorm:"type:text" json:"education,omitempty"`
	Bio                    *string   `gorm:"type:text" json:"bio,omitempty"`
	ConsentToMentorship    bool      `gorm:"default:false" json:"consent_to_mentorship"`
	AvailableForShiftSwaps bool      `gorm:"default:false" json:"available_for_shift_swaps"`
	CreatedAt              time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
