package dto

import "parastaran.ir/nursesforum/internal/entity"

type RegisterRequest struct {
	Username    string  `json:"username" binding:"required,min=3,max=50"`
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8"`
	PhoneNumber *string `json:"phoneNumber"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RequestOTPRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

type VerifyOTPRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Code        string `json:"code" binding:"required,len=6"`
}

type MagicLinkRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyMagicLinkRequest struct {
	Token string `json:"token" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

type UpdateProfileRequest struct {
	Specialty              *string `json:"specialty"`
	LicenseNumber          *string `json:"licenseNumber"`
	HospitalAffiliation    *string `json:"hospitalAffiliation"`
	YearsOfExperience      *int    `json:"yearsOfExperience"`
	Education              *string `json:"education"`
	Bio                    *string `json:"bio"`
	ConsentToMentorship    *bool   `json:"consentToMentorship"`
	AvailableForShiftSwaps *bool   `json:"availableForShiftSwaps"`
}
