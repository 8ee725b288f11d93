package users

import "time"

type UpdateProfileRequest struct {
	Nickname string `json:"nickname" validate:"required,max=50"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	ImageURL string `json:"image_url" validate:"omitempty,url,max=1000"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

// ProfileResponse is the account projection returned to the caller. The
// password hash never leaves the service layer.
type ProfileResponse struct {
	ID            int64     `json:"id"`
	UserName      string    `json:"user_name"`
	Nickname      string    `json:"nickname"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	BirthDate     string    `json:"birth_date,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	InfoAgreement bool      `json:"info_agreement"`
	Role          Role      `json:"role"`
	State         UserState `json:"state"`
	JoinedAt      time.Time `json:"joined_at"`
}

// NewProfileResponse projects a user for API output.
func NewProfileResponse(u *User) ProfileResponse {
	return ProfileResponse{
		ID:            u.ID,
		UserName:      u.UserName,
		Nickname:      u.Nickname,
		Email:         u.Email,
		Phone:         u.Phone,
		BirthDate:     u.BirthDate,
		ImageURL:      u.ImageURL,
		InfoAgreement: u.InfoAgreement,
		Role:          u.Role,
		State:         u.State,
		JoinedAt:      u.JoinedAt,
	}
}
