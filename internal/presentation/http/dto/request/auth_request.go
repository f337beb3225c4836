package request

// UnlockRequest represents a lock-screen unlock request
type UnlockRequest struct {
	ProfileID string `json:"profile_id" binding:"required,uuid"`
	Pin       string `json:"pin" binding:"omitempty,max=12"`
}

// CreateProfileRequest represents a profile creation request
type CreateProfileRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Role string `json:"role" binding:"required,oneof=admin cashier kitchen"`
	Pin  string `json:"pin" binding:"omitempty,numeric,min=4,max=12"`
}
