package dto

// CreateLandingPageResponse is returned after a page body is stored
type CreateLandingPageResponse struct {
	Success bool `json:"success"`
}
