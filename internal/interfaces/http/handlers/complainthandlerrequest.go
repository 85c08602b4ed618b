package handlers

// CreateComplaintRequest is accepted as JSON or as multipart form data.
// The multipart form may carry the photo in an "image" file part.
type CreateComplaintRequest struct {
	Description string `json:"description" form:"description" binding:"required"`
	Category    string `json:"category" form:"category" binding:"omitempty,complaint_category"`
	Visibility  string `json:"visibility" form:"visibility" binding:"omitempty,visibility"`
}

// EditComplaintRequest patches only the fields present.
type EditComplaintRequest struct {
	Description *string `json:"description"`
	Category    *string `json:"category" binding:"omitempty,complaint_category"`
	Visibility  *string `json:"visibility" binding:"omitempty,visibility"`
}

func (r EditComplaintRequest) isEmpty() bool {
	return r.Description == nil && r.Category == nil && r.Visibility == nil
}

type CastVoteRequest struct {
	Direction string `json:"direction" binding:"required,vote_direction"`
}
