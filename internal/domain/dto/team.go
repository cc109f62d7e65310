package dto

type CreateTeam struct {
	Name      string `json:"name" validate:"required"`
	Category  string `json:"category"`
	MinAge    int    `json:"minAge" validate:"required,min=4,max=99"`
	MaxAge    int    `json:"maxAge" validate:"required,min=4,max=99,gtefield=MinAge"`
	Season    string `json:"season"`
	CoachName string `json:"coachName"`
}

type UpdateTeam struct {
	Name      *string `json:"name"`
	Category  *string `json:"category"`
	MinAge    *int    `json:"minAge" validate:"omitempty,min=4,max=99"`
	MaxAge    *int    `json:"maxAge" validate:"omitempty,min=4,max=99"`
	Season    *string `json:"season"`
	CoachName *string `json:"coachName"`
}
