package domain

import "time"

// Project is a client solution being worked towards a close date.
type Project struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Title             string    `json:"title"`
	Company           string    `json:"company"`
	Description       string    `json:"description"`
	ExpectedCloseDate Date      `json:"expectedCloseDate"`
	Notes             string    `json:"notes"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ProjectInput carries the editable fields of a project form.
type ProjectInput struct {
	Title             string `json:"title"`
	Company           string `json:"company"`
	Description       string `json:"description"`
	ExpectedCloseDate Date   `json:"expectedCloseDate"`
	Notes             string `json:"notes"`
}
