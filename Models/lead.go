package Models

import (
	"gorm.io/gorm"
)

// Lead is a contact request captured from the public site form.
type Lead struct {
	gorm.Model
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Interest string `json:"interest"`
	Handled  bool   `json:"handled"`
}
