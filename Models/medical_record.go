package Models

import (
	"gorm.io/gorm"
)

// ClinicalNote is an append-mostly prontuario entry written by a physician.
type ClinicalNote struct {
	gorm.Model
	PatientID uint   `json:"patient_id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
}

// Prescription is an append-mostly receita entry keyed by patient.
type Prescription struct {
	gorm.Model
	PatientID   uint   `json:"patient_id"`
	Author      string `json:"author"`
	Medications string `json:"medications"`
	Guidance    string `json:"guidance"`
}
