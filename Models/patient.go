package Models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Patient struct {
	gorm.Model
	FullName          string         `json:"full_name"`
	NationalID        string         `json:"national_id" gorm:"uniqueIndex;size:14"`
	RG                string         `json:"rg"`
	Phone             string         `json:"phone"`
	Email             string         `json:"email"`
	BirthDate         *time.Time     `json:"birth_date"`
	Gender            string         `json:"gender"`
	Address           string         `json:"address"`
	City              string         `json:"city"`
	District          string         `json:"district"`
	PlanID            *uint          `json:"plan_id" gorm:"default:null"`
	PlanExpiresAt     *time.Time     `json:"plan_expires_at" gorm:"default:null"`
	HouseholdHeadID   *uint          `json:"household_head_id" gorm:"default:null"`
	IsChronic         bool           `json:"is_chronic"`
	ChronicConditions datatypes.JSON `json:"chronic_conditions"`
	IsActive          bool           `json:"is_active" gorm:"default:true"`
}

// IsHead reports whether this patient is their own household head.
func (patient *Patient) IsHead() bool {
	return patient.HouseholdHeadID == nil
}

func GetPatientByID(id uint) (Patient, error) {
	var patient Patient
	if err := DB.First(&patient, id).Error; err != nil {
		return patient, err
	}
	return patient, nil
}

// HouseholdHead resolves the household head for a patient: the patient
// themselves when HouseholdHeadID is nil, otherwise the referenced row.
func HouseholdHead(db *gorm.DB, patient Patient) (Patient, error) {
	if patient.IsHead() {
		return patient, nil
	}
	var head Patient
	if err := db.First(&head, *patient.HouseholdHeadID).Error; err != nil {
		return head, err
	}
	return head, nil
}

// HouseholdIDs returns the ids of the head and every dependent.
func HouseholdIDs(db *gorm.DB, head Patient) ([]uint, error) {
	ids := []uint{head.ID}
	var dependentIDs []uint
	if err := db.Model(&Patient{}).Where("household_head_id = ?", head.ID).Pluck("id", &dependentIDs).Error; err != nil {
		return nil, err
	}
	return append(ids, dependentIDs...), nil
}
