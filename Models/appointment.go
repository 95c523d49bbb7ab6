package Models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AppointmentKind string

const (
	KindConsultation AppointmentKind = "CONSULTA"
	KindExam         AppointmentKind = "EXAME"
)

type AppointmentStatus string

const (
	AppointmentWaiting   AppointmentStatus = "AGUARDANDO"
	AppointmentDone      AppointmentStatus = "REALIZADO"
	AppointmentCancelled AppointmentStatus = "CANCELADO"
)

type Appointment struct {
	gorm.Model
	PatientID   uint              `json:"patient_id"`
	PatientName string            `json:"patient_name"`
	Doctor      string            `json:"doctor"`
	Kind        AppointmentKind   `json:"kind" gorm:"default:CONSULTA"`
	ExamName    string            `json:"exam_name"`
	Date        string            `json:"date"`
	Hour        string            `json:"hour"`
	Price       decimal.Decimal   `json:"price" gorm:"type:numeric"`
	Status      AppointmentStatus `json:"status" gorm:"default:AGUARDANDO"`
	// ReminderSent keeps the reminder cron from messaging twice.
	ReminderSent bool `json:"reminder_sent"`
}
