package CronJobs

import (
	"fmt"
	"log"
	"time"

	"github.com/OliveiraAntonioFernando/Ultramed-Project/Models"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/Whatsapp"

	"github.com/go-co-op/gocron"
	"gorm.io/gorm"
)

// ClinicWorkers runs the recurring background jobs: invoice overdue
// sweeps and appointment reminder messages.
type ClinicWorkers struct {
	DB *gorm.DB
}

func NewClinicWorkers(db *gorm.DB) *ClinicWorkers {
	return &ClinicWorkers{
		DB: db,
	}
}

// StartCron schedules the recurring jobs and starts the scheduler.
func (cw *ClinicWorkers) StartCron() *gocron.Scheduler {
	scheduler := gocron.NewScheduler(time.Local)

	scheduler.Every(1).Day().At("00:15").Do(func() {
		log.Println("Running overdue invoice sweep...")
		if err := cw.SweepOverdueInvoices(); err != nil {
			log.Printf("Error sweeping overdue invoices: %v", err)
		}
	})

	scheduler.Every(10).Minutes().Do(func() {
		log.Println("Running appointment reminder check...")
		if err := cw.SendAppointmentReminders(); err != nil {
			log.Printf("Error sending appointment reminders: %v", err)
		}
	})

	scheduler.StartAsync()
	log.Println("Clinic cron jobs started")

	return scheduler
}

// SweepOverdueInvoices flips pending invoices whose due date has passed
// to OVERDUE. Invoices without a due date are left alone.
func (cw *ClinicWorkers) SweepOverdueInvoices() error {
	today := time.Date(time.Now().Year(), time.Now().Month(), time.Now().Day(), 0, 0, 0, 0, time.Local)

	result := cw.DB.Model(&Models.Invoice{}).
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?", Models.InvoicePending, today).
		Update("status", Models.InvoiceOverdue)
	if result.Error != nil {
		return fmt.Errorf("failed to sweep overdue invoices: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		log.Printf("Marked %d invoices as overdue", result.RowsAffected)
	}
	return nil
}

// SendAppointmentReminders messages patients whose appointment starts
// roughly three hours from now. ReminderSent guards against repeats
// across runs.
func (cw *ClinicWorkers) SendAppointmentReminders() error {
	now := time.Now()

	startWindow := now.Add(2*time.Hour + 50*time.Minute)
	endWindow := now.Add(3*time.Hour + 10*time.Minute)

	var appointments []Models.Appointment
	result := cw.DB.Where("status = ? AND reminder_sent = ? AND date IN ?",
		Models.AppointmentWaiting,
		false,
		[]string{startWindow.Format("2006-01-02"), endWindow.Format("2006-01-02")}).
		Find(&appointments)
	if result.Error != nil {
		return fmt.Errorf("failed to query upcoming appointments: %w", result.Error)
	}

	for _, appointment := range appointments {
		appointmentTime, err := parseDateHour(appointment.Date, appointment.Hour)
		if err != nil {
			log.Printf("Failed to parse appointment time for ID %d: %v", appointment.ID, err)
			continue
		}
		if appointmentTime.Before(startWindow) || appointmentTime.After(endWindow) {
			continue
		}

		if appointment.PatientID == 0 {
			continue
		}
		patient, err := Models.GetPatientByID(appointment.PatientID)
		if err != nil {
			log.Printf("Failed to find patient for appointment ID %d: %v", appointment.ID, err)
			continue
		}
		if patient.Phone == "" {
			continue
		}

		with := appointment.Doctor
		if appointment.Kind == Models.KindExam && appointment.ExamName != "" {
			with = appointment.ExamName
		}
		message := fmt.Sprintf(
			"Lembrete: voce tem %s as %s hoje (daqui a 3 horas). "+
				"Por favor chegue 10 minutos antes. Para remarcar, entre em contato conosco.",
			with,
			appointmentTime.Format("15:04"),
		)

		if err := Whatsapp.SendMessage(patient.Phone, message); err != nil {
			log.Printf("Failed to send reminder to patient %s: %v", patient.FullName, err)
			continue
		}

		if err := cw.DB.Model(&Models.Appointment{}).
			Where("id = ?", appointment.ID).
			Update("reminder_sent", true).Error; err != nil {
			log.Printf("Failed to flag reminder for appointment ID %d: %v", appointment.ID, err)
			continue
		}

		log.Printf("Reminder sent to %s for appointment at %s %s", patient.FullName, appointment.Date, appointment.Hour)
	}

	return nil
}

func parseDateHour(date, hour string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+hour, time.Local)
}
