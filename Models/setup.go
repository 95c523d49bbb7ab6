package Models

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDataBase() {

	err := godotenv.Load(".env")

	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	DbHost := os.Getenv("DB_HOST")
	DbUser := os.Getenv("DB_USER")
	DbPassword := os.Getenv("DB_PASSWORD")
	DbName := os.Getenv("DB_NAME")
	DbPort := os.Getenv("DB_PORT")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable", DbHost, DbUser, DbPassword, DbName, DbPort)
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		log.Fatal("connection error:", err)
	}

	Migrate(DB)
}

// Migrate runs AutoMigrate in dependency order. Split out from
// ConnectDataBase so tests can run it against their own database.
func Migrate(db *gorm.DB) {
	// First migrate models with no dependencies
	db.AutoMigrate(&Plan{})
	db.AutoMigrate(&Lead{})
	db.AutoMigrate(&DeviceToken{})

	// Then models that reference the above
	db.AutoMigrate(&Patient{})
	db.AutoMigrate(&User{})

	// Finally models keyed by patient
	db.AutoMigrate(&Invoice{})
	db.AutoMigrate(&Appointment{})
	db.AutoMigrate(&ClinicalNote{})
	db.AutoMigrate(&Prescription{})
}
