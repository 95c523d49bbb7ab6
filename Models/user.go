package Models

import (
	"errors"
	"html"
	"strings"

	"github.com/OliveiraAntonioFernando/Ultramed-Project/Utils/Token"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Role is the closed set of account roles. Panel routing and route gating
// read this field only, never the username.
type Role string

const (
	RoleMaster    Role = "MASTER"
	RoleDoctor    Role = "MEDICO"
	RoleFrontDesk Role = "RECEPCAO"
	RolePatient   Role = "CLIENTE"
)

func (role Role) Valid() bool {
	switch role {
	case RoleMaster, RoleDoctor, RoleFrontDesk, RolePatient:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	Username string        `gorm:"size:255;not null;unique" json:"username"`
	Password string        `gorm:"size:255;not null;" json:"password"`
	Role     Role          `gorm:"size:20;not null" json:"role"`
	Phone    string        `json:"phone"`
	Position string        `json:"position"`
	Tokens   []DeviceToken `gorm:"foreignKey:UserID"`
	IsFrozen bool          `json:"is_frozen"`
	// PatientID links portal accounts (RolePatient) to their registry row.
	PatientID *uint `json:"patient_id" gorm:"default:null"`
}

type DeviceToken struct {
	gorm.Model
	UserID uint
	Value  string `json:"value" gorm:"unique"`
}

func GetUserByID(uid uint) (User, error) {
	var user User

	if err := DB.First(&user, uid).Error; err != nil {
		return user, errors.New("User not found")
	}

	user.PrepareGive()

	return user, nil

}

// GetStaffFCMs collects the device tokens of every non-patient account,
// deduplicated, for clinic-wide push notifications.
func GetStaffFCMs() ([]string, error) {
	var users []User
	if err := DB.Where("role <> ?", RolePatient).Find(&users).Error; err != nil {
		return nil, errors.New("No staff users found")
	}

	uniqueFCMs := make(map[string]struct{})
	for _, staff := range users {
		var tokens []DeviceToken
		if err := DB.Where("user_id = ?", staff.ID).Find(&tokens).Error; err != nil {
			continue
		}
		for _, token := range tokens {
			uniqueFCMs[token.Value] = struct{}{}
		}
	}

	var fcms []string
	for token := range uniqueFCMs {
		fcms = append(fcms, token)
	}
	return fcms, nil
}

func (user *User) ChangeState() {
	user.IsFrozen = !user.IsFrozen
}

func (user *User) PrepareGive() {
	user.Password = ""
}

func VerifyPassword(password, hashedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func LoginCheck(username string, password string) (uint, string, error) {

	var err error

	user := User{}

	err = DB.Model(User{}).Where("username = ?", username).Take(&user).Error

	if err != nil {
		return 0, "", err
	}

	err = VerifyPassword(password, user.Password)

	if err != nil && err == bcrypt.ErrMismatchedHashAndPassword {
		return 0, "", err
	}

	token, err := Token.GenerateToken(user.ID)

	if err != nil {
		return 0, "", err
	}

	return user.ID, token, nil

}

func (user *User) SaveUser() (*User, error) {

	if err := user.BeforeSave(); err != nil {
		return &User{}, err
	}

	if err := DB.Create(&user).Error; err != nil {
		return &User{}, err
	}

	return user, nil
}

func (user *User) BeforeSave() error {

	//turn password into hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)

	//remove spaces in username
	user.Username = html.EscapeString(strings.TrimSpace(user.Username))

	return nil

}
