package Controllers

import (
	"log"
	"net/http"

	"github.com/OliveiraAntonioFernando/Ultramed-Project/Middleware"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/Models"

	"github.com/gin-gonic/gin"
)

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, token, err := Models.LoginCheck(input.Username, input.Password)

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username or password is incorrect."})
		return
	}

	user, _ := Models.GetUserByID(uid)

	if user.IsFrozen {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User Frozen"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login Successful", "jwt": token, "role": user.Role, "panel": PanelForRole(user.Role)})
}

type RegisterInput struct {
	Username  string      `json:"username" binding:"required"`
	Password  string      `json:"password" binding:"required"`
	Role      Models.Role `json:"role" binding:"required"`
	Phone     string      `json:"phone"`
	Position  string      `json:"position"`
	PatientID *uint       `json:"patient_id"`
}

// Register creates a staff or patient-portal account. Only MASTER reaches
// this route.
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !input.Role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}

	user := Models.User{
		Username:  input.Username,
		Password:  input.Password,
		Role:      input.Role,
		Phone:     input.Phone,
		Position:  input.Position,
		PatientID: input.PatientID,
	}
	if _, err := user.SaveUser(); err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registered Successfully"})
}

func CurrentUser(c *gin.Context) {
	user, ok := Middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var output struct {
		ID       uint        `json:"ID"`
		Username string      `json:"username"`
		Role     Models.Role `json:"role"`
		Panel    string      `json:"panel"`
	}
	output.ID = user.ID
	output.Username = user.Username
	output.Role = user.Role
	output.Panel = PanelForRole(user.Role)
	c.JSON(http.StatusOK, gin.H{"message": "success", "data": output})
}

func SaveFcmToken(c *gin.Context) {
	var input struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, ok := Middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	deviceToken := Models.DeviceToken{UserID: user.ID, Value: input.Token}
	if err := Models.DB.Save(&deviceToken).Error; err != nil {
		log.Println(err)
	}
	c.JSON(http.StatusOK, nil)
}

func FreezeUser(c *gin.Context) {
	var input struct {
		ID uint `json:"id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user Models.User
	if err := Models.DB.First(&user, input.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	user.ChangeState()
	if err := Models.DB.Model(&Models.User{}).Where("id = ?", user.ID).Update("is_frozen", user.IsFrozen).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "State Changed Successfully"})
}
