package handlers

import (
	"log"
	"os"
	"time"

	"github.com/Vedang260/EvoFest-Backend/config"
	"github.com/Vedang260/EvoFest-Backend/models"
	"github.com/Vedang260/EvoFest-Backend/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type RegisterRequest struct {
	Username    string `json:"username"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"` // ATTENDEE, ORGANIZER, STAFF
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD
}

type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
}

func Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request",
		})
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields: username, email, password",
		})
	}

	// Admin accounts are seeded, never self-registered
	if req.Role != models.RoleAttendee && req.Role != models.RoleOrganizer && req.Role != models.RoleStaff {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Role must be ATTENDEE, ORGANIZER or STAFF",
		})
	}

	var existingUser models.User
	if err := config.DB.Where("username = ? OR email = ?", req.Username, req.Email).First(&existingUser).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Username or email already exists",
		})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	var dob time.Time
	if req.DateOfBirth != "" {
		dob, err = time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid date_of_birth format. Use YYYY-MM-DD",
			})
		}
	}

	user := models.User{
		UserID:      utils.GenerateUserID(),
		Username:    req.Username,
		Name:        req.Name,
		Email:       req.Email,
		Password:    hashedPassword,
		Role:        req.Role,
		Gender:      req.Gender,
		DateOfBirth: dob,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := config.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user": fiber.Map{
			"user_id":  user.UserID,
			"username": user.Username,
			"name":     user.Name,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request",
		})
	}

	var user models.User
	if err := config.DB.Where("username = ? OR email = ?", req.UsernameOrEmail, req.UsernameOrEmail).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = user.UserID
	claims["username"] = user.Username
	claims["role"] = user.Role
	claims["exp"] = time.Now().Add(24 * time.Hour).Unix()

	tokenString, err := token.SignedString(config.JWTSecret())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   tokenString,
		"user": fiber.Map{
			"user_id":  user.UserID,
			"username": user.Username,
			"name":     user.Name,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

func GetProfile(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	return c.JSON(user)
}

// DefaultAdminSetup seeds the admin account from env on first boot.
func DefaultAdminSetup() error {
	username := config.Getenv("DEFAULT_ADMIN_USERNAME", "admin")
	email := config.Getenv("DEFAULT_ADMIN_EMAIL", "admin@evofest.com")
	password := os.Getenv("DEFAULT_ADMIN_PASS")
	if password == "" {
		log.Println("DEFAULT_ADMIN_PASS not set, skipping admin seed")
		return nil
	}

	var existing models.User
	if err := config.DB.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		UserID:    utils.GenerateUserID(),
		Username:  username,
		Name:      config.Getenv("DEFAULT_ADMIN_NAME", "EvoFest Admin"),
		Email:     email,
		Password:  hashedPassword,
		Role:      models.RoleAdmin,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := config.DB.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("Default admin user created, username:", username)
	return nil
}
