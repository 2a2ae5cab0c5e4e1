package api

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"game_backend/internal/domain"     // Importing domain models
	"game_backend/internal/repository" // Data-access layer
	"game_backend/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// RegisterResponse is returned after a registration attempt
type RegisterResponse struct {
	Success bool   `json:"success"`           // Whether the account was created
	UserID  string `json:"user_id,omitempty"` // New user id on success
	Error   string `json:"error,omitempty"`   // Human-readable failure reason
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// AuthResponse is returned after a successful login
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

// defaultNickname derives an initial profile nickname from the email local part
func defaultNickname(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at] // Use everything before the @
	}
	return email
}

// RegisterHandler creates a new user account with a bcrypt-hashed password
// and bootstraps the user's initial profile in the same transaction.
func RegisterHandler(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Reject emails that already belong to an existing user (exact match)
		existing, err := users.GetUserByEmail(c.Request.Context(), req.Email)
		if err != nil {
			// Store failure during the lookup
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check email"})
			return
		}
		if existing != nil {
			// Duplicate email is a domain failure, not a transport error
			c.JSON(http.StatusOK, RegisterResponse{Success: false, Error: "Email already in use"})
			return
		}
		// Hash the password; bcrypt salts every call, so equal passwords
		// never produce equal hashes
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := domain.User{Email: req.Email, HashedPassword: string(hash), Role: "user"}
		profile := domain.UserProfile{Nickname: defaultNickname(req.Email)}
		// Create user and profile together
		if err := users.CreateUserWithProfile(c.Request.Context(), &user, &profile); err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"email": req.Email,   // Requested email
				"error": err.Error(), // Error message
			}).Error("User registration failed") // Log registration failure
			// Surface as a domain failure with the error captured
			c.JSON(http.StatusOK, RegisterResponse{Success: false, Error: "Failed to create user account"})
			return
		}
		// Return success response with the new user id
		c.JSON(http.StatusOK, RegisterResponse{Success: true, UserID: user.ID})
	}
}

// LoginHandler authenticates a user by email and returns a JWT token
func LoginHandler(users repository.UserRepository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Fetch user from the store
		user, err := users.GetUserByEmail(c.Request.Context(), req.Email)
		if err != nil || user == nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}
