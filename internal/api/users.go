package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // Path parameter parsing
	"time"     // Token TTL

	"task_system/internal/middleware" // Resolved identity accessor
	"task_system/internal/service"    // User service
	"task_system/internal/utils"      // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RegisterRequest is the payload for user registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// LoginRequest is the payload for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// UpdateUserRequest carries optional profile changes. The password field
// is plaintext and is hashed server-side before storage.
type UpdateUserRequest struct {
	Username string `json:"username"` // New username, unchanged when empty
	Password string `json:"password"` // New plaintext password, unchanged when empty
}

// RegisterHandler creates a user and issues a token for immediate login
func RegisterHandler(users *service.UserService, secret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
			return
		}
		user, err := users.Register(req.Username, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrConflict) {
				// Duplicate username
				c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"username": req.Username, // Attempted username
				"error":    err.Error(),  // Error message
			}).Error("Registration failed") // Log registration failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
			return
		}
		// Issue a token so the new user is logged in right away
		token, err := utils.GenerateJWT(user.Username, secret, ttl)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // New user ID
			"username": user.Username, // New username
		}).Info("User registered") // Log successful registration
		// Return identity and token
		c.JSON(http.StatusOK, gin.H{
			"id":           user.ID,
			"username":     user.Username,
			"access_token": token,
			"token_type":   "bearer",
		})
	}
}

// LoginHandler authenticates a user and returns a bearer token
func LoginHandler(users *service.UserService, secret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
			return
		}
		user, err := users.Login(req.Username, req.Password)
		if err != nil {
			// Unknown username and wrong password share one response
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.Username, secret, ttl)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
	}
}

// ProfileHandler returns the authenticated user's profile.
// The hashed password is never part of the response.
func ProfileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username})
	}
}

// UpdateUserHandler applies a partial profile update. A caller can only
// reach their own record; any other id reads as not found.
func UpdateUserHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.ParseUint(c.Param("id"), 10, 64) // Parse path parameter
		if err != nil || uint(id) != current.ID {
			// Foreign or malformed id is indistinguishable from a missing user
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		var req UpdateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := users.UpdateProfile(uint(id), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"user_id": id,          // Target user ID
				"error":   err.Error(), // Error message
			}).Error("Profile update failed") // Log update failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// DeleteUserHandler deletes the authenticated caller's own account and
// cascades to their tasks. There is no path to delete anyone else.
func DeleteUserHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err := users.DeleteAccount(user); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,     // User ID
				"error":   err.Error(), // Error message
			}).Error("Account deletion failed") // Log deletion failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // Deleted user ID
			"username": user.Username, // Deleted username
		}).Info("Account deleted") // Log successful deletion
		c.JSON(http.StatusOK, gin.H{"detail": "Your account has been deleted"})
	}
}
