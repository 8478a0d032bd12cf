package controllers

import (
	"foodgram/internal/apperrors"
	"foodgram/internal/models"
	"foodgram/internal/repository"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type UserController struct {
	userRepo         repository.UserRepository
	subscriptionRepo repository.SubscriptionRepository
}

func NewUserController(userRepo repository.UserRepository, subscriptionRepo repository.SubscriptionRepository) *UserController {
	return &UserController{userRepo: userRepo, subscriptionRepo: subscriptionRepo}
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

// Register godoc
// @Summary Register a new user
// @Tags user
// @Accept json
// @Produce json
// @Param user body controllers.RegisterRequest true "User data"
// @Success 201 {object} map[string]interface{} "User registered successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 409 {object} map[string]interface{} "Email or username already taken"
// @Router /users [post]
func (uc *UserController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to register user",
			"error":   err.Error(),
		})
		return
	}

	user := models.User{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(passwordHash),
	}

	if err := uc.userRepo.Create(&user); err != nil {
		if apperrors.IsConflict(err) {
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": "Email or username already taken",
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to register user",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "User registered successfully",
		"data":    serializeUser(&user, false),
	})
}

// Login godoc
// @Summary Authenticate and issue a JWT
// @Tags user
// @Accept json
// @Produce json
// @Param credentials body controllers.LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{} "Login successful"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Router /auth/token/login [post]
func (uc *UserController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	user, err := uc.userRepo.FindByEmail(req.Email)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Invalid credentials",
			"error":   "Email or password is incorrect",
		})
		return
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
	})

	jwtSecret := []byte(os.Getenv("JWT_SECRET_KEY"))
	tokenString, err := jwtToken.SignedString(jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Could not generate token",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Login successful",
		"data":    gin.H{"auth_token": tokenString},
	})
}

// Me godoc
// @Summary Get the current user's profile
// @Tags user
// @Produce json
// @Success 200 {object} map[string]interface{} "Profile retrieved successfully"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /users/me [get]
func (uc *UserController) Me(c *gin.Context) {
	userID, _ := currentUserID(c)

	user, err := uc.userRepo.FindByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "User not found",
			"error":   "No user exists with the provided ID",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Profile retrieved successfully",
		"data":    serializeUser(user, false),
	})
}

// GetUser godoc
// @Summary Get a user by ID
// @Description Includes is_subscribed computed against the viewing user
// @Tags user
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{} "User retrieved successfully"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /users/{id} [get]
func (uc *UserController) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid user ID",
			"error":   "ID must be a valid positive integer",
		})
		return
	}

	user, err := uc.userRepo.FindByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "User not found",
			"error":   "No user exists with the provided ID",
		})
		return
	}

	isSubscribed := false
	if viewerID, authenticated := currentUserID(c); authenticated && viewerID != user.ID {
		isSubscribed, err = uc.subscriptionRepo.Exists(viewerID, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to retrieve user",
				"error":   err.Error(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User retrieved successfully",
		"data":    serializeUser(user, isSubscribed),
	})
}

// ListUsers godoc
// @Summary List users
// @Description Paginated user list with batched is_subscribed flags
// @Tags user
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} map[string]interface{} "Users retrieved successfully"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve users"
// @Router /users [get]
func (uc *UserController) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	users, total, err := uc.userRepo.FindAll(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve users",
			"error":   err.Error(),
		})
		return
	}

	// One batched lookup for the whole page, not one query per row.
	subscribed := map[uint]bool{}
	if viewerID, authenticated := currentUserID(c); authenticated && len(users) > 0 {
		ids := make([]uint, 0, len(users))
		for _, user := range users {
			ids = append(ids, user.ID)
		}
		subscribed, err = uc.subscriptionRepo.FilterAuthorIDs(viewerID, ids)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to retrieve users",
				"error":   err.Error(),
			})
			return
		}
	}

	results := make([]UserResponse, 0, len(users))
	for i := range users {
		results = append(results, serializeUser(&users[i], subscribed[users[i].ID]))
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Users retrieved successfully",
		"data": gin.H{
			"count":   total,
			"results": results,
		},
	})
}

// UpdateAvatar godoc
// @Summary Set the current user's avatar
// @Description The avatar payload is an opaque blob reference; only presence is validated
// @Tags user
// @Accept json
// @Produce json
// @Param avatar body controllers.AvatarRequest true "Avatar payload"
// @Success 200 {object} map[string]interface{} "Avatar updated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /users/me/avatar [put]
func (uc *UserController) UpdateAvatar(c *gin.Context) {
	userID, _ := currentUserID(c)

	var req AvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	user, err := uc.userRepo.FindByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "User not found",
			"error":   "No user exists with the provided ID",
		})
		return
	}

	user.Avatar = req.Avatar
	if err := uc.userRepo.Update(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update avatar",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Avatar updated successfully",
		"data":    serializeUser(user, false),
	})
}

// DeleteAvatar godoc
// @Summary Remove the current user's avatar
// @Tags user
// @Produce json
// @Success 200 {object} map[string]interface{} "Avatar removed successfully"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /users/me/avatar [delete]
func (uc *UserController) DeleteAvatar(c *gin.Context) {
	userID, _ := currentUserID(c)

	user, err := uc.userRepo.FindByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "User not found",
			"error":   "No user exists with the provided ID",
		})
		return
	}

	user.Avatar = ""
	if err := uc.userRepo.Update(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to remove avatar",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Avatar removed successfully",
		"data":    nil,
	})
}
