package user_controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rideon/rental/logger"
	"github.com/rideon/rental/models/shared_models"
	"github.com/rideon/rental/models/user_models"
	"github.com/rideon/rental/utils"
)

type UserController struct {
	DB *pgxpool.Pool
}

func NewUserController(db *pgxpool.Pool) *UserController {
	return &UserController{DB: db}
}

type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1"`
	Phone    *string `json:"phone" binding:"omitempty,min=1"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

// GetUsers lists every user. Admin only.
func (uc *UserController) GetUsers(c *gin.Context) {
	users, err := user_models.GetAllUsers(c.Request.Context(), uc.DB)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list users: %v", err)
		utils.Fail(c, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	utils.OK(c, http.StatusOK, "Users retrieved successfully", users)
}

// UpdateUser updates profile fields. Customers may only update their
// own record; admins may update anyone.
func (uc *UserController) UpdateUser(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid user id", err)
		return
	}

	callerID, callerRole, err := utils.GetCaller(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	if callerRole != shared_models.RoleAdmin && callerID != targetID {
		utils.Fail(c, http.StatusForbidden, "You can only update your own profile", nil)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}
	if req.Name == nil && req.Phone == nil && req.Password == nil {
		utils.Fail(c, http.StatusBadRequest, "Nothing to update", nil)
		return
	}

	patch := user_models.UserPatch{Name: req.Name, Phone: req.Phone, Password: req.Password}
	user, err := user_models.UpdateUser(c.Request.Context(), uc.DB, targetID, patch)
	if err != nil {
		if errors.Is(err, user_models.ErrUserNotFound) {
			utils.Fail(c, http.StatusNotFound, "User not found", err)
			return
		}
		logger.ErrorLogger.Errorf("Failed to update user %d: %v", targetID, err)
		utils.Fail(c, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	utils.OK(c, http.StatusOK, "User updated successfully", user)
}

// DeleteUser removes a user. Admin only; refused while the user still
// has active bookings.
func (uc *UserController) DeleteUser(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid user id", err)
		return
	}

	if err := user_models.DeleteUser(c.Request.Context(), uc.DB, targetID); err != nil {
		switch {
		case errors.Is(err, user_models.ErrUserNotFound):
			utils.Fail(c, http.StatusNotFound, "User not found", err)
		case errors.Is(err, user_models.ErrUserHasActiveBookings):
			utils.Fail(c, http.StatusConflict, "User has active bookings", err)
		default:
			logger.ErrorLogger.Errorf("Failed to delete user %d: %v", targetID, err)
			utils.Fail(c, http.StatusInternalServerError, "Internal Server Error", err)
		}
		return
	}

	utils.OK(c, http.StatusOK, "User deleted successfully", nil)
}
