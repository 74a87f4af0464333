package auth_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rideon/rental/logger"
	"github.com/rideon/rental/models/shared_models"
	"github.com/rideon/rental/models/user_models"
	"github.com/rideon/rental/utils"
	"github.com/rideon/rental/utils/shared_utils"
)

type AuthController struct {
	DB *pgxpool.Pool
}

func NewAuthController(db *pgxpool.Pool) *AuthController {
	return &AuthController{DB: db}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=admin customer"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Register creates a new user account. Unless an admin role is asked
// for explicitly, new accounts are customers.
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	role := req.Role
	if role == "" {
		role = shared_models.RoleCustomer
	}

	user, err := user_models.CreateUser(c.Request.Context(), ac.DB, req.Name, req.Email, req.Password, req.Phone, role)
	if err != nil {
		if errors.Is(err, user_models.ErrEmailTaken) {
			utils.Fail(c, http.StatusConflict, "Email already registered", err)
			return
		}
		logger.ErrorLogger.Errorf("Registration failed for %s: %v", req.Email, err)
		utils.Fail(c, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	utils.OK(c, http.StatusCreated, "User registered successfully", user)
}

// Login verifies credentials and issues an access/refresh token pair.
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	user, err := user_models.AuthenticateUser(c.Request.Context(), ac.DB, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user_models.ErrInvalidCredentials) {
			utils.Fail(c, http.StatusUnauthorized, "Invalid credentials", err)
			return
		}
		logger.ErrorLogger.Errorf("Login failed for %s: %v", req.Email, err)
		utils.Fail(c, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	pair, err := ac.issueTokens(c, user.ID, user.Role)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	utils.OK(c, http.StatusOK, "Login successful", gin.H{
		"token":         pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"user":          user,
	})
}

// RefreshToken rotates a refresh token: the presented jti is revoked
// and a fresh pair is issued.
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	claims, err := shared_models.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Invalid refresh token", err)
		return
	}

	ctx := c.Request.Context()
	userID, err := shared_utils.RefreshTokenUserID(ctx, claims.JTI)
	if err != nil || userID != claims.UserID {
		utils.Fail(c, http.StatusUnauthorized, "Invalid refresh token", shared_models.ErrInvalidToken)
		return
	}

	user, err := user_models.GetUserByID(ctx, ac.DB, claims.UserID)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Invalid refresh token", shared_models.ErrInvalidToken)
		return
	}

	if err := shared_utils.RevokeRefreshToken(ctx, claims.JTI); err != nil {
		logger.WarnLogger.Warnf("Failed to revoke rotated refresh token: %v", err)
	}

	pair, err := ac.issueTokens(c, user.ID, user.Role)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	utils.OK(c, http.StatusOK, "Token refreshed", pair)
}

// Logout revokes the presented refresh token.
func (ac *AuthController) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	claims, err := shared_models.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Invalid refresh token", err)
		return
	}

	if err := shared_utils.RevokeRefreshToken(c.Request.Context(), claims.JTI); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	utils.OK(c, http.StatusOK, "Logged out", nil)
}

func (ac *AuthController) issueTokens(c *gin.Context, userID int64, role string) (*tokenPair, error) {
	accessToken, err := shared_models.GenerateAccessToken(userID, role, shared_models.AccessTokenExpiry)
	if err != nil {
		return nil, err
	}

	refreshToken, jti, err := shared_models.GenerateRefreshToken(userID, shared_models.RefreshTokenExpiry)
	if err != nil {
		return nil, err
	}

	if err := shared_utils.StoreRefreshToken(c.Request.Context(), jti, userID, shared_models.RefreshTokenExpiry); err != nil {
		// Login still works without Redis; refresh just won't.
		logger.WarnLogger.Warnf("Failed to store refresh token for user %d: %v", userID, err)
	}

	return &tokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
