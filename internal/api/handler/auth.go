package handler

import (
	"net/http"
	"strings"
	"time"

	"crimewatch/backend/internal/identity"
	"crimewatch/backend/internal/models"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const callerContextKey = "caller"

// generateJWT issues a token carrying the normalized caller identity.
func (h *Handler) generateJWT(caller identity.Caller) (string, error) {
	claims := jwt.MapClaims{
		"id":       caller.ID,
		"username": caller.Username,
		"role":     caller.Role,
		"exp":      time.Now().Add(time.Hour * 72).Unix(),
		"iss":      "crimewatch-api",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.JWTSecret)
}

// parseCaller validates a token and extracts the caller identity. This
// is the single place where the token payload is normalized; core
// services only ever see identity.Caller.
func (h *Handler) parseCaller(tokenString string) (identity.Caller, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return h.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return identity.Caller{}, jwt.ErrTokenUnverifiable
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return identity.Caller{}, jwt.ErrTokenInvalidClaims
	}

	id, _ := claims["id"].(float64)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return identity.Caller{ID: uint(id), Username: username, Role: role}, nil
}

// Authenticated requires a valid bearer token and stores the caller in
// the request context.
func (h *Handler) Authenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
			return
		}

		caller, err := h.parseCaller(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
			return
		}

		c.Set(callerContextKey, caller)
		c.Next()
	}
}

// RequireAuthority rejects callers without the authority role.
func (h *Handler) RequireAuthority() gin.HandlerFunc {
	return h.requireRole(models.RoleAuthority)
}

// RequireAdmin rejects callers without the admin role.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return h.requireRole(models.RoleAdmin)
}

func (h *Handler) requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if caller(c).Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": role + " access required"})
			return
		}
		c.Next()
	}
}

func caller(c *gin.Context) identity.Caller {
	v, _ := c.Get(callerContextKey)
	id, _ := v.(identity.Caller)
	return id
}

type registerUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name"`
}

// RegisterUser creates a reporter account.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if existing, err := h.Storage.GetUserByUsername(req.Username); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	} else if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		FullName: req.FullName,
		Role:     models.RoleUser,
		IsActive: true,
	}
	if err := h.Storage.SaveUser(user); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username or email already exists"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user_id": user.ID})
}

type registerAuthorityRequest struct {
	Username     string `json:"username" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	BadgeNumber  string `json:"badge_number" binding:"required"`
	Department   string `json:"department" binding:"required"`
	Jurisdiction string `json:"jurisdiction" binding:"required"`
	PhoneNumber  string `json:"phone_number"`
}

// RegisterAuthority creates the user account plus the authority profile
// in pending-verification state.
func (h *Handler) RegisterAuthority(c *gin.Context) {
	var req registerAuthorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if existing, err := h.Storage.GetUserByUsername(req.Username); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	} else if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username or email already exists"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		Role:     models.RoleAuthority,
		IsActive: true,
	}
	if err := h.Storage.SaveUser(user); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username or email already exists"})
		return
	}

	authority := &models.Authority{
		UserID:       user.ID,
		BadgeNumber:  req.BadgeNumber,
		Department:   req.Department,
		Jurisdiction: req.Jurisdiction,
		PhoneNumber:  req.PhoneNumber,
		IsVerified:   false,
	}
	if err := h.Storage.SaveAuthority(authority); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Badge number already registered"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Authority registration pending verification",
		"user_id":      user.ID,
		"authority_id": authority.ID,
	})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and issues a JWT.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Storage.GetUserByUsername(req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "User is not active"})
		return
	}

	id := identity.Caller{ID: user.ID, Username: user.Username, Role: user.Role}
	token, err := h.generateJWT(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"access_token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
			"email":    user.Email,
		},
	})
}
