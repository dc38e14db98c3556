package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mindnest/backend/internal/auth"
	"github.com/mindnest/backend/internal/models"
	"github.com/mindnest/backend/internal/store"
)

const (
	cookieName   = "token"
	cookieMaxAge = int(auth.TokenTTL / time.Second)
)

type signupInput struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Role        string `json:"role"`
	AdminSecret string `json:"adminSecret"`
}

type loginInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

type updateUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// setAuthCookie mirrors the token into an httpOnly cookie so the client can
// use either transport.
func (e *Env) setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(cookieName, token, cookieMaxAge, "/", "", e.Cfg.Production(), true)
}

func (e *Env) Signup(c *gin.Context) {
	var in signupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "all fields (username, email, password) are required"})
		return
	}

	role := models.RoleParticipant
	if in.Role == models.RoleAdmin {
		if e.Cfg.AdminSecret == "" || in.AdminSecret != e.Cfg.AdminSecret {
			c.JSON(http.StatusForbidden, gin.H{"message": "invalid admin secret"})
			return
		}
		role = models.RoleAdmin
	}

	// Fast-path duplicate check; the unique index is the real guard.
	if _, err := e.Users.ByEmail(c.Request.Context(), in.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "user already exists with this email"})
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		e.fail(c, err)
		return
	}
	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := e.Users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "username or email already taken"})
			return
		}
		e.fail(c, err)
		return
	}

	token, err := e.Auth.GenerateToken(user)
	if err != nil {
		e.fail(c, err)
		return
	}
	e.setAuthCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"message": "user created successfully", "user": user, "token": token})
}

func (e *Env) Login(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil || (in.Username == "" && in.Email == "") {
		c.JSON(http.StatusBadRequest, gin.H{"message": "all fields (username/email and password) are required"})
		return
	}

	var user *models.User
	var err error
	if in.Username != "" {
		user, err = e.Users.ByUsername(c.Request.Context(), in.Username)
	} else {
		user, err = e.Users.ByEmail(c.Request.Context(), in.Email)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "user does not exist"})
			return
		}
		e.fail(c, err)
		return
	}

	if !auth.CheckPassword(in.Password, user.PasswordHash) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "incorrect password"})
		return
	}

	token, err := e.Auth.GenerateToken(user)
	if err != nil {
		e.fail(c, err)
		return
	}
	e.setAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"message": "user successfully logged in", "user": user, "token": token})
}

func (e *Env) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(cookieName, "", -1, "/", "", e.Cfg.Production(), true)
	ok(c, http.StatusOK, "logged out", nil)
}

func (e *Env) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
		return
	}
	user, err := e.Users.ByID(c.Request.Context(), uint(id))
	if err != nil {
		e.fail(c, err)
		return
	}
	ok(c, http.StatusOK, "success", user)
}

// UpdateUser lets a user change their own username or email.
func (e *Env) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
		return
	}
	caller := currentUser(c)
	if caller.ID != uint(id) && !caller.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"message": "cannot update another user"})
		return
	}

	var in updateUserInput
	if err := c.ShouldBindJSON(&in); err != nil || (in.Username == "" && in.Email == "") {
		c.JSON(http.StatusBadRequest, gin.H{"message": "at least one field (username or email) must be provided"})
		return
	}

	user, err := e.Users.Update(c.Request.Context(), uint(id), in.Username, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "email or username already in use by another user"})
			return
		}
		e.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user updated successfully", "user": user})
}
