package controllers

import (
	"net/http"
	"strings"

	dbpkg "alomana/db"
	"alomana/models"
	"alomana/tools"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Username        string `json:"username" form:"username"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

type LoginRequest struct {
	Login    string `json:"login" form:"login"`
	Password string `json:"password" form:"password"`
}

type AdminLoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// POST /api/users
func CreateUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if len(username) < 3 {
		RespondError(c, "informe um usuário com pelo menos 3 caracteres", http.StatusBadRequest)
		return
	}
	if !tools.ValidateEmail(email) {
		RespondError(c, "informe um email válido", http.StatusBadRequest)
		return
	}
	if tools.CheckPassword(req.Password) != "" {
		RespondError(c, "a senha deve ter no mínimo 6 caracteres", http.StatusBadRequest)
		return
	}
	if req.Password != req.ConfirmPassword {
		RespondError(c, "as senhas não coincidem", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var existing models.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		RespondError(c, "este nome de usuário já está em uso", http.StatusBadRequest)
		return
	}
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		RespondError(c, "este email já está cadastrado", http.StatusBadRequest)
		return
	}

	hash, err := tools.HashPassword(req.Password)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	user := models.User{Username: username, Email: email, PasswordHash: hash}
	if err := db.Create(&user).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	if err := setSessionID(c, USER_SESSION_KEY, user.ID); err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// POST /api/login
// Aceita username ou email no campo login. Falha sempre com a mesma
// mensagem para não entregar quais contas existem.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	login := strings.TrimSpace(req.Login)
	if login == "" || req.Password == "" {
		RespondError(c, "login e password são obrigatórios", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var user models.User
	err := db.Where("username = ? OR email = ?", login, strings.ToLower(login)).First(&user).Error
	if err != nil || !tools.CheckPasswordHash(user.PasswordHash, req.Password) {
		RespondError(c, "usuário/email ou senha inválidos", http.StatusUnauthorized)
		return
	}

	if err := setSessionID(c, USER_SESSION_KEY, user.ID); err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{"user": user})
}

// POST /api/logout
func Logout(c *gin.Context) {
	if err := clearSessionID(c, USER_SESSION_KEY); err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, gin.H{"status": "logged_out"})
}

// POST /api/admin/login
func AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		RespondError(c, "username e password são obrigatórios", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var admin models.AdminUser
	err := db.Where("username = ?", username).First(&admin).Error
	if err != nil || !tools.CheckPasswordHash(admin.PasswordHash, req.Password) {
		RespondError(c, "usuário ou senha inválidos", http.StatusUnauthorized)
		return
	}

	if err := setSessionID(c, ADMIN_SESSION_KEY, admin.ID); err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{"admin_user": admin})
}

// POST /api/admin/logout
func AdminLogout(c *gin.Context) {
	if err := clearSessionID(c, ADMIN_SESSION_KEY); err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, gin.H{"status": "logged_out"})
}
