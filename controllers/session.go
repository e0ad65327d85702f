package controllers

import (
	dbpkg "alomana/db"
	"alomana/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Chaves fixas dos dois domínios de identidade dentro do blob de sessão.
// Um visitante pode carregar os dois ao mesmo tempo; um nunca concede os
// direitos do outro.
const USER_SESSION_KEY = "user_id"
const ADMIN_SESSION_KEY = "admin_user_id"

// CurrentUser carrega o usuário logado na sessão, se houver.
func CurrentUser(c *gin.Context) (models.User, bool) {
	session := sessions.Default(c)
	id, ok := session.Get(USER_SESSION_KEY).(int64)
	if !ok || id <= 0 {
		return models.User{}, false
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		return models.User{}, false
	}
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return models.User{}, false
	}
	return user, true
}

// CurrentAdmin carrega o operador de triagem logado na sessão, se houver.
func CurrentAdmin(c *gin.Context) (models.AdminUser, bool) {
	session := sessions.Default(c)
	id, ok := session.Get(ADMIN_SESSION_KEY).(int64)
	if !ok || id <= 0 {
		return models.AdminUser{}, false
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		return models.AdminUser{}, false
	}
	var admin models.AdminUser
	if err := db.First(&admin, id).Error; err != nil {
		return models.AdminUser{}, false
	}
	return admin, true
}

// PrincipalFromContext resolve o Principal do chamador. Sessão de triagem
// prevalece quando as duas identidades coexistem no mesmo navegador.
func PrincipalFromContext(c *gin.Context) models.Principal {
	if admin, ok := CurrentAdmin(c); ok {
		return models.StaffPrincipal(admin.ID)
	}
	if user, ok := CurrentUser(c); ok {
		return models.ReporterPrincipal(user.ID)
	}
	return models.Anonymous()
}

func setSessionID(c *gin.Context, key string, id int64) error {
	session := sessions.Default(c)
	session.Set(key, id)
	return session.Save()
}

func clearSessionID(c *gin.Context, key string) error {
	session := sessions.Default(c)
	session.Delete(key)
	return session.Save()
}
