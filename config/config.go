package config

import (
	"encoding/json"
	"log"
	"os"
)

type Configuration struct {
	ApiPort string `json:"api_port"`

	Database string `json:"database"` // "sqlite3" ou "postgres"
	DbHost   string `json:"db_host"`
	DbPort   string `json:"db_port"`
	DbUser   string `json:"db_user"`
	DbName   string `json:"db_name"`
	DbPass   string `json:"db_pass"`

	Security struct {
		SessionSecret string `json:"session_secret"`
		SessionName   string `json:"session_name"`
	} `json:"security"`

	// Credenciais criadas pelo seed quando o banco está vazio.
	Seed struct {
		AdminUsername string `json:"admin_username"`
		AdminPassword string `json:"admin_password"`
		UserUsername  string `json:"user_username"`
		UserEmail     string `json:"user_email"`
		UserPassword  string `json:"user_password"`
	} `json:"seed"`
}

func Get(path string) Configuration {
	var c Configuration
	if b, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(b, &c); err != nil {
			log.Fatal(err)
		}
	} else {
		log.Printf("config %s não encontrado, usando defaults", path)
	}

	// defaults (pra evitar nil/zero chato)
	if c.ApiPort == "" {
		c.ApiPort = getenv("PORT", "8080")
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.Security.SessionSecret == "" {
		c.Security.SessionSecret = getenv("SECRET_KEY", "dev-secret-change-in-production")
	}
	if c.Security.SessionName == "" {
		c.Security.SessionName = "alomana_session"
	}
	if c.Seed.AdminUsername == "" {
		c.Seed.AdminUsername = getenv("ADMIN_DEFAULT_USERNAME", "admin")
	}
	if c.Seed.AdminPassword == "" {
		c.Seed.AdminPassword = getenv("ADMIN_DEFAULT_PASSWORD", "admin123")
	}
	if c.Seed.UserUsername == "" {
		c.Seed.UserUsername = getenv("USER_DEFAULT_USERNAME", "usuario_demo")
	}
	if c.Seed.UserEmail == "" {
		c.Seed.UserEmail = getenv("USER_DEFAULT_EMAIL", "usuario@alomana.local")
	}
	if c.Seed.UserPassword == "" {
		c.Seed.UserPassword = getenv("USER_DEFAULT_PASSWORD", "usuario123")
	}

	return c
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
