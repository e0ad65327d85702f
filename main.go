package main

import (
	"log"
	"os"

	"alomana/config"
	dbpkg "alomana/db"
	"alomana/router"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env é opcional; em produção as variáveis vêm do ambiente mesmo
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.json"
	}
	cfg := config.Get(configPath)

	dbpkg.SetConfigurations(cfg)
	database, err := dbpkg.Connect()
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	if err := dbpkg.Seed(database, cfg); err != nil {
		log.Fatal(err)
	}

	r := gin.New()

	store := cookie.NewStore([]byte(cfg.Security.SessionSecret))
	r.Use(sessions.Sessions(cfg.Security.SessionName, store))
	r.Use(dbpkg.SetDBtoContext(database))

	router.Initialize(r, cfg)

	log.Printf("AloMana listening on :%s", cfg.ApiPort)
	log.Fatal(r.Run(":" + cfg.ApiPort))
}
