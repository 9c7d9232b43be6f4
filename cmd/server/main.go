package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"creatorkart/config"
	"creatorkart/internal/database"
	"creatorkart/internal/router"
	"creatorkart/internal/service"
	"creatorkart/pkg/email"
	"creatorkart/pkg/gateway"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	var provider gateway.Provider
	if cfg.Gateway.KeyID != "" && cfg.Gateway.KeySecret != "" {
		provider = gateway.NewRazorpayProvider(cfg.Gateway.KeyID, cfg.Gateway.KeySecret, cfg.Gateway.WebhookSecret)
	} else {
		log.Printf("[Gateway] not configured; checkout settles orders immediately (dev only)")
	}

	var mail service.EmailSender
	if cfg.SMTP.Host != "" {
		mail = email.NewSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	} else {
		log.Printf("[Email] SMTP not configured; logging mail to stdout")
		mail = email.LogSender{}
	}

	engine := router.Setup(cfg, db, provider, mail)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Printf("server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server shutdown:", err)
	}
	log.Println("server stopped")
}
