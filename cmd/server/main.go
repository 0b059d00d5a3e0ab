package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rezum-backend/internal/config"
	"rezum-backend/internal/handlers"
	"rezum-backend/internal/router"
	"rezum-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting RezumAI Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Services ────
	geminiService := services.NewGeminiService(
		cfg.GeminiAPIKey,
		cfg.GeminiMaxAttempts,
		time.Duration(cfg.GeminiBaseDelaySeconds)*time.Second,
	)
	pdfExtractService := services.NewPDFExtractService()
	log.Println("✓ Gemini relay initialized")

	// ──── Step 3: Initialize Handlers ────
	chatHandler := handlers.NewChatHandler(geminiService)
	uploadHandler := handlers.NewUploadHandler(pdfExtractService, cfg.MaxUploadMB)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(chatHandler, uploadHandler, cfg.GeminiAPIKey != "", cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ RezumAI Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
