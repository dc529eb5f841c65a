package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type TrackerConfig struct {
	APIBaseURL string
	Timeout    time.Duration
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	cfg := &TrackerConfig{
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
		Timeout:    10 * time.Second,
	}

	client := &http.Client{
		Timeout: cfg.Timeout,
	}

	// The tracker runs fine without the API; only save/load and the
	// bestiary/party libraries need it.
	offline := !testConnection(client, cfg.APIBaseURL)
	if offline {
		fmt.Fprintf(os.Stderr, "Could not reach the API at %s. Save/load and libraries will not work until it is up.\nTry: docker-compose up -d\n", cfg.APIBaseURL)
	}

	p := tea.NewProgram(NewTrackerUI(cfg, client, offline),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
