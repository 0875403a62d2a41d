package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/todoist/internal/client"
	"github.com/nhle/todoist/internal/config"
	"github.com/nhle/todoist/internal/ui"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	warns := &ui.WarningBuffer{}
	remote := client.New(cfg.Client.BaseURL, &http.Client{
		Timeout: time.Duration(cfg.Client.TimeoutSec) * time.Second,
	})
	cache := client.NewCache(remote, warns)

	p := tea.NewProgram(ui.New(cache, warns), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("running ui: %v", err)
	}
}
