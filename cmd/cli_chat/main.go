package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"converso/internal/agent"
	"converso/internal/config"
	"converso/internal/repository"
	"converso/internal/service"
)

// REPL de práctica contra el webhook real: útil para probar el intercambio y
// la caminata de rating sin levantar el API.
func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	exchanger := agent.NewHTTPClient(cfg.AgentWebhookURL, cfg.AgentTimeout(), logger)
	chatSvc := service.NewChatService(logger, repository.NewMemorySessionRepository(), exchanger)

	fmt.Print("Practice language [Spanish]: ")
	lang, _ := reader.ReadString('\n')
	lang = strings.TrimSpace(lang)
	if lang == "" {
		lang = "Spanish"
	}

	session, err := chatSvc.StartSession(ctx, uuid.NewString(), lang, "")
	if err != nil {
		log.Fatalf("start session: %v", err)
	}
	greet := session.History[0]
	fmt.Printf("\n[bot %d ±0] %s\n", greet.Rating, greet.Text)

	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "/quit" {
			return
		}

		result, err := chatSvc.SendTurn(ctx, session.ID, line)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Printf("[you %d %s]\n", result.UserMessage.Rating, chip(result.UserMessage.Delta))
		fmt.Printf("[bot %d %s] %s\n", result.BotMessage.Rating, chip(result.BotMessage.Delta), result.BotMessage.Text)
		if result.RatingChange != nil {
			fmt.Printf("(rating change from agent: %s)\n", chip(*result.RatingChange))
		}
	}
}

func chip(delta int) string {
	if delta > 0 {
		return fmt.Sprintf("+%d", delta)
	}
	if delta == 0 {
		return "±0"
	}
	return fmt.Sprintf("%d", delta)
}
