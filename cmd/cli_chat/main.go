package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"sv-chat/internal/client"
	"sv-chat/internal/config"
	"sv-chat/internal/domain"
)

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadCLIConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	chat := client.NewChatClient(cfg.APIURL, nil)

	username := strings.TrimSpace(cfg.Username)
	for username == "" {
		fmt.Print("Username: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		username = strings.TrimSpace(line)
	}

	if err := printHistory(ctx, chat); err != nil {
		logger.Fatal("load history", zap.String("api_url", cfg.APIURL), zap.Error(err))
	}
	fmt.Println("Comandos: /refresh, /clear, /quit")

	for {
		fmt.Printf("%s> ", username)
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\r\n")

		switch strings.TrimSpace(line) {
		case "/quit":
			return
		case "/refresh":
			if err := printHistory(ctx, chat); err != nil {
				logger.Warn("refresh failed", zap.Error(err))
			}
			continue
		case "/clear":
			if err := chat.ClearMessages(ctx); err != nil {
				logger.Warn("clear failed", zap.Error(err))
				continue
			}
			fmt.Println("Historial borrado.")
			continue
		}

		msg, err := chat.PostMessage(ctx, username, line)
		if err != nil {
			var apiErr *client.APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
				fmt.Println("error:", apiErr.Message)
				continue
			}
			logger.Warn("post failed", zap.Error(err))
			continue
		}
		printMessage(msg)
	}
}

func printHistory(ctx context.Context, chat *client.ChatClient) error {
	messages, err := chat.ListMessages(ctx)
	if err != nil {
		return err
	}
	fmt.Println("===== Chat =====")
	for _, msg := range messages {
		printMessage(msg)
	}
	return nil
}

func printMessage(msg domain.Message) {
	fmt.Printf("[%s] #%d %s: %s\n", msg.CreatedAt.Local().Format(time.TimeOnly), msg.ID, msg.Author, msg.Body)
}
