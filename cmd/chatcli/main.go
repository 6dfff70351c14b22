// Command chatcli is an interactive terminal client for the chat service.
// It talks to the configured store and model directly, without the HTTP server.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"conversa/internal/capabilities"
	"conversa/internal/config"
	"conversa/internal/domain/models"
	"conversa/internal/domain/services"
	"conversa/internal/logging"
	"conversa/internal/repository"
	"conversa/internal/service"
	serviceLLM "conversa/internal/service/llm"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

type CLI struct {
	ctx     context.Context
	chatSvc services.ChatService
	history services.HistoryService
	scanner *bufio.Scanner
	path    models.ConversationPath
	logger  *slog.Logger
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("%s❌ %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}

	// Logs go to LOG_DIR (default ./logs) so the console stays readable
	logDir := cfg.LogDir
	if logDir == "" {
		logDir = "logs"
	}
	logger, closeLog, err := logging.New(logging.Options{
		Environment: cfg.Environment,
		Name:        "chatcli",
		LogDir:      logDir,
		MaxFiles:    cfg.LogMaxFiles,
		Output:      io.Discard,
	})
	if err != nil {
		fmt.Printf("%s❌ Failed to setup logger: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
	defer closeLog()

	ctx := context.Background()

	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		fmt.Printf("%s❌ Failed to open store: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
	defer store.Close()

	registry, err := capabilities.NewRegistry()
	if err != nil {
		fmt.Printf("%s❌ Failed to load model catalog: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}

	provider, err := serviceLLM.NewProviderFactory(cfg, registry, logger).CreateDefault(ctx)
	if err != nil {
		fmt.Printf("%s❌ Failed to setup provider: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
	if c, ok := provider.(io.Closer); ok {
		defer c.Close()
	}

	historyService := service.NewHistoryService(store.Messages, logger)
	chatService := service.NewChatService(historyService, provider, service.ChatConfig{
		HistoryLimit:  cfg.HistoryLimit,
		FallbackReply: cfg.FallbackReply,
	}, logger)

	cli := &CLI{
		ctx:     ctx,
		chatSvc: chatService,
		history: historyService,
		scanner: bufio.NewScanner(os.Stdin),
		path:    models.ConversationPath{Project: "cli", Folder: "geral", ChatID: "chat-1"},
		logger:  logger,
	}

	fmt.Printf("\n%sconversa chat CLI%s\n", colorCyan, colorReset)
	fmt.Printf("%sStore: %s | Model: %s/%s%s\n", colorBlue, store.Backend, provider.Name(), provider.Model(), colorReset)
	fmt.Println("Commands: /chat <projeto> <pasta> <chat_id>, /history, /quit")

	cli.run()
}

func (cli *CLI) run() {
	for {
		fmt.Printf("\n%s[%s]%s > ", colorCyan, cli.path.Key(), colorReset)
		if !cli.scanner.Scan() {
			return
		}
		line := cli.scanner.Text()

		switch {
		case line == "/quit" || line == "/exit":
			fmt.Printf("%s✓ Goodbye!%s\n", colorGreen, colorReset)
			return
		case line == "/history":
			cli.showHistory()
		case strings.HasPrefix(line, "/chat"):
			cli.switchChat(strings.Fields(strings.TrimPrefix(line, "/chat")))
		case strings.TrimSpace(line) == "":
			continue
		default:
			cli.send(line)
		}
	}
}

func (cli *CLI) switchChat(args []string) {
	if len(args) != 3 {
		fmt.Printf("%s⚠ Usage: /chat <projeto> <pasta> <chat_id>%s\n", colorYellow, colorReset)
		return
	}
	cli.path = models.ConversationPath{Project: args[0], Folder: args[1], ChatID: args[2]}
	cli.logger.Debug("switched chat", "path", cli.path.Key())
}

func (cli *CLI) showHistory() {
	entries, err := cli.history.GetHistory(cli.ctx, cli.path)
	if err != nil {
		fmt.Printf("%s❌ %v%s\n", colorRed, err, colorReset)
		return
	}
	if len(entries) == 0 {
		fmt.Printf("%s(empty)%s\n", colorYellow, colorReset)
		return
	}
	for _, e := range entries {
		color := colorBlue
		if e.Role == models.RoleModel {
			color = colorGreen
		}
		fmt.Printf("%s%s:%s %s\n", color, e.Role, colorReset, e.Text)
	}
}

func (cli *CLI) send(prompt string) {
	fmt.Printf("%s⏳ Waiting for response...%s\n", colorBlue, colorReset)

	resp, err := cli.chatSvc.SendMessage(cli.ctx, &services.SendMessageRequest{
		Project: cli.path.Project,
		Folder:  cli.path.Folder,
		ChatID:  cli.path.ChatID,
		Prompt:  prompt,
	})
	if err != nil {
		cli.logger.Error("send failed", "path", cli.path.Key(), "error", err)
		fmt.Printf("%s❌ %v%s\n", colorRed, err, colorReset)
		return
	}

	fmt.Printf("%smodel:%s %s\n", colorGreen, colorReset, resp.Reply)
}
