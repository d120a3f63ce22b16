// Terminal driver for the conversation flow. Runs the chat engine against a
// live server, standing in for the browser UI.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"vmake/chat"
	"vmake/client"
	"vmake/config"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}
	config.LoadConfig()

	api := client.New(config.AppConfig.APIBaseURL)
	ctx := context.Background()

	health, err := api.Health(ctx)
	if err != nil {
		log.Fatalf("Server unreachable at %s: %v", config.AppConfig.APIBaseURL, err)
	}
	if !health.AIService {
		fmt.Println("! Warning: AI service is not configured on the server; analysis will fail.")
	}

	engine := chat.NewEngine(api)
	printed := 0
	printed = render(engine, printed)

	scanner := bufio.NewScanner(os.Stdin)
	for engine.Phase() != chat.PhaseComplete {
		if engine.Phase() == chat.PhaseOptionsShown {
			choice, ok := readOption(scanner)
			if !ok {
				return
			}
			if err := engine.SelectOption(choice); err != nil {
				fmt.Printf("! %v\n", err)
			}
			printed = render(engine, printed)
			continue
		}

		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if err := engine.Submit(context.Background(), input); err != nil {
			fmt.Printf("! %v\n", err)
		}
		printed = render(engine, printed)
	}
}

// render prints chat messages added since the last call and returns the new
// high-water mark.
func render(engine *chat.Engine, printed int) int {
	messages := engine.Messages()
	for _, msg := range messages[printed:] {
		prefix := "bot"
		if msg.Sender == chat.SenderUser {
			prefix = "you"
		}
		fmt.Printf("[%s] %s\n", prefix, msg.Text)

		if msg.PartsList != nil {
			for _, part := range msg.PartsList.Parts {
				name := part.Name
				if part.Optional {
					name += " (optional)"
				}
				fmt.Printf("    %dx %-30s %s  %s\n", part.Quantity, name, chat.FormatAmount(part.Price), part.Description)
			}
			fmt.Printf("    Estimated total: %s\n", chat.FormatAmount(msg.PartsList.TotalCost))
			for _, note := range msg.PartsList.AdditionalNotes {
				fmt.Printf("    • %s\n", note)
			}
		}
		if msg.Analysis != nil {
			fmt.Printf("    Feasibility: %s | Complexity: %s | Estimated time: %s\n",
				msg.Analysis.Feasibility, msg.Analysis.Complexity, msg.Analysis.EstimatedTime)
		}
		if msg.ShowOptions {
			for i, opt := range chat.ServiceOptions {
				fmt.Printf("    %d) %s — %s\n       %s\n", i+1, opt.Text, chat.FormatAmount(opt.Price), opt.Description)
			}
		}
		if msg.PaymentFor != nil {
			fmt.Printf("    Amount: %s | UPI ID: %s | Payee: %s\n",
				chat.FormatAmount(msg.PaymentFor.Price), chat.UPIDetails.ID, chat.UPIDetails.Name)
			fmt.Println("    After paying, enter the UPI transaction ID to confirm.")
		}
	}
	return len(messages)
}

func readOption(scanner *bufio.Scanner) (string, bool) {
	fmt.Print("Choose an option (number): ")
	if !scanner.Scan() {
		return "", false
	}
	input := strings.TrimSpace(scanner.Text())
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(chat.ServiceOptions) {
		return chat.ServiceOptions[n-1].ID, true
	}
	return input, true
}
