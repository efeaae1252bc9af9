// Command repl runs the query service against a local CSV ledger for
// interactive use without an MCP client.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	envconfig "github.com/finwell/finwell-mcp/internal/common/config"
	"github.com/finwell/finwell-mcp/internal/domain/advice"
	"github.com/finwell/finwell-mcp/internal/domain/analysis"
	"github.com/finwell/finwell-mcp/internal/domain/ledger"
	"github.com/finwell/finwell-mcp/internal/domain/query"
	"github.com/finwell/finwell-mcp/internal/platform/csvledger"
	"github.com/finwell/finwell-mcp/internal/platform/gemini"
)

func main() {
	config, err := envconfig.LoadFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	zlog, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer zlog.Sync()

	ctx := context.Background()

	records, err := csvledger.NewLoader(config.LedgerCSVPath, zlog).Records(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to read ledger:", err)
		os.Exit(1)
	}
	store, err := ledger.Load(records)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load ledger:", err)
		os.Exit(1)
	}

	budgets := analysis.DefaultBudgets()
	if config.BudgetsPath != "" {
		budgets, err = analysis.LoadBudgets(config.BudgetsPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to load budgets:", err)
			os.Exit(1)
		}
	}

	var narrator query.Narrator
	if config.GeminiAPIKey != "" {
		narrator, err = gemini.NewNarrator(ctx, config.GeminiAPIKey)
		if err != nil {
			fmt.Fprintln(os.Stderr, "narration disabled:", err)
			narrator = nil
		}
	}

	engine := analysis.NewEngine(store, budgets)
	service := query.NewService(engine, advice.NewAdvisor(engine), narrator, zlog)
	sessionID := query.NewSessionID()

	fmt.Printf("Loaded %d transactions. Ask about your spending (blank line to quit).\n", store.Len())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			break
		}

		result, err := service.Ask(ctx, sessionID, text, time.Now())
		if err != nil {
			fmt.Println("error:", err)
			continue
		}

		if result.Narrative != "" {
			fmt.Println(result.Narrative)
			continue
		}
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		fmt.Println(string(out))
	}
}
