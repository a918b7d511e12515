// Command papyrus-models lists the Gemini models that can serve generation
// requests, for picking a value for GEMINI_MODEL.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/papyrus-dev/papyrus/internal/service/summary"
)

func main() {
	_ = godotenv.Load()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "GEMINI_API_KEY is not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	provider := summary.NewGeminiProvider(apiKey, "", os.Getenv("GEMINI_BASE_URL"), 30*time.Second)
	models, err := provider.ListModels(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list models: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Models supporting content generation:")
	for _, m := range models {
		if m.SupportsGeneration() {
			fmt.Println("  " + m.Name)
		}
	}
}
