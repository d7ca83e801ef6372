package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/oncorisk-client/internal/config"
	"github.com/oncorisk-client/internal/domain"
	"github.com/oncorisk-client/internal/logging"
	"github.com/oncorisk-client/internal/schema"
	"github.com/oncorisk-client/internal/service"
	"github.com/oncorisk-client/pkg/external"
)

// oncorisk-cli runs one analysis from the command line: optionally extract a
// report PDF into the form, fill fields from a JSON file, then submit.
func main() {
	condition := flag.String("condition", "", "condition tag: breast, lung or colorectal")
	featuresPath := flag.String("features", "", "path to a JSON object of field values")
	reportPath := flag.String("report", "", "optional report PDF to extract before submitting")
	threshold := flag.Float64("threshold", -1, "decision threshold override (0..1)")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline")
	flag.Parse()

	if *condition == "" {
		log.Fatal("-condition is required")
	}

	_ = godotenv.Load()

	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}
	cfg := configManager.GetConfig()
	logger := logging.NewLogger(cfg.Logging)

	registry := schema.NewRegistry()
	predictor := external.NewPredictionClient(cfg.Prediction)
	extractor := external.NewResilientExtractor(external.NewExtractionClient(cfg.Extraction), cfg.Extraction)

	analysis := service.NewAnalysisService(
		logger,
		registry,
		predictor,
		extractor,
		nil,
		cfg.Prediction.DefaultThreshold,
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	flow := analysis.NewFlow()
	if _, err := flow.StartSession(domain.ConditionType(*condition)); err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	if *reportPath != "" {
		file, err := os.Open(*reportPath)
		if err != nil {
			log.Fatalf("Failed to open report: %v", err)
		}
		summary, err := flow.ExtractDocument(ctx, filepath.Base(*reportPath), file, nil)
		file.Close()
		if err != nil {
			log.Fatalf("Extraction failed: %v", err)
		}
		fmt.Printf("Extracted %d field(s) from %s\n", summary.MergedFields, *reportPath)
	}

	if *featuresPath != "" {
		data, err := os.ReadFile(*featuresPath)
		if err != nil {
			log.Fatalf("Failed to read features file: %v", err)
		}
		var features map[string]any
		if err := json.Unmarshal(data, &features); err != nil {
			log.Fatalf("Failed to parse features file: %v", err)
		}
		for key, value := range features {
			if err := flow.SetField(key, value); err != nil {
				log.Fatalf("Failed to set %q: %v", key, err)
			}
		}
	}

	t := analysis.DefaultThreshold()
	if *threshold >= 0 {
		t = *threshold
	}

	result, err := flow.Analyze(ctx, t)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	fmt.Printf("Prediction:  %s\n", result.Class)
	fmt.Printf("Probability: %.4f\n", result.Probability)
	fmt.Printf("Risk level:  %s (%s)\n", result.RiskLevel, result.Display.Label)
}
