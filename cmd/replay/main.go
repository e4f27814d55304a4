package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/Gunvolt24/wb_records/config"
	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/internal/replay"
	"github.com/Gunvolt24/wb_records/pkg/logger"
)

// CLI: прогнать сообщения из файла через пайплайн и напечатать выходные юниты.
// Параметры пайплайна берутся из окружения (RECORDS_CONSUMER_*), флаги их переопределяют.
func main() {
	inputPath := flag.String("in", "", "path to input (.json or .jsonl). If empty, reads JSONL from stdin.")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	writer := flag.String("writer", "", "output format: json|csv|parquet (default from env)")
	subscription := flag.String("subscription", "", "subscription type: exclusive|failover|shared|key_shared")
	mapping := flag.String("mapping", "", "attribute mapping, e.g. tenant,key=__KEY__")
	maxMessages := flag.Int("max", -1, "max messages per batch (0 = unbounded)")
	flag.Parse()

	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	cc := cfg.Consumer
	if *writer != "" {
		cc.WriterFormat = *writer
	}
	if *subscription != "" {
		cc.Subscription = *subscription
	}
	if *mapping != "" {
		cc.AttributeMapping = *mapping
	}
	if *maxMessages >= 0 {
		cc.MaxMessages = *maxMessages
	}

	logg, cleanup, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = cleanup() }()

	var (
		msgs       []*domain.Message
		provenance = "stdin"
	)
	if *inputPath == "" {
		format := replay.InputFormat(*formatStr)
		if format == replay.FormatAuto {
			format = replay.FormatJSONL
		}
		msgs, err = replay.Load(os.Stdin, format)
	} else {
		msgs, err = replay.LoadFile(*inputPath, replay.InputFormat(*formatStr))
		if abs, aErr := filepath.Abs(*inputPath); aErr == nil {
			provenance = "file://" + abs
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "load: %v\n", err)
		os.Exit(1)
	}

	summary, err := replay.Run(context.Background(), cc, msgs, provenance, os.Stdout, logg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v (%s)\n", err, summary)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "replay ok (%s)\n", summary)
}
