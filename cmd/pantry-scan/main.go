package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/pantry-scan/internal/nutrition"
	"github.com/zombor/pantry-scan/internal/parsing"
	"github.com/zombor/pantry-scan/internal/receipt"
	"github.com/zombor/pantry-scan/internal/scanning"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

type extractorConfig struct {
	kind         string
	ocrSpaceKey  string
	ocrSpaceURL  string
	ocrLanguage  string
	ocrEngine    int
	ocrTimeout   time.Duration
	grayscale    bool
	geminiKey    string
	geminiModel  string
	ollamaURL    string
	ollamaModel  string
	tesseractBin string
	noPDFText    bool
}

func newExtractor(ctx context.Context, cfg extractorConfig) (scanning.Extractor, error) {
	var (
		ext scanning.Extractor
		err error
	)
	switch cfg.kind {
	case "ocrspace":
		slog.Info("Initializing OCR.space extractor...", "engine", cfg.ocrEngine, "language", cfg.ocrLanguage)
		ext, err = scanning.NewOCRSpace(scanning.OCRSpaceConfig{
			APIKey:    cfg.ocrSpaceKey,
			Endpoint:  cfg.ocrSpaceURL,
			Language:  cfg.ocrLanguage,
			Engine:    cfg.ocrEngine,
			Timeout:   cfg.ocrTimeout,
			Grayscale: cfg.grayscale,
		})
	case "gemini":
		apiKey := cfg.geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		slog.Info("Initializing Gemini extractor...", "model", cfg.geminiModel)
		ext, err = scanning.NewGemini(ctx, apiKey, cfg.geminiModel)
	case "ollama":
		slog.Info("Initializing Ollama extractor...", "url", cfg.ollamaURL, "model", cfg.ollamaModel)
		ext, err = scanning.NewOllama(cfg.ollamaURL, cfg.ollamaModel)
	case "tesseract":
		slog.Info("Initializing Tesseract extractor...", "binary", cfg.tesseractBin, "language", cfg.ocrLanguage)
		ext, err = scanning.NewTesseract(cfg.tesseractBin, cfg.ocrLanguage)
	default:
		return nil, fmt.Errorf("invalid extractor %q: want ocrspace, gemini, ollama or tesseract", cfg.kind)
	}
	if err != nil {
		return nil, err
	}

	if cfg.noPDFText {
		return ext, nil
	}
	return scanning.WithPDFText(ext), nil
}

func loadParser(path string) (*parsing.Parser, error) {
	if path == "" {
		return parsing.NewDefaultParser(), nil
	}
	rules, err := parsing.LoadRules(path)
	if err != nil {
		return nil, err
	}
	slog.Info("Loaded parser rules", "path", path)
	return parsing.NewParser(rules), nil
}

func loadFoods(path string) (*nutrition.Reference, error) {
	if path == "" {
		return nutrition.DefaultReference(), nil
	}
	ref, err := nutrition.LoadReference(path)
	if err != nil {
		return nil, err
	}
	slog.Info("Loaded food table", "path", path, "foods", ref.Len())
	return ref, nil
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	// A .env file is optional; real environment variables take precedence
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "error: loading .env: %v\n", err)
		os.Exit(1)
	}

	fs := ff.NewFlagSet("pantry-scan")
	var (
		port        = fs.IntLong("port", 8080, "HTTP server port")
		dbPath      = fs.StringLong("db", "pantry-scan.db", "Database file path")
		storagePath = fs.StringLong("storage", "./receipts", "Storage directory path")
		rulesPath   = fs.StringLong("rules", "", "YAML file overriding the receipt parser rules (optional)")
		foodsPath   = fs.StringLong("foods", "", "YAML nutrient table replacing the built-in one (optional)")
		logLevel    = fs.StringLong("log-level", "info", "Log level: debug, info, warn or error")
		authUser    = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass    = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		showVersion = fs.BoolLong("version", "Show version information")

		extractorKind = fs.StringLong("extractor", "ocrspace", "Text extractor: ocrspace, gemini, ollama or tesseract")
		ocrSpaceKey   = fs.StringLong("ocrspace-key", "", "OCR.space API key")
		ocrSpaceURL   = fs.StringLong("ocrspace-url", "", "OCR.space endpoint (defaults to the public API)")
		ocrLanguage   = fs.StringLong("ocr-language", "eng", "OCR language code")
		ocrEngine     = fs.IntLong("ocr-engine", 2, "OCR.space engine (1 or 2)")
		ocrTimeout    = fs.DurationLong("ocr-timeout", 15*time.Second, "OCR.space request timeout")
		grayscale     = fs.BoolLong("grayscale", "Convert images to grayscale before sending to OCR.space")
		geminiKey     = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel   = fs.StringLong("gemini-model", "gemini-2.5-flash", "Google Gemini model name")
		ollamaURL     = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel   = fs.StringLong("ollama-model", "llava", "Ollama vision model name (e.g., llava, qwen2-vl)")
		tesseractBin  = fs.StringLong("tesseract-bin", "tesseract", "Path to the tesseract binary")
		noPDFText     = fs.BoolLong("no-pdf-text", "Always OCR PDFs instead of reading their text layer")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("PANTRY_SCAN"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	if err := setupLogging(*logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	parser, err := loadParser(*rulesPath)
	if err != nil {
		slog.Error("Failed to load parser rules", "error", err)
		os.Exit(1)
	}

	foods, err := loadFoods(*foodsPath)
	if err != nil {
		slog.Error("Failed to load food table", "error", err)
		os.Exit(1)
	}

	slog.Info("Initializing database...")
	db, err := receipt.NewBoltDB(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	extractor, err := newExtractor(ctx, extractorConfig{
		kind:         *extractorKind,
		ocrSpaceKey:  *ocrSpaceKey,
		ocrSpaceURL:  *ocrSpaceURL,
		ocrLanguage:  *ocrLanguage,
		ocrEngine:    *ocrEngine,
		ocrTimeout:   *ocrTimeout,
		grayscale:    *grayscale,
		geminiKey:    *geminiKey,
		geminiModel:  *geminiModel,
		ollamaURL:    *ollamaURL,
		ollamaModel:  *ollamaModel,
		tesseractBin: *tesseractBin,
		noPDFText:    *noPDFText,
	})
	if err != nil {
		slog.Error("Failed to initialize extractor", "error", err)
		os.Exit(1)
	}
	defer extractor.Close()

	slog.Info("Initializing storage...")
	store, err := receipt.NewLocalStorage(*storagePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	service := receipt.NewService(db, extractor, store, parser)
	calc := nutrition.NewCalculator(foods)
	server := receipt.NewServer(service, calc, receipt.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	})

	addr := fmt.Sprintf(":%d", *port)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(addr)
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr), "version", version)
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	slog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown error", "error", err)
	}
}
