package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/splitscan/splitscan/internal/ocr"
	"github.com/splitscan/splitscan/internal/split"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("splitscan")
	var (
		port          = fs.IntLong("port", 8080, "HTTP server port")
		dbPath        = fs.StringLong("db", "splitscan.db", "Roster database file path")
		scratchPath   = fs.StringLong("scratch", "./scratch", "Scratch directory for the rendered receipt bitmap")
		engineType    = fs.StringLong("engine", "tesseract", "OCR engine: 'tesseract' or 'gemini'")
		tessdataPath  = fs.StringLong("tessdata", "/usr/share/tesseract-ocr/4.00/tessdata", "Tesseract trained-data directory")
		language      = fs.StringLong("lang", "eng", "OCR language code")
		geminiKey     = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel   = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model name")
		keepZeroPrice = fs.BoolLong("keep-zero-price", "Keep parsed items whose price could not be read")
		authUser      = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass      = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		showVersion   = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("SPLITSCAN"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Initialize roster database
	slog.Info("Initializing roster database...")
	db, err := split.NewBoltDB(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize roster database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize OCR engine based on type
	var engine ocr.Engine
	switch *engineType {
	case "tesseract":
		slog.Info("Initializing Tesseract engine...", "tessdata", *tessdataPath, "lang", *language)
		engine, err = ocr.NewTesseract(*tessdataPath, *language)
		if err != nil {
			slog.Error("Failed to initialize Tesseract", "error", err)
			os.Exit(1)
		}
	case "gemini":
		// Get Gemini API key from flag or environment
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Gemini engine...", "model", *geminiModel)
		engine, err = ocr.NewGemini(apiKey, *geminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("Invalid engine type", "type", *engineType, "valid", "tesseract or gemini")
		os.Exit(1)
	}
	defer engine.Close()

	// Initialize scratch storage
	slog.Info("Initializing scratch storage...")
	scratch, err := split.NewScratchDir(*scratchPath)
	if err != nil {
		slog.Error("Failed to initialize scratch storage", "error", err)
		os.Exit(1)
	}

	// Initialize session service
	parser := split.Parser{KeepZeroPrice: *keepZeroPrice}
	service, err := split.NewService(engine, db, scratch, parser)
	if err != nil {
		slog.Error("Failed to initialize service", "error", err)
		os.Exit(1)
	}

	// Initialize server
	basicAuth := split.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := split.NewServer(service, basicAuth)

	// Start server in goroutine
	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}
