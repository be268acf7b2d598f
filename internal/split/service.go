package split

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/splitscan/splitscan/internal/document"
	"github.com/splitscan/splitscan/internal/ocr"
)

// scratchName is the filename of the transient rendered bitmap.
const scratchName = "receipt.png"

// IDGenerator generates unique IDs for line items
type IDGenerator interface {
	Generate() string
}

// defaultIDGenerator generates IDs from the UnixNano timestamp plus a
// sequence number, since items are seeded in a tight loop.
type defaultIDGenerator struct {
	seq atomic.Int64
}

func (g *defaultIDGenerator) Generate() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), g.seq.Add(1))
}

// Service owns one splitting session and orchestrates the pipeline from
// uploaded file to settlement. A single mutex serializes parsing against
// ledger mutation: recognition is the one long-running call, and the ledger
// must not change underneath it.
type Service struct {
	engine      ocr.Engine
	ledger      *Ledger
	parser      Parser
	roster      RosterDB
	scratch     Storage
	idGenerator IDGenerator

	mu sync.Mutex
}

// NewService creates a new Service and seeds the ledger with the persisted
// roster.
func NewService(engine ocr.Engine, roster RosterDB, scratch Storage, parser Parser) (*Service, error) {
	return NewServiceWithDeps(engine, roster, scratch, parser, &defaultIDGenerator{})
}

// NewServiceWithDeps creates a new Service with a custom ID generator for testing
func NewServiceWithDeps(engine ocr.Engine, roster RosterDB, scratch Storage, parser Parser, idGen IDGenerator) (*Service, error) {
	s := &Service{
		engine:      engine,
		ledger:      NewLedger(),
		parser:      parser,
		roster:      roster,
		scratch:     scratch,
		idGenerator: idGen,
	}

	people, err := roster.ListPeople()
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}
	for _, p := range people {
		s.ledger.AddPerson(p)
	}

	return s, nil
}

// ProcessReceipt runs the full pipeline on an uploaded file and reseeds the
// session with the result. The previous parse survives a failed upload: the
// ledger is cleared only once a new item sequence actually exists.
func (s *Service) ProcessReceipt(ctx context.Context, filename string, data []byte) ([]LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	img, err := document.Load(filename, data)
	if err != nil {
		return nil, fmt.Errorf("loading receipt: %w", err)
	}

	// Keep the rendered bitmap around so the shell can show it next to the
	// item table. It is the only file the session writes, and the next
	// upload replaces it.
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding bitmap: %w", err)
	}
	if _, err := s.scratch.Save(scratchName, buf.Bytes()); err != nil {
		slog.Warn("Failed to save rendered bitmap", "error", err)
	}

	text, err := s.engine.Recognize(ctx, img)
	if err != nil {
		slog.Error("Failed to recognize receipt text",
			"filename", filename,
			"file_size", len(data),
			"error", err,
		)
		return nil, fmt.Errorf("recognizing text: %w", err)
	}

	parsed := s.parser.ParseItems(text)

	s.ledger.Clear()
	people, err := s.roster.ListPeople()
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}
	for _, p := range people {
		s.ledger.AddPerson(p)
	}

	items := make([]LineItem, len(parsed))
	for i, item := range parsed {
		item.ID = s.idGenerator.Generate()
		items[i] = item
	}
	s.ledger.SeedItems(items)

	return s.ledger.Items(), nil
}

// AddPerson registers a person with the session and persists them to the roster
func (s *Service) AddPerson(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("person name is required")
	}

	if err := s.roster.AddPerson(name); err != nil {
		return fmt.Errorf("saving person: %w", err)
	}
	s.ledger.AddPerson(name)
	return nil
}

// RemovePerson removes a person from the session and the roster
func (s *Service) RemovePerson(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.roster.RemovePerson(name); err != nil {
		return fmt.Errorf("removing person: %w", err)
	}
	s.ledger.RemovePerson(name)
	return nil
}

// SetAssignment toggles whether a person shares an item
func (s *Service) SetAssignment(itemID, person string, assigned bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.SetAssignment(itemID, person, assigned)
}

// IsAssigned reports whether a person currently shares an item
func (s *Service) IsAssigned(itemID, person string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.IsAssigned(itemID, person)
}

// Items returns the session's items in receipt order
func (s *Service) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Items()
}

// Assignees returns an item's assignees in display order
func (s *Service) Assignees(itemID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Assignees(itemID)
}

// People returns the session's people in display order
func (s *Service) People() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.People()
}

// Settle computes the settlement against the given purchaser
func (s *Service) Settle(purchaser string) ([]Share, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Settle(purchaser)
}

// ReceiptImage returns the rendered bitmap of the current receipt
func (s *Service) ReceiptImage() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.scratch.Get(scratchName)
	if err != nil {
		return nil, fmt.Errorf("getting receipt bitmap: %w", err)
	}
	return data, nil
}
