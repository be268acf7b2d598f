package split

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/splitscan/splitscan/internal/document"
)

// User-facing messages. Acquisition and OCR failures collapse into one
// generic notification; the underlying cause only goes to the log.
const (
	msgProcessingFailed = "An error occurred while processing the receipt."
	msgUnsupportedFile  = "Unsupported file type. Please upload a PDF or image file."
	msgNoPurchaser      = "Please select a purchaser."
)

// maxUploadSize bounds receipt uploads (high-resolution phone photos).
const maxUploadSize = int64(50 << 20) // 50MB

// itemView is an item together with the people currently sharing it.
type itemView struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Price     int      `json:"price"`
	Assignees []string `json:"assignees"`
}

// corsError writes an error response with CORS headers set
func corsError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	http.Error(w, message, code)
}

// jsonError writes a JSON error body with CORS headers set
func jsonError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// handleIndex serves the HTML interface
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// handleUploadReceipt accepts a receipt file, runs the OCR pipeline and
// reseeds the session with the parsed items
func (s *Server) handleUploadReceipt(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		jsonError(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Error getting file from form", "error", err)
		jsonError(w, "No file provided", http.StatusBadRequest)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		jsonError(w, "Error reading file. Please try again.", http.StatusInternalServerError)
		return
	}

	items, err := s.service.ProcessReceipt(r.Context(), header.Filename, data)
	if err != nil {
		slog.Error("Error processing receipt", "filename", header.Filename, "error", err)
		if errors.Is(err, document.ErrUnsupportedFileType) {
			jsonError(w, msgUnsupportedFile, http.StatusBadRequest)
			return
		}
		jsonError(w, msgProcessingFailed, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(items); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleListItems returns the session's items with their assignees
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items := s.service.Items()
	views := make([]itemView, len(items))
	for i, item := range items {
		views[i] = itemView{
			ID:        item.ID,
			Name:      item.Name,
			Price:     item.Price,
			Assignees: s.service.Assignees(item.ID),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(views); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleReceiptImage returns the rendered bitmap of the current receipt
func (s *Server) handleReceiptImage(w http.ResponseWriter, r *http.Request) {
	data, err := s.service.ReceiptImage()
	if err != nil {
		corsError(w, "No receipt loaded", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(data)
}

// handleListPeople returns the session's people in display order
func (s *Server) handleListPeople(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.service.People()); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleAddPerson registers a new person
func (s *Server) handleAddPerson(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		corsError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.service.AddPerson(req.Name); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(s.service.People())
}

// handleRemovePerson removes a person from the session and roster
func (s *Server) handleRemovePerson(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		corsError(w, "Person name required", http.StatusBadRequest)
		return
	}

	if err := s.service.RemovePerson(name); err != nil {
		slog.Error("Error removing person", "name", name, "error", err)
		corsError(w, "Error removing person", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleSetAssignment toggles one person's assignment to one item
func (s *Server) handleSetAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID   string `json:"item_id"`
		Person   string `json:"person"`
		Assigned bool   `json:"assigned"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		corsError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.service.SetAssignment(req.ItemID, req.Person, req.Assigned); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleSettle computes the settlement for a purchaser
func (s *Server) handleSettle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Purchaser string `json:"purchaser"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		corsError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	shares, err := s.service.Settle(req.Purchaser)
	if err != nil {
		if errors.Is(err, ErrNoPurchaserSelected) {
			jsonError(w, msgNoPurchaser, http.StatusBadRequest)
			return
		}
		slog.Error("Error computing settlement", "error", err)
		jsonError(w, "Error computing settlement", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"purchaser": req.Purchaser,
		"shares":    shares,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}
