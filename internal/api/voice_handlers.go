package api

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/example/artisan-market/internal/api/middleware"
	"github.com/example/artisan-market/internal/domain/catalog"
	"github.com/example/artisan-market/internal/generation"
)

// maxAudioUpload caps voice note uploads at 10MB.
const maxAudioUpload = 10 << 20

type transcribeResponse struct {
	Transcription *generation.TranscriptionResult `json:"transcription"`
	Drafts        []generation.ListingDraft       `json:"drafts"`
}

// TranscribeVoiceNote handles POST /api/voice/transcribe (artisans only).
// The multipart "audio" part is transcribed and turned into listing drafts
// in one round trip.
func (h *Handlers) TranscribeVoiceNote(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAudioUpload); err != nil {
		respondJSONError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		respondJSONError(w, "audio file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !generation.ValidAudioFilename(header.Filename) {
		respondJSONError(w, "unsupported audio format", http.StatusBadRequest)
		return
	}

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioUpload))
	if err != nil {
		respondJSONError(w, "failed to read audio", http.StatusBadRequest)
		return
	}

	result, err := h.transcriber.Transcribe(r.Context(), audio, header.Header.Get("Content-Type"))
	if err != nil {
		h.logger.Error("transcription failed", zap.Error(err))
		respondJSONError(w, "transcription failed", http.StatusBadGateway)
		return
	}

	drafts, err := h.generation.GenerateListing(result.Transcript)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, transcribeResponse{
		Transcription: result,
		Drafts:        drafts,
	})
}

// GenerateListing handles POST /api/voice/generate (artisans only): listing
// drafts from already-transcribed or typed text. With save=true the best
// draft is persisted as a draft product the artisan can finish later.
func (h *Handlers) GenerateListing(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
		Save bool   `json:"save"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	drafts, err := h.generation.GenerateListing(req.Text)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if !req.Save {
		respondJSON(w, http.StatusOK, map[string]any{"drafts": drafts})
		return
	}

	best := drafts[0]
	p, err := h.catalog.Create(r.Context(), middleware.GetUserID(r.Context()), catalog.CreateInput{
		Title:       best.Title,
		Description: best.Description,
		Category:    best.Category,
		Price:       best.PriceMin,
		Currency:    best.Currency,
		Status:      catalog.StatusDraft,
		Materials:   best.Materials,
		Tags:        best.Tags,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"drafts": drafts, "product": p})
}
