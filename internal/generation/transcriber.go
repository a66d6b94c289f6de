package generation

import (
	"context"
	"hash/fnv"
	"path/filepath"
	"strings"
)

// TranscriptionResult is what a speech-to-text backend returns for one clip.
type TranscriptionResult struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
	Language   string  `json:"language"`
}

// Transcriber converts an audio clip into text. Real speech-to-text lives
// behind this boundary; the marketplace only consumes the transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, contentType string) (*TranscriptionResult, error)
}

// AllowedAudioExtensions are the upload formats accepted by the voice API.
var AllowedAudioExtensions = []string{"mp3", "wav", "m4a", "flac", "webm"}

// ValidAudioFilename checks the upload extension against the allowed set.
func ValidAudioFilename(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	for _, allowed := range AllowedAudioExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// MockTranscriber returns canned artisan transcripts, chosen
// deterministically from the audio bytes so repeated uploads of the same
// clip transcribe identically.
type MockTranscriber struct{}

var mockTranscripts = []string{
	"I make handmade ceramic vases in blue with traditional patterns, each one takes about three days on the wheel",
	"These are handwoven silk sarees with golden borders and intricate embroidery work from my family loom",
	"I carve wooden bowls, spoons and decorative items for the kitchen from seasoned mango wood",
	"I craft silver jewelry pieces, earrings, necklaces and bangles with traditional tribal designs",
	"I stitch leather bags by hand with ethnic patterns, the hide is vegetable tanned in our village",
	"I weave bamboo furniture, chairs, small tables and storage baskets for the home",
}

func (MockTranscriber) Transcribe(_ context.Context, audio []byte, _ string) (*TranscriptionResult, error) {
	h := fnv.New32a()
	h.Write(audio)
	pick := mockTranscripts[int(h.Sum32())%len(mockTranscripts)]
	return &TranscriptionResult{
		Transcript: pick,
		Confidence: 0.9,
		Language:   "en-IN",
	}, nil
}
