package ai

import (
	"context"
	"fmt"
	"io"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/interview-coach-team/interview-coach/pkg/config"
)

// SpeechClient transcribes recorded candidate answers with AssemblyAI
type SpeechClient struct {
	client *aai.Client
}

// NewSpeechClient creates an AssemblyAI client using the provided config
func NewSpeechClient(cfg *config.AssemblyAIConfig) *SpeechClient {
	return &SpeechClient{
		client: aai.NewClient(cfg.APIKey),
	}
}

// TranscribeReader uploads the audio and waits for the transcript
func (c *SpeechClient) TranscribeReader(ctx context.Context, audio io.Reader) (string, error) {
	transcript, err := c.client.Transcripts.TranscribeFromReader(ctx, audio, nil)
	if err != nil {
		return "", fmt.Errorf("assemblyai transcribe: %w", err)
	}
	return transcriptText(transcript)
}

// TranscribeURL transcribes audio already reachable at a URL (e.g. a
// presigned object-storage link)
func (c *SpeechClient) TranscribeURL(ctx context.Context, audioURL string) (string, error) {
	transcript, err := c.client.Transcripts.TranscribeFromURL(ctx, audioURL, nil)
	if err != nil {
		return "", fmt.Errorf("assemblyai transcribe: %w", err)
	}
	return transcriptText(transcript)
}

func transcriptText(transcript aai.Transcript) (string, error) {
	if transcript.Status == aai.TranscriptStatusError {
		msg := "unknown error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return "", fmt.Errorf("assemblyai transcribe: %s", msg)
	}
	if transcript.Text == nil || *transcript.Text == "" {
		return "", fmt.Errorf("assemblyai transcribe: empty transcript")
	}
	return *transcript.Text, nil
}
