package dto

// UploadAudioResponse is the body for POST /uploadAudio
type UploadAudioResponse struct {
	Message                   string  `json:"message"`
	Transcription             string  `json:"transcription"`
	TranscriptionURL          string  `json:"transcriptionUrl"`
	AudioURL                  string  `json:"audioUrl"`
	ProcessedTranscriptionURL *string `json:"processedTranscriptionUrl"`
}
