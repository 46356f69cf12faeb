package assistant

import "fmt"

// bytes of audio treated as one second by the transcription stub
const bytesPerSecond = 32000

// TranscribeURL is the placeholder transcription for remote audio.
func TranscribeURL(audioURL string) string {
	if audioURL == "" {
		return "No audio provided."
	}
	return fmt.Sprintf("Transcribed summary from %s (stub)", audioURL)
}

// TranscribeUpload is the placeholder transcription for uploaded audio of size bytes.
func TranscribeUpload(size int64) string {
	return fmt.Sprintf("Transcribed %ds of audio (demo)", max(1, size/bytesPerSecond))
}
