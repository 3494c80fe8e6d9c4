// Package tts is a placeholder text-to-speech boundary. Dummy base64-encodes
// the answer text so API clients can exercise the audio field end to end;
// swap in a real synthesizer behind the same function when one is available.
package tts

import "encoding/base64"

// Dummy returns a stand-in base64 audio payload for the given text.
func Dummy(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}
