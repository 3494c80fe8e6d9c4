// Package guardrails holds the safety checks applied to every question
// before retrieval: emergency keyword flagging and the standing disclaimer.
package guardrails

import "strings"

// Disclaimer accompanies every answer.
const Disclaimer = "This assistant provides general health information, not medical advice. " +
	"If this is an emergency or you are in immediate danger, call your local emergency number (e.g., 911 in the U.S.) now."

var emergencyKeywords = []string{
	"severe chest pain", "trouble breathing", "blue lips", "unconscious",
	"stroke", "heart attack", "suicidal", "poisoning", "overdose", "heavy bleeding",
}

// EmergencyFlag reports whether the text mentions a condition that warrants
// immediate emergency care rather than an informational answer.
func EmergencyFlag(text string) bool {
	t := strings.ToLower(text)
	for _, k := range emergencyKeywords {
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}

// InstructionPrompt is the system prompt used when composing answers over
// retrieved context.
func InstructionPrompt() string {
	return "You are a careful healthcare information assistant for laypeople.\n" +
		"Rules:\n" +
		"1) Answer concisely in plain language and ALWAYS cite sources with markdown links.\n" +
		"2) Do NOT diagnose or prescribe. Encourage consulting a clinician when appropriate.\n" +
		"3) Prefer authoritative sources (MedlinePlus, CDC) from provided context.\n" +
		"4) If insufficient context, say so and suggest clearer query.\n"
}
