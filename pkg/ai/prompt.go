package ai

import (
	"fmt"
	"strings"
)

// maxBodyChars keeps very long threads within the model context
const maxBodyChars = 8000

// PingPrompt is sent to verify that a key and model work
const PingPrompt = "Say hello"

// DraftInput is the email being answered
type DraftInput struct {
	From     string
	Subject  string
	Body     string
	Template string
	MaxWords int
}

// BuildDraftPrompt renders the reply prompt for one email
func BuildDraftPrompt(in DraftInput) string {
	return fmt.Sprintf(`You are tasked with creating a draft email reply based on the instructions below.
Analyze the incoming email and write a personalized response that addresses the sender's concerns.

Incoming Email:
From: %s
Subject: %s
Body:
%s

Response Instructions:
%s

Requirements:
- Use a professional and friendly tone.
- Address the specific points raised in the incoming email.
- Keep the reply to NO MORE THAN %d WORDS.
- End with an appropriate sign-off.
- Do not mention that you are an AI.
- Write the complete, ready-to-send reply body only, with no placeholders, no subject line and no commentary.`,
		in.From, in.Subject, truncateBody(in.Body, maxBodyChars), strings.TrimSpace(in.Template), in.MaxWords)
}

func truncateBody(body string, maxLen int) string {
	body = strings.TrimSpace(body)
	if len(body) <= maxLen {
		return body
	}
	// Step back to a rune boundary
	cut := maxLen
	for cut > 0 && !isRuneStart(body[cut]) {
		cut--
	}
	return body[:cut] + "..."
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
