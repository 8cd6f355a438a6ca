// internal/moderation/client.go
package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/Athycodz/CoMpliment-Walll/pkg/models"
)

// failOpenReason is recorded on the compliment whenever the classifier could
// not be consulted. Fail-open is deliberate: moderation-service downtime must
// never block message delivery.
const failOpenReason = "AI moderation unavailable, approved with caution"

const promptTemplate = `You are a content moderator for a college compliment platform. Analyze this message:

%q

Rules:
1. APPROVE if: Genuine, specific, uplifting (e.g., "Your presentation inspired me")
2. REJECT if:
   - Generic spam ("nice", "cool", "ok", less than 5 words)
   - Vulgar or offensive language
   - Backhanded compliments ("You're smarter than you look")
   - Romantic/flirty content
   - Sarcastic or negative tone
   - Harassment or bullying

Respond ONLY with valid JSON in this exact format:
{"status": "approved", "reason": ""}
OR
{"status": "rejected", "reason": "brief explanation", "confidence": 0.0}

Do not include any markdown formatting, just raw JSON.`

// Result is the moderation verdict attached to a compliment before it is
// persisted.
type Result struct {
	Status     models.ModerationStatus
	Reason     string
	Confidence *float64
	// AIModerated is false when the verdict came from the fail-open path.
	AIModerated bool
	// Raw is the verdict JSON as extracted from the model response, empty on
	// fail-open.
	Raw string
}

type generateFunc func(ctx context.Context, prompt string) (string, error)

// Client wraps the external text-generation endpoint used as a semantic
// content gate. It keeps no verdict cache.
type Client struct {
	model    string
	timeout  time.Duration
	generate generateFunc
}

// NewClient builds a moderation client backed by the Gemini API. With an
// empty API key the client still works and every call takes the fail-open
// path, so a missing key degrades to unmoderated delivery instead of a crash.
func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*Client, error) {
	c := &Client{model: model, timeout: timeout}
	if apiKey == "" {
		log.Println("⚠️ GEMINI_API_KEY not set, moderation will fail open on every submission")
		return c, nil
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("genai client init failed: %w", err)
	}

	c.generate = func(ctx context.Context, prompt string) (string, error) {
		resp, err := genaiClient.Models.GenerateContent(ctx, c.model,
			genai.Text(prompt),
			&genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0)},
		)
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	}
	return c, nil
}

// Moderate classifies a candidate message. It never returns an error: any
// transport failure, timeout, or malformed response resolves to an approved
// fail-open verdict with AIModerated=false.
func (c *Client) Moderate(ctx context.Context, message string) Result {
	if c.generate == nil {
		return failOpen()
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.generate(ctx, fmt.Sprintf(promptTemplate, message))
	if err != nil {
		log.Printf("⚠️ [MODERATION] Gemini call failed, failing open: %v", err)
		return failOpen()
	}

	verdict, ok := extractJSON(raw)
	if !ok {
		log.Printf("⚠️ [MODERATION] No JSON object in model response, failing open")
		return failOpen()
	}

	var parsed struct {
		Status     string   `json:"status"`
		Reason     string   `json:"reason"`
		Confidence *float64 `json:"confidence,omitempty"`
	}
	if err := json.Unmarshal([]byte(verdict), &parsed); err != nil {
		log.Printf("⚠️ [MODERATION] Malformed verdict JSON, failing open: %v", err)
		return failOpen()
	}

	switch models.ModerationStatus(strings.ToLower(parsed.Status)) {
	case models.ModerationApproved:
		return Result{Status: models.ModerationApproved, Reason: parsed.Reason, Confidence: parsed.Confidence, AIModerated: true, Raw: verdict}
	case models.ModerationRejected:
		return Result{Status: models.ModerationRejected, Reason: parsed.Reason, Confidence: parsed.Confidence, AIModerated: true, Raw: verdict}
	default:
		log.Printf("⚠️ [MODERATION] Unknown verdict status %q, failing open", parsed.Status)
		return failOpen()
	}
}

func failOpen() Result {
	return Result{
		Status:      models.ModerationApproved,
		Reason:      failOpenReason,
		AIModerated: false,
	}
}

// extractJSON returns the first balanced {...} substring of s. Models wrap
// verdicts in prose or code fences often enough that plain unmarshalling of
// the whole response is not an option.
func extractJSON(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
