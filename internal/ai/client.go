package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the Gemini generateContent endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent"
	// DefaultTimeout caps a single generation call; hitting it degrades to
	// the fallback answer, the request is not retried.
	DefaultTimeout = 30 * time.Second

	fallbackEmpty   = "I'm sorry, I couldn't process your request at the moment. Please try again."
	fallbackFailure = "I'm experiencing technical difficulties. Please try again later."
)

// Client calls the generative-language API. All configuration is injected at
// construction; there is no package-level state.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func newGenerateRequest(prompt string, cfg generationConfig) generateRequest {
	return generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: cfg,
	}
}

// generate runs one prompt through the API and returns the first candidate's
// text. Empty string means no usable answer came back.
func (c *Client) generate(ctx context.Context, prompt string, cfg generationConfig) (string, error) {
	body, err := json.Marshal(newGenerateRequest(prompt, cfg))
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation API status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// GenerateResponse answers a tutoring question. Upstream failures are
// absorbed: the student always gets a string back, never an error.
func (c *Client) GenerateResponse(ctx context.Context, message, subjectContext string, grade int) string {
	prompt := buildContextPrompt(message, subjectContext, grade)

	answer, err := c.generate(ctx, prompt, generationConfig{
		Temperature:     0.7,
		TopK:            40,
		TopP:            0.95,
		MaxOutputTokens: 1024,
	})
	if err != nil {
		log.Printf("Error in generation API call: %v", err)
		return fallbackFailure
	}
	if answer == "" {
		return fallbackEmpty
	}
	return answer
}

// GeneratedQuestion is the shape the model is asked to emit for quiz
// question generation.
type GeneratedQuestion struct {
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
	Explanation   string            `json:"explanation"`
}

// GenerateQuizQuestion asks the model for one multiple-choice question and
// parses the JSON it returns. nil means the upstream answer was unusable.
func (c *Client) GenerateQuizQuestion(ctx context.Context, subject, topic string, grade int, difficulty string) (*GeneratedQuestion, error) {
	prompt := buildQuestionPrompt(subject, topic, grade, difficulty)

	answer, err := c.generate(ctx, prompt, generationConfig{
		Temperature:     0.8,
		MaxOutputTokens: 512,
	})
	if err != nil {
		return nil, err
	}
	if answer == "" {
		return nil, nil
	}

	var question GeneratedQuestion
	if err := json.Unmarshal([]byte(stripCodeFence(answer)), &question); err != nil {
		log.Printf("Error parsing generated question: %v", err)
		return nil, nil
	}
	return &question, nil
}

// stripCodeFence removes a ```json ... ``` wrapper the model often adds
// around JSON answers.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func buildContextPrompt(message, subject string, grade int) string {
	var b strings.Builder
	b.WriteString(`You are CeynovX, an AI educational assistant for Sri Lankan students.
You help students understand their school subjects and provide clear, accurate explanations.

Guidelines:
- Provide clear, step-by-step explanations
- Use simple language appropriate for school students
- Include relevant examples when helpful
- Focus on the Sri Lankan curriculum context
- Be encouraging and supportive
- If you're not sure about something, say so rather than guessing

Student's question: `)

	if subject != "" {
		fmt.Fprintf(&b, "\nSubject context: %s", subject)
	}
	if grade > 0 {
		fmt.Fprintf(&b, "\nGrade level: %d", grade)
	}
	fmt.Fprintf(&b, "\n\nQuestion: %s\n\nPlease provide a helpful response:", message)
	return b.String()
}

func buildQuestionPrompt(subject, topic string, grade int, difficulty string) string {
	return fmt.Sprintf(`Generate a multiple choice question for a %dth grade %s student about %s.

Difficulty level: %s

Please provide the response in this exact format:
{
    "question": "The question text here?",
    "options": {
        "A": "Option A text",
        "B": "Option B text",
        "C": "Option C text",
        "D": "Option D text"
    },
    "correct_answer": "A",
    "explanation": "Brief explanation of why this is correct"
}

Make sure the question is appropriate for %dth grade level and follows the Sri Lankan curriculum.`,
		grade, subject, topic, difficulty, grade)
}
