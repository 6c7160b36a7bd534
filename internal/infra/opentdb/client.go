package opentdb

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"trivia-rooms/internal/domain"
	"golang.org/x/sync/singleflight"
)

// DefaultBaseURL is the public Open Trivia Database endpoint.
const DefaultBaseURL = "https://opentdb.com"

// DefaultTimeout bounds every provider call; the API occasionally hangs and a
// room creation must fail fast to an empty question set instead.
const DefaultTimeout = 8 * time.Second

// categoryIDs maps our category keys to OpenTDB category identifiers.
// Unknown keys fall back to general knowledge.
var categoryIDs = map[string]int{
	"general": 9,
	"tech":    18,
	"movies":  11,
}

// OpenTDB response codes signalling a stale or exhausted session token.
const (
	codeTokenNotFound = 3
	codeTokenEmpty    = 4
)

// Client fetches multiple-choice questions from OpenTDB. It implements
// app.QuestionSource and degrades to an empty set on any failure: network
// errors, non-200 responses, and malformed payloads are logged and absorbed,
// so callers only ever see a question slice.
//
// A session token keeps the provider from repeating questions across rooms.
// It is requested lazily and concurrent requests are deduplicated.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sf         singleflight.Group

	mu    sync.Mutex
	token string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type apiResponse struct {
	ResponseCode int `json:"response_code"`
	Results      []struct {
		Question         string   `json:"question"`
		CorrectAnswer    string   `json:"correct_answer"`
		IncorrectAnswers []string `json:"incorrect_answers"`
	} `json:"results"`
}

// Fetch returns up to amount questions for the category. The error is always
// nil; failure degrades to an empty slice, which callers treat as a valid,
// if degenerate, quiz.
func (c *Client) Fetch(ctx context.Context, category string, amount int) ([]domain.Question, error) {
	catID, ok := categoryIDs[category]
	if !ok {
		catID = categoryIDs["general"]
	}

	payload, err := c.fetchPayload(ctx, catID, amount, c.sessionToken(ctx))
	if err != nil {
		log.Printf("opentdb fetch for category %d failed: %v", catID, err)
		return nil, nil
	}
	if payload.ResponseCode == codeTokenNotFound || payload.ResponseCode == codeTokenEmpty {
		// Stale or exhausted token: drop it and retry once with a fresh one.
		c.clearToken()
		payload, err = c.fetchPayload(ctx, catID, amount, c.sessionToken(ctx))
		if err != nil {
			log.Printf("opentdb token retry for category %d failed: %v", catID, err)
			return nil, nil
		}
	}

	questions := make([]domain.Question, 0, len(payload.Results))
	for _, item := range payload.Results {
		correct := html.UnescapeString(item.CorrectAnswer)
		options := make([]string, 0, len(item.IncorrectAnswers)+1)
		for _, incorrect := range item.IncorrectAnswers {
			options = append(options, html.UnescapeString(incorrect))
		}
		options = append(options, correct)
		rand.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})
		questions = append(questions, domain.Question{
			Text:    html.UnescapeString(item.Question),
			Answer:  correct,
			Options: options,
		})
	}
	return questions, nil
}

func (c *Client) fetchPayload(ctx context.Context, catID, amount int, token string) (apiResponse, error) {
	params := url.Values{}
	params.Set("amount", strconv.Itoa(amount))
	params.Set("category", strconv.Itoa(catID))
	params.Set("type", "multiple")
	if token != "" {
		params.Set("token", token)
	}

	var payload apiResponse
	body, err := c.get(ctx, c.baseURL+"/api.php?"+params.Encode())
	if err != nil {
		return payload, err
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return payload, fmt.Errorf("decode trivia response: %w", err)
	}
	return payload, nil
}

// sessionToken returns the cached OpenTDB token, requesting one if absent.
// Failure to obtain a token is not fatal; the API works without one.
func (c *Client) sessionToken(ctx context.Context) string {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		return token
	}

	v, _, _ := c.sf.Do("token", func() (interface{}, error) {
		body, err := c.get(ctx, c.baseURL+"/api_token.php?command=request")
		if err != nil {
			return "", nil
		}
		var payload struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", nil
		}
		c.mu.Lock()
		c.token = payload.Token
		c.mu.Unlock()
		return payload.Token, nil
	})
	token, _ = v.(string)
	return token
}

func (c *Client) clearToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
