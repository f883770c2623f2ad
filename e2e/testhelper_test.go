package e2e

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/promoforge/api/internal/catalog"
	"github.com/promoforge/api/internal/client"
	"github.com/promoforge/api/internal/config"
	"github.com/promoforge/api/internal/handler"
	"github.com/promoforge/api/internal/middleware"
	"github.com/promoforge/api/internal/service"
)

const testJWTSecret = "test-secret-for-e2e"

// testApp holds all components needed for testing
type testApp struct {
	app  *fiber.App
	auth *middleware.AuthMiddleware
}

// setupApp creates a Fiber app identical to main.go but with unconfigured
// external clients. The planner and synthesizer run in fallback mode.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	// Redis (localhost, must be running)
	redisClient := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15, // use DB 15 for tests to avoid collision
	})

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr: "localhost:6379",
		DB:   15,
	})
	t.Cleanup(func() { asynqClient.Close() })

	validate := validator.New()

	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	videoCfg := config.VideoConfig{
		FPS:            30,
		DurationBudget: 900,
		TargetScenes:   5,
		EffectLead:     30,
	}

	// External clients have no API keys so services run their fallbacks
	llmClient := client.NewLLMClient(&config.LLMConfig{})
	sensoClient := client.NewSensoClient(&config.SensoConfig{})

	// Services
	synthesizer := service.NewPropSynthesizer(cat, sensoClient)
	director := service.NewDirectorService(llmClient, cat, synthesizer, videoCfg)
	videoService := service.NewVideoService(cat, director, sensoClient, videoCfg)
	jobService := service.NewJobService(redisClient, asynqClient)

	// Handlers
	videoHandler := handler.NewVideoHandler(videoService, jobService, validate)
	templatesHandler := handler.NewTemplatesHandler(cat)

	authMiddleware := middleware.NewAuthMiddleware(testJWTSecret)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	app := fiber.New()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"timestamp": time.Now().Unix()})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"services": fiber.Map{
				"llm":   llmClient.IsConfigured(),
				"senso": sensoClient.IsConfigured(),
			},
			"templates": len(cat.Templates),
		})
	})

	// API routes (authenticated)
	api := app.Group("/api", authMiddleware.Authenticate())

	templates := api.Group("/templates")
	templates.Get("/", templatesHandler.List)
	templates.Get("/:id", templatesHandler.Get)

	// Use very high rate limits so tests don't get blocked
	video := api.Group("/video")
	video.Post("/generate", rateLimiter.GenerateLimit(10000), videoHandler.Generate)
	video.Post("/jobs", rateLimiter.JobsLimit(10000), videoHandler.StartJob)
	video.Get("/jobs/:jobId/status", videoHandler.Status)
	video.Get("/jobs/:jobId/result", videoHandler.Result)
	video.Post("/jobs/:jobId/cancel", videoHandler.Cancel)

	return &testApp{app: app, auth: authMiddleware}
}

// generateToken creates an HMAC JWT token for test requests.
func generateToken(t *testing.T, ta *testApp) string {
	t.Helper()
	signed, err := ta.auth.GenerateToken("test-user-123", "test@example.com")
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}
	return signed
}

// doRequest is a helper to perform HTTP requests against the test app.
func doRequest(app *fiber.App, method, path string, body string, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, path, bodyReader)
	if err != nil {
		return nil, err
	}

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return app.Test(req, -1)
}

// doAuthRequest performs an authenticated request.
func doAuthRequest(t *testing.T, ta *testApp, method, path, body string) (*http.Response, error) {
	t.Helper()
	token := generateToken(t, ta)
	return doRequest(ta.app, method, path, body, map[string]string{
		"Authorization": "Bearer " + token,
	})
}

// readBody reads and returns the response body as a string.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(b)
}

// parseJSON parses response body into a map.
func parseJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body := readBody(t, resp)
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, body)
	}
	return result
}

// assertStatus checks the HTTP status code.
func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("expected status %d, got %d", expected, resp.StatusCode)
	}
}
