package gemini

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rsavchuk/talentflow/internal/ai"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeCall struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

type fakeResponse struct {
	resp *genai.GenerateContentResponse
	err  error
}

type fakeModels struct {
	mu    sync.Mutex
	calls []fakeCall
	queue []fakeResponse
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, fakeCall{model: model, contents: contents, config: config})

	if len(f.queue) == 0 {
		return nil, errors.New("no queued response")
	}

	next := f.queue[0]
	f.queue = f.queue[1:]

	return next.resp, next.err
}

func (f *fakeModels) enqueue(resp *genai.GenerateContentResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, fakeResponse{resp: resp, err: err})
}

func textResponse(texts ...string) *genai.GenerateContentResponse {
	parts := make([]*genai.Part, 0, len(texts))
	for _, text := range texts {
		parts = append(parts, &genai.Part{Text: text})
	}

	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: parts}},
		},
	}
}

func testGenerator(models *fakeModels, maxRetries int) *Generator {
	return &Generator{
		models:     models,
		modelName:  "test-model",
		maxRetries: maxRetries,
		retryDelay: time.Millisecond,
		logger:     zap.NewNop(),
	}
}

func TestGenerateRejectsEmptyPrompt(t *testing.T) {
	g := testGenerator(&fakeModels{}, 0)

	if _, err := g.Generate(context.Background(), ai.Request{Prompt: "   "}); err == nil {
		t.Fatalf("expected an error for empty prompt")
	}
}

func TestGenerateConcatenatesParts(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(textResponse("first chunk", "  ", "second chunk"), nil)

	g := testGenerator(models, 0)

	output, err := g.Generate(context.Background(), ai.Request{Prompt: "hello"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if output != "first chunk\nsecond chunk" {
		t.Fatalf("unexpected output: %q", output)
	}
}

func TestGenerateAppliesSystemInstructionAndTemperature(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(textResponse("ok"), nil)

	g := testGenerator(models, 0)

	_, err := g.Generate(context.Background(), ai.Request{
		System:      "You are a resume parser.",
		Prompt:      "parse this",
		Temperature: 0.3,
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if len(models.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(models.calls))
	}

	call := models.calls[0]
	if call.model != "test-model" {
		t.Fatalf("unexpected model: %q", call.model)
	}
	if call.config == nil || call.config.SystemInstruction == nil {
		t.Fatalf("system instruction not set")
	}
	if got := call.config.SystemInstruction.Parts[0].Text; !strings.Contains(got, "resume parser") {
		t.Fatalf("unexpected system instruction: %q", got)
	}
	if call.config.Temperature == nil || *call.config.Temperature != 0.3 {
		t.Fatalf("unexpected temperature: %v", call.config.Temperature)
	}
}

func TestGenerateRetriesTransientFailures(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(nil, errors.New("503 unavailable"))
	models.enqueue(nil, errors.New("503 unavailable"))
	models.enqueue(textResponse("recovered"), nil)

	g := testGenerator(models, 2)

	output, err := g.Generate(context.Background(), ai.Request{Prompt: "hello"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if output != "recovered" {
		t.Fatalf("unexpected output: %q", output)
	}
	if len(models.calls) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(models.calls))
	}
}

func TestGenerateReturnsLastErrorWhenExhausted(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(nil, errors.New("first failure"))
	models.enqueue(nil, errors.New("final failure"))

	g := testGenerator(models, 1)

	_, err := g.Generate(context.Background(), ai.Request{Prompt: "hello"})
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !strings.Contains(err.Error(), "final failure") {
		t.Fatalf("expected the last error, got %v", err)
	}
}

func TestGenerateStopsRetryingOnCanceledContext(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(nil, errors.New("503 unavailable"))

	g := testGenerator(models, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := g.Generate(ctx, ai.Request{Prompt: "hello"}); err == nil {
		t.Fatalf("expected an error")
	}
	if len(models.calls) != 1 {
		t.Fatalf("expected no retries after cancellation, got %d calls", len(models.calls))
	}
}

func TestGenerateRejectsEmptyResponse(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(textResponse("", "   "), nil)

	g := testGenerator(models, 0)

	if _, err := g.Generate(context.Background(), ai.Request{Prompt: "hello"}); err == nil {
		t.Fatalf("expected an error for empty response")
	}
}

func TestModel(t *testing.T) {
	g := testGenerator(&fakeModels{}, 0)
	if g.Model() != "test-model" {
		t.Fatalf("unexpected model: %q", g.Model())
	}

	var nilGen *Generator
	if nilGen.Model() != "" {
		t.Fatalf("expected empty model for nil generator")
	}
}
