package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jjmacky/fluent-lm/llm"
)

func TestDialect_Registered(t *testing.T) {
	d, err := llm.GetDialect(Name)
	if err != nil {
		t.Fatal(err)
	}
	if d.Name() != "openai" {
		t.Errorf("got %s", d.Name())
	}
}

func TestDialect_BuildRequest(t *testing.T) {
	d := &Dialect{}
	body, err := d.BuildRequest(llm.Request{Model: "gpt-4o-mini", Prompt: "hi", Temperature: 0.2, MaxTokens: 64})
	if err != nil {
		t.Fatal(err)
	}
	req, ok := body.(chatRequest)
	if !ok {
		t.Fatalf("unexpected body type %T", body)
	}
	if req.Model != "gpt-4o-mini" || req.MaxTokens != 64 {
		t.Errorf("got %+v", req)
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != "user" || req.Messages[0].Content != "hi" {
		t.Errorf("got messages %+v", req.Messages)
	}
}

func TestDialect_ParseResponse(t *testing.T) {
	d := &Dialect{}
	body := `{
		"model": "gpt-4o-mini",
		"choices": [{"message": {"role": "assistant", "content": "4"}}],
		"usage": {"prompt_tokens": 9, "completion_tokens": 1, "total_tokens": 10}
	}`
	resp, err := d.ParseResponse([]byte(body))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Content != "4" || resp.Model != "gpt-4o-mini" {
		t.Errorf("got %+v", resp)
	}
	if resp.Usage.TotalTokens != 10 {
		t.Errorf("got usage %+v", resp.Usage)
	}
}

func TestDialect_ParseResponse_NoChoices(t *testing.T) {
	d := &Dialect{}
	if _, err := d.ParseResponse([]byte(`{"model":"m","choices":[]}`)); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestDialect_AuthHeaders(t *testing.T) {
	d := &Dialect{}
	h := d.AuthHeaders("sk-test")
	if h["Authorization"] != "Bearer sk-test" {
		t.Errorf("got %v", h)
	}
	if d.AuthHeaders("") != nil {
		t.Error("expected nil headers without key")
	}
}

func TestDialect_ThroughAdapter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("unexpected auth %q", got)
		}
		raw, _ := io.ReadAll(r.Body)
		var req chatRequest
		_ = json.Unmarshal(raw, &req)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":   req.Model,
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": "echo: " + req.Messages[0].Content}}},
		})
	}))
	defer srv.Close()

	a, err := llm.New(llm.Config{Dialect: Name, BaseURL: srv.URL, APIKey: "sk-test", Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := a.Invoke(context.Background(), llm.Request{Prompt: "ping"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Content != "echo: ping" {
		t.Errorf("got %q", resp.Content)
	}
}
