package main

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"github.com/comelu/waitlist-api/internal/leads"
	"github.com/comelu/waitlist-api/pkg/logging"
)

func newTestLeadsHandler() *leads.Handler {
	return leads.NewHandler(leads.NewInMemoryRepository(), nil, nil, nil, logging.Default())
}

func submitEvent(method, body string) events.APIGatewayV2HTTPRequest {
	evt := events.APIGatewayV2HTTPRequest{
		RawPath: "/submitLead",
		Body:    body,
		Headers: map[string]string{"content-type": "application/json"},
	}
	evt.RequestContext.HTTP.Method = method
	evt.RequestContext.HTTP.SourceIP = "203.0.113.9"
	return evt
}

func TestHandlePreflight(t *testing.T) {
	resp, err := handle(context.Background(), newTestLeadsHandler(), submitEvent(http.MethodOptions, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", resp.Body)
	}
	if resp.Headers["Access-Control-Allow-Origin"] != "*" {
		t.Fatalf("expected CORS headers on response, got %v", resp.Headers)
	}
}

func TestHandleSubmit(t *testing.T) {
	body := `{"nombre":"Carlos González","email":"Carlos@Empresa.cl","telefonoPais":"+56",
		"telefonoNumero":"912345678","rol":"Laboratorista","tamano":"1–3",
		"dolor":"Archivos perdidos","intereses":["Órdenes + estados por etapa"],"checklist":true}`

	resp, err := handle(context.Background(), newTestLeadsHandler(), submitEvent(http.MethodPost, body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, resp.Body)
	}
}

func TestHandleBase64Body(t *testing.T) {
	body := `{"nombre":"Carlos","email":"carlos@empresa.cl","telefonoPais":"+56",
		"telefonoNumero":"912345678","rol":"Laboratorista","tamano":"1–3",
		"dolor":"Archivos perdidos","intereses":["Notificaciones a clientes"],"checklist":false}`
	evt := submitEvent(http.MethodPost, base64.StdEncoding.EncodeToString([]byte(body)))
	evt.IsBase64Encoded = true

	resp, err := handle(context.Background(), newTestLeadsHandler(), evt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, resp.Body)
	}
}

func TestHandleMethodNotAllowed(t *testing.T) {
	resp, err := handle(context.Background(), newTestLeadsHandler(), submitEvent(http.MethodGet, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}

func TestHandleInvalidBase64(t *testing.T) {
	evt := submitEvent(http.MethodPost, "%%%not-base64%%%")
	evt.IsBase64Encoded = true

	resp, err := handle(context.Background(), newTestLeadsHandler(), evt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
