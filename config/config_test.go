package config

import "testing"

func TestLoadConfigReadsEnvironment(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GOOGLE_SHEET_ID", "sheet-123")

	LoadConfig()

	if AppConfig.GeminiAPIKey != "test-key" {
		t.Fatalf("expected GeminiAPIKey %q, got %q", "test-key", AppConfig.GeminiAPIKey)
	}
	if !GeminiConfigured() {
		t.Fatal("expected GeminiConfigured to be true with the key set")
	}
	if AppConfig.GoogleSheetID != "sheet-123" {
		t.Fatalf("expected GoogleSheetID %q, got %q", "sheet-123", AppConfig.GoogleSheetID)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	LoadConfig()

	if AppConfig.AppPort != "3001" {
		t.Fatalf("expected default port 3001, got %q", AppConfig.AppPort)
	}
	if AppConfig.SheetName != "Sheet1" {
		t.Fatalf("expected default sheet name Sheet1, got %q", AppConfig.SheetName)
	}
	if AppConfig.AIProvider != "gemini" {
		t.Fatalf("expected default provider gemini, got %q", AppConfig.AIProvider)
	}
}
