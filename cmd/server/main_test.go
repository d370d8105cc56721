package main

import "testing"

func TestIntEnv(t *testing.T) {
	t.Setenv("STORY_TIMEOUT_SECONDS", "25")
	if got := intEnv("STORY_TIMEOUT_SECONDS", 15); got != 25 {
		t.Fatalf("intEnv=%d want 25", got)
	}
	t.Setenv("STORY_TIMEOUT_SECONDS", "not-a-number")
	if got := intEnv("STORY_TIMEOUT_SECONDS", 15); got != 15 {
		t.Fatalf("intEnv=%d want fallback 15", got)
	}
	t.Setenv("STORY_TIMEOUT_SECONDS", "")
	if got := intEnv("STORY_TIMEOUT_SECONDS", 15); got != 15 {
		t.Fatalf("intEnv=%d want fallback 15", got)
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("STORY_MODEL", "")
	if got := envOr("STORY_MODEL", "gpt-4o-mini"); got != "gpt-4o-mini" {
		t.Fatalf("envOr=%q", got)
	}
	t.Setenv("STORY_MODEL", "  gpt-4.1  ")
	if got := envOr("STORY_MODEL", "gpt-4o-mini"); got != "gpt-4.1" {
		t.Fatalf("envOr=%q", got)
	}
}

func TestBuildStoryProviderFromEnv_OfflineWithoutKey(t *testing.T) {
	t.Setenv("STORY_API_KEY", "")
	provider := buildStoryProviderFromEnv()
	if provider == nil {
		t.Fatal("nil provider")
	}
}
