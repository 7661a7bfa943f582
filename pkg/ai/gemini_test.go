package ai

import (
	"sync"
	"testing"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

func TestGeminiClientConfigured(t *testing.T) {
	client := NewGeminiClient(&config.AIConfig{})
	if client.Configured() {
		t.Fatalf("expected client without keys to be unconfigured")
	}

	client = NewGeminiClient(&config.AIConfig{GeminiAPIKeys: []string{"key-a"}})
	if !client.Configured() {
		t.Fatalf("expected client with a key to be configured")
	}
}

func TestGeminiKeyRotationOrder(t *testing.T) {
	client := NewGeminiClient(&config.AIConfig{GeminiAPIKeys: []string{"key-a", "key-b", "key-c"}})

	want := []string{"key-a", "key-b", "key-c", "key-a"}
	for i, expected := range want {
		if key := client.activeKey(); key != expected {
			t.Fatalf("rotation step %d: expected %q, got %q", i, expected, key)
		}
		client.rotateKey()
	}
}

func TestGeminiKeyRotationConcurrent(t *testing.T) {
	client := NewGeminiClient(&config.AIConfig{GeminiAPIKeys: []string{"key-a", "key-b", "key-c"}})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				client.rotateKey()
				if key := client.activeKey(); key == "" {
					t.Errorf("empty key after rotation")
					return
				}
			}
		}()
	}
	wg.Wait()

	client.mu.Lock()
	defer client.mu.Unlock()
	if client.currentKey < 0 || client.currentKey >= len(client.apiKeys) {
		t.Fatalf("key index %d out of range", client.currentKey)
	}
}
