// Package prompts provides the prompt templates and canned replies used by the
// reply generators. Prompt files are JSON objects embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// ChatFile holds the career assistant prompts and fallback replies
const ChatFile = "chat.json"

// Keys in ChatFile
const (
	KeyCareerSystem       = "career_system"
	KeyProfileContext     = "profile_context"
	KeyFallbackCareer     = "fallback_career"
	KeyFallbackLearning   = "fallback_learning"
	KeyFallbackBackground = "fallback_background"
	KeyFallbackGoals      = "fallback_goals"
	KeyFallbackGreeting   = "fallback_greeting"
	KeyFallbackDefault    = "fallback_default"
)

//go:embed *.json
var promptFiles embed.FS

var (
	cache   = make(map[string]map[string]string)
	cacheMu sync.RWMutex
)

// Get retrieves a prompt by filename and key
func Get(filename, key string) (string, error) {
	prompts, err := loadFile(filename)
	if err != nil {
		return "", err
	}

	prompt, exists := prompts[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet retrieves a prompt and panics if it is missing.
// Only use it for keys defined in this package.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Chat is MustGet for a key of ChatFile
func Chat(key string) string {
	return MustGet(ChatFile, key)
}

// Format replaces {{.Key}} placeholders with values from data
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

func loadFile(filename string) (map[string]string, error) {
	cacheMu.RLock()
	prompts, ok := cache[filename]
	cacheMu.RUnlock()
	if ok {
		return prompts, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	cacheMu.Lock()
	cache[filename] = prompts
	cacheMu.Unlock()

	return prompts, nil
}

// ClearCache drops parsed prompt files. Useful for testing.
func ClearCache() {
	cacheMu.Lock()
	cache = make(map[string]map[string]string)
	cacheMu.Unlock()
}
