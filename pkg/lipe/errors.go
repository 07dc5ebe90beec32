package lipe

import (
	"encoding/json"
	"strings"
)

// errorMessage extracts the first message from an error envelope, falling back to the raw body.
func errorMessage(body []byte) string {
	var env struct {
		Message string `json:"message"`
		Data    []struct {
			Message string `json:"message"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err == nil {
		if len(env.Data) > 0 && env.Data[0].Message != "" {
			return env.Data[0].Message
		}
		if env.Message != "" {
			return env.Message
		}
	}
	return strings.TrimSpace(string(body))
}
