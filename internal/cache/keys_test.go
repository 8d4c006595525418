package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		service     string
		objectType  string
		identifier  string
		params      []string
		expectedKey string
	}{
		{"quiz record", "quiz", "record", "01HGZ8VNRYXS8QKNJV5GRWPWDQ", nil, "topicquiz:quiz:record:01HGZ8VNRYXS8QKNJV5GRWPWDQ"},
		{"context summary", "context", "summary", "solar system", nil, "topicquiz:context:summary:solar system"},
		{"empty params", "quiz", "list", "recent", []string{}, "topicquiz:quiz:list:recent"},
		{"with params", "quiz", "list", "recent", []string{"limit", "50"}, "topicquiz:quiz:list:recent:limit_50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedKey, GenerateCacheKey(tt.service, tt.objectType, tt.identifier, tt.params...))
		})
	}
}
