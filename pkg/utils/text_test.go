package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateText(t *testing.T) {
	testCases := []struct {
		name      string
		text      string
		maxLength int
		expected  string
	}{
		{
			name:      "short text untouched",
			text:      "hello",
			maxLength: 10,
			expected:  "hello",
		},
		{
			name:      "exact length untouched",
			text:      "hello",
			maxLength: 5,
			expected:  "hello",
		},
		{
			name:      "long text gets suffix",
			text:      strings.Repeat("a", 100),
			maxLength: 50,
			expected:  strings.Repeat("a", 50-len(TruncateSuffix)) + TruncateSuffix,
		},
		{
			name:      "tiny limit cuts hard",
			text:      "abcdefgh",
			maxLength: 3,
			expected:  "abc",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, TruncateText(testCase.text, testCase.maxLength))
		})
	}
}

func TestSanitizeBody(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "plain text untouched",
			text:     "line one\nline two\ttabbed",
			expected: "line one\nline two\ttabbed",
		},
		{
			name:     "control characters escaped",
			text:     "bad\x00byte\x1bhere",
			expected: "bad\\u0000byte\\u001bhere",
		},
		{
			name:     "carriage return escaped",
			text:     "a\r\nb",
			expected: "a\\u000d\nb",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, SanitizeBody(testCase.text))
		})
	}
}

func TestSanitizeBodyIdempotent(t *testing.T) {
	input := "header\x01\x02\r\nbody"
	once := SanitizeBody(input)
	twice := SanitizeBody(once)
	assert.Equal(t, once, twice)
}
