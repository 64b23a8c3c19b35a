package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreAnswers(t *testing.T) {
	questions := []*Question{
		{ID: 1, CorrectAnswer: "Paris"},
		{ID: 2, CorrectAnswer: "42"},
		{ID: 3, CorrectAnswer: "true"},
	}

	tests := []struct {
		name    string
		answers map[int64]string
		want    int
	}{
		{
			name:    "all correct",
			answers: map[int64]string{1: "Paris", 2: "42", 3: "true"},
			want:    3,
		},
		{
			name:    "case insensitive compare",
			answers: map[int64]string{1: "paris", 3: "TRUE"},
			want:    2,
		},
		{
			name:    "surrounding whitespace ignored",
			answers: map[int64]string{1: "  Paris ", 2: " 42"},
			want:    2,
		},
		{
			name:    "wrong answers score zero",
			answers: map[int64]string{1: "London", 2: "41"},
			want:    0,
		},
		{
			name:    "unknown question ids are ignored",
			answers: map[int64]string{1: "Paris", 99: "Paris"},
			want:    1,
		},
		{
			name:    "empty answer set",
			answers: map[int64]string{},
			want:    0,
		},
		{
			name:    "nil answer set",
			answers: nil,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreAnswers(questions, tt.answers))
		})
	}
}

func TestScoreAnswersNoQuestions(t *testing.T) {
	assert.Equal(t, 0, ScoreAnswers(nil, map[int64]string{1: "anything"}))
}
