package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAcceptsYes(t *testing.T) {
	for _, answer := range []string{"YES", "yes", "  Yes \n"} {
		v := NewTopicValidator(staticLLM(answer))
		valid, reason := v.Validate(context.Background(), "transformer architectures")
		assert.True(t, valid, "answer %q", answer)
		assert.Empty(t, reason)
	}
}

func TestValidateRejectsEverythingElse(t *testing.T) {
	for _, answer := range []string{"NO", "no", "YES, definitely", "maybe", ""} {
		v := NewTopicValidator(staticLLM(answer))
		valid, reason := v.Validate(context.Background(), "gardening tips")
		assert.False(t, valid, "answer %q", answer)
		assert.Contains(t, reason, "gardening tips")
	}
}

func TestValidateCollaboratorFailure(t *testing.T) {
	v := NewTopicValidator(failingLLM("missing API key"))
	valid, reason := v.Validate(context.Background(), "transformers")
	assert.False(t, valid)
	assert.Contains(t, reason, "missing API key")
}
