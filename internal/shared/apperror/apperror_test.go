package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not found", WrapNotFound(base, "Catalog", "GetBook", "missing"), KindNotFound},
		{"invalid", WrapInvalid(nil, "Catalog", "AddBook", "title required"), KindInvalidInput},
		{"unavailable", WrapUnavailable(base, "Catalog", "SearchBooks", "rpc"), KindUnavailable},
		{"publish", WrapPublish(base, "Catalog", "AddBook", "publish"), KindPublishFailure},
		{"internal", WrapInternal(base, "Catalog", "AddBook", "rpc"), KindInternal},
		{"plain error", base, KindInternal},
		{"wrapped by fmt", fmt.Errorf("outer: %w", WrapNotFound(base, "C", "O", "m")), KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsNotFound(WrapNotFound(nil, "C", "O", "m")))
	assert.False(t, IsNotFound(nil))
	assert.True(t, IsInvalid(WrapInvalid(nil, "C", "O", "m")))
	assert.True(t, IsUnavailable(WrapUnavailable(nil, "C", "O", "m")))
	assert.True(t, IsPublishFailure(WrapPublish(nil, "C", "O", "m")))
	assert.False(t, IsPublishFailure(WrapInternal(nil, "C", "O", "m")))
}

func TestErrorMessageAndUnwrap(t *testing.T) {
	base := errors.New("nats: timeout")
	err := WrapUnavailable(base, "Catalog", "GetBook", "rpc call failed")

	assert.Equal(t, "Catalog.GetBook: rpc call failed: nats: timeout", err.Error())
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "Catalog.AddBook: title required", WrapInvalid(nil, "Catalog", "AddBook", "title required").Error())
	assert.Equal(t, "publish_failure", KindPublishFailure.String())
}
