package bot

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/disgoorg/disgo/rest"
	"github.com/stretchr/testify/assert"

	"github.com/sentinelmod/sentinel/internal/automod"
)

func restError(statusCode int) error {
	return &rest.Error{Response: &http.Response{StatusCode: statusCode}}
}

func TestClassifyRestError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "not found", err: restError(http.StatusNotFound), want: automod.ErrNotFound},
		{name: "forbidden", err: restError(http.StatusForbidden), want: automod.ErrForbidden},
		{name: "wrapped not found", err: fmt.Errorf("delete: %w", restError(http.StatusNotFound)), want: automod.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, classifyRestError(tt.err))
		})
	}
}

func TestClassifyRestErrorPassthrough(t *testing.T) {
	t.Parallel()

	t.Run("other status codes", func(t *testing.T) {
		t.Parallel()

		err := restError(http.StatusTooManyRequests)
		assert.Equal(t, err, classifyRestError(err))
	})

	t.Run("non-rest errors", func(t *testing.T) {
		t.Parallel()

		err := errors.New("connection reset")
		assert.Equal(t, err, classifyRestError(err))
	})
}
