package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("loading cart: %w", NotFound("cart not found"))

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.True(t, Is(wrapped, KindNotFound))
	assert.False(t, Is(nil, KindNotFound))
}

func TestKindHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:   http.StatusBadRequest,
		KindNotFound:     http.StatusNotFound,
		KindConflict:     http.StatusConflict,
		KindUnauthorized: http.StatusUnauthorized,
		KindForbidden:    http.StatusForbidden,
		KindUpstream:     http.StatusBadGateway,
		KindInternal:     http.StatusInternalServerError,
		KindRateLimited:  http.StatusTooManyRequests,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.HTTPStatus(), string(kind))
	}
}

func TestUpstreamUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Upstream("image upload failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "image upload failed: connection refused", err.Error())
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("product: %w", ErrRecordNotFound)))
	assert.False(t, IsNotFound(errors.New("other")))
}

func TestToBody(t *testing.T) {
	body := ToBody(fmt.Errorf("wrap: %w", Conflict("product already favorited")))
	assert.Equal(t, KindConflict, body.Error.Kind)
	assert.Equal(t, "product already favorited", body.Error.Message)

	body = ToBody(Upstream("image host rejected upload", errors.New("503 from host")))
	assert.Equal(t, KindUpstream, body.Error.Kind)
	assert.Equal(t, "upstream service unavailable", body.Error.Message)

	body = ToBody(errors.New("pq: connection refused"))
	assert.Equal(t, KindInternal, body.Error.Kind)
	assert.Equal(t, "internal server error", body.Error.Message)
}
