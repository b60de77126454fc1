package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("x", "x"), http.StatusNotFound},
		{"invalid state", InvalidState("x", "x"), http.StatusBadRequest},
		{"validation", Validation("x", "x"), http.StatusBadRequest},
		{"conflict", Conflict("x", "x", nil), http.StatusConflict},
		{"wrapped", fmt.Errorf("ctx: %w", NotFound("x", "x")), http.StatusNotFound},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusFor(tc.err))
		})
	}
}

func TestConflictUnwrapsCause(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Conflict("slot_taken", "taken", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestPostgresClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	exclusion := &pgconn.PgError{Code: "23P01"}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(exclusion))
	assert.False(t, IsUniqueViolation(errors.New("other")))
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("business error", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Respond(c, NotFound("availability_not_found", "Availability not found"))

		require.Equal(t, http.StatusNotFound, w.Code)
		var body HTTPError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "availability_not_found", body.Code)
		assert.Equal(t, "Availability not found", body.Message)
	})

	t.Run("internal error hides details", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Respond(c, errors.New("pq: connection refused"))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
		assert.Len(t, c.Errors, 1)
	})
}
