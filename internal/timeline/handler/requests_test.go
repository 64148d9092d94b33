package handler

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kyntel/internal/domain"
	dErrors "kyntel/pkg/domain-errors"
)

func TestParseQuery(t *testing.T) {
	t.Run("kind and id are required", func(t *testing.T) {
		_, err := parseQuery(httptest.NewRequest("GET", "/v1/timeline", nil))
		require.Error(t, err)
		assert.Equal(t, dErrors.CodeValidation, dErrors.CodeOf(err))
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		_, err := parseQuery(httptest.NewRequest("GET", "/v1/timeline?entity_kind=robot&entity_id=x", nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "entity_kind")
	})

	t.Run("blank id is rejected", func(t *testing.T) {
		_, err := parseQuery(httptest.NewRequest("GET", "/v1/timeline?entity_kind=company&entity_id=%20", nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "entity_id")
	})

	t.Run("bare dates are accepted", func(t *testing.T) {
		q, err := parseQuery(httptest.NewRequest("GET",
			"/v1/timeline?entity_kind=company&entity_id=co-1&from=2020-01-01&to=2024-12-31", nil))
		require.NoError(t, err)
		assert.Equal(t, domain.EntityKindCompany, q.EntityKind)
		assert.Equal(t, "co-1", q.EntityID)
		require.NotNil(t, q.From)
		assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), *q.From)
	})

	t.Run("RFC 3339 timestamps are accepted", func(t *testing.T) {
		q, err := parseQuery(httptest.NewRequest("GET",
			"/v1/timeline?entity_kind=person&entity_id=p-1&from=2020-01-01T12:30:00Z", nil))
		require.NoError(t, err)
		require.NotNil(t, q.From)
		assert.Equal(t, 12, q.From.Hour())
		assert.Nil(t, q.To)
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		_, err := parseQuery(httptest.NewRequest("GET",
			"/v1/timeline?entity_kind=company&entity_id=co-1&from=last-tuesday", nil))
		require.Error(t, err)
		assert.Equal(t, dErrors.CodeValidation, dErrors.CodeOf(err))
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		_, err := parseQuery(httptest.NewRequest("GET",
			"/v1/timeline?entity_kind=company&entity_id=co-1&from=2024-01-01&to=2020-01-01", nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "from must not be after to")
	})
}
