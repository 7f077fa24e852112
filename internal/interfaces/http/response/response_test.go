package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	domainerrors "invest-desk.backend/internal/domain/errors"
	"invest-desk.backend/pkg/utils"
)

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestSuccess(t *testing.T) {
	c, w := testContext()
	Success(c, http.StatusCreated, gin.H{"id": "1"})
	require.Equal(t, http.StatusCreated, w.Code)
	require.JSONEq(t, `{"id":"1"}`, w.Body.String())
}

func TestPaginated(t *testing.T) {
	c, w := testContext()
	Paginated(c, []string{"a"}, utils.CalculateMeta(1, 1, 10))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []string             `json:"data"`
		Meta utils.PaginationMeta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, []string{"a"}, body.Data)
	require.EqualValues(t, 1, body.Meta.TotalCount)
}

func TestError_Validation(t *testing.T) {
	c, w := testContext()
	ve := domainerrors.NewValidationError()
	ve.Add("amount", "amount must be at least 0")
	Error(c, ve)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "validation failed", body.Message)
	require.Equal(t, "amount must be at least 0", body.Errors["amount"])
}

func TestError_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domainerrors.ErrNotFound, http.StatusNotFound},
		{domainerrors.ErrConflict, http.StatusConflict},
		{domainerrors.ErrAlreadyExists, http.StatusConflict},
		{domainerrors.Forbidden("nope"), http.StatusForbidden},
		{domainerrors.Unauthorized("who"), http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		c, w := testContext()
		Error(c, tc.err)
		require.Equal(t, tc.status, w.Code, "error %v", tc.err)
	}
}

func TestError_WrappedSentinel(t *testing.T) {
	c, w := testContext()
	Error(c, errors.New("db: "+domainerrors.ErrNotFound.Error()))
	// A string match is not enough; only real sentinel wrapping maps.
	require.Equal(t, http.StatusInternalServerError, w.Code)

	c, w = testContext()
	Error(c, domainerrors.NewAppError(http.StatusConflict, "the payment was allocated concurrently, retry", domainerrors.ErrConflict))
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "retry")
}

func TestErrorWithStatus(t *testing.T) {
	c, w := testContext()
	ErrorWithStatus(c, http.StatusTeapot, "short and stout")
	require.Equal(t, http.StatusTeapot, w.Code)
	require.Contains(t, w.Body.String(), "short and stout")
}
