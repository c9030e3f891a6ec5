package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_Defaults(t *testing.T) {
	rec := Wrap(httptest.NewRecorder())

	assert.Equal(t, http.StatusOK, rec.Status())
	assert.Equal(t, 0, rec.Bytes())
	assert.False(t, rec.Written())
}

func TestWrap_ReusesRecorder(t *testing.T) {
	outer := Wrap(httptest.NewRecorder())
	inner := Wrap(outer)

	assert.Same(t, outer, inner)
}

func TestRecorder_WriteHeader(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			w := httptest.NewRecorder()
			rec := Wrap(w)

			rec.WriteHeader(status)

			assert.Equal(t, status, rec.Status())
			assert.Equal(t, status, w.Code)
			assert.True(t, rec.Written())
		})
	}
}

func TestRecorder_FirstStatusWins(t *testing.T) {
	w := httptest.NewRecorder()
	rec := Wrap(w)

	rec.WriteHeader(http.StatusTooManyRequests)
	rec.WriteHeader(http.StatusOK)

	assert.Equal(t, http.StatusTooManyRequests, rec.Status())
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRecorder_WriteCountsBytes(t *testing.T) {
	w := httptest.NewRecorder()
	rec := Wrap(w)

	n1, err := rec.Write([]byte(`{"summary":`))
	require.NoError(t, err)
	n2, err := rec.Write([]byte(`"ok"}`))
	require.NoError(t, err)

	assert.Equal(t, n1+n2, rec.Bytes())
	assert.Equal(t, `{"summary":"ok"}`, w.Body.String())
	assert.Equal(t, http.StatusOK, rec.Status(), "implicit 200")
	assert.True(t, rec.Written())
}

func TestRecorder_WriteAfterHeader(t *testing.T) {
	w := httptest.NewRecorder()
	rec := Wrap(w)

	rec.WriteHeader(http.StatusBadRequest)
	_, err := rec.Write([]byte(`{"message":"Invalid request data"}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, len(`{"message":"Invalid request data"}`), rec.Bytes())
}

func TestRecorder_Flush(t *testing.T) {
	w := httptest.NewRecorder()
	rec := Wrap(w)

	rec.Flush()

	assert.True(t, w.Flushed)
	assert.True(t, rec.Written())
}

func TestRecorder_ResponseController(t *testing.T) {
	w := httptest.NewRecorder()
	rec := Wrap(w)

	rc := http.NewResponseController(rec)
	require.NoError(t, rc.Flush())
	assert.True(t, w.Flushed)

	// httptest.ResponseRecorder has no deadline support; the error proves Unwrap reached it.
	assert.ErrorIs(t, rc.SetWriteDeadline(time.Now()), http.ErrNotSupported)
}
