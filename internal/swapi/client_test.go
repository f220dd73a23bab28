package swapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilsonmoraes/starships-backend/internal/domain"
	"github.com/wilsonmoraes/starships-backend/internal/swapi"
	"github.com/wilsonmoraes/starships-backend/internal/testing/swapifake"
)

func TestListAllIDs_WalksEveryPage(t *testing.T) {
	srv := swapifake.New(2)
	t.Cleanup(srv.Close)
	for i := 1; i <= 5; i++ {
		srv.Put(strconv.Itoa(i), swapifake.CR90())
	}

	client := swapi.NewClient(srv.URL, time.Second)
	ids, err := client.ListAllIDs(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids)
	assert.Equal(t, int64(3), srv.ListCalls.Load(), "page 1 plus pages 2..3")
}

func TestListAllIDs_EmptyCollection(t *testing.T) {
	srv := swapifake.New(10)
	t.Cleanup(srv.Close)

	ids, err := swapi.NewClient(srv.URL, time.Second).ListAllIDs(context.Background())

	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Equal(t, int64(1), srv.ListCalls.Load())
}

func TestListAllIDs_IgnoresNextLink(t *testing.T) {
	// total_pages is authoritative even when next points elsewhere
	mux := http.NewServeMux()
	calls := 0
	mux.HandleFunc("/starships", func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "1":
			_, _ = w.Write([]byte(`{"total_pages":2,"next":"http://elsewhere/page/9","results":[{"uid":"a"}]}`))
		case "2":
			_, _ = w.Write([]byte(`{"total_pages":2,"next":null,"results":[{"uid":"b"}]}`))
		default:
			http.Error(w, "unexpected page", http.StatusBadRequest)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	ids, err := swapi.NewClient(srv.URL, time.Second).ListAllIDs(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
	assert.Equal(t, 2, calls)
}

func TestListAllIDs_PageFailure(t *testing.T) {
	srv := swapifake.New(10)
	t.Cleanup(srv.Close)
	srv.FailWith(swapi.PathStarships, http.StatusServiceUnavailable)

	ids, err := swapi.NewClient(srv.URL, time.Second).ListAllIDs(context.Background())

	require.Error(t, err)
	assert.Nil(t, ids)
	assert.True(t, errors.Is(err, domain.ErrRemoteUnavailable))

	var remoteErr *swapi.RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, http.StatusServiceUnavailable, remoteErr.StatusCode)
}

func TestFetchDetail(t *testing.T) {
	srv := swapifake.New(10)
	t.Cleanup(srv.Close)
	srv.Put("12", swapifake.XWing())

	props, err := swapi.NewClient(srv.URL, time.Second).FetchDetail(context.Background(), "12")

	require.NoError(t, err)
	assert.Equal(t, "X-wing", props.Name)
	assert.Equal(t, "Incom Corporation, Koensayr Manufacturing", props.Manufacturer)
	assert.Equal(t, "100", props.MGLT)
	assert.Equal(t, "2020-09-17T17:55:06.604Z", props.Edited)
}

func TestFetchDetail_NotFound(t *testing.T) {
	srv := swapifake.New(10)
	t.Cleanup(srv.Close)

	_, err := swapi.NewClient(srv.URL, time.Second).FetchDetail(context.Background(), "404")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRemoteUnavailable))
}

func TestFetchDetail_UndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	t.Cleanup(srv.Close)

	_, err := swapi.NewClient(srv.URL, time.Second).FetchDetail(context.Background(), "2")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRemoteUnavailable))
	assert.Contains(t, err.Error(), "decode")
}

func TestFetchDetail_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := swapi.NewClient(url, time.Second).FetchDetail(context.Background(), "2")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRemoteUnavailable))

	var remoteErr *swapi.RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Zero(t, remoteErr.StatusCode)
}

func TestFetchDetail_CancelledContext(t *testing.T) {
	srv := swapifake.New(10)
	t.Cleanup(srv.Close)
	srv.Put("2", swapifake.CR90())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := swapi.NewClient(srv.URL, time.Second).FetchDetail(ctx, "2")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRemoteUnavailable))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFetchDetail_SchemaMismatch(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing properties", `{"message":"ok","result":{"uid":"2"}}`},
		{"numeric field", `{"result":{"properties":{"name":"CR90","created":"x","edited":"y","crew":30}}}`},
		{"missing edited", `{"result":{"properties":{"name":"CR90","created":"x"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			_, err := swapi.NewClient(srv.URL, time.Second).FetchDetail(context.Background(), "2")

			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrRemoteUnavailable))
			assert.True(t, errors.Is(err, swapi.ErrSchemaMismatch))
		})
	}
}

func TestListAllIDs_SchemaMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"total_pages":1,"results":[{"uid":7}]}`))
	}))
	t.Cleanup(srv.Close)

	ids, err := swapi.NewClient(srv.URL, time.Second).ListAllIDs(context.Background())

	require.Error(t, err)
	assert.Nil(t, ids)
	assert.True(t, errors.Is(err, swapi.ErrSchemaMismatch))
	assert.Contains(t, err.Error(), "/results/0/uid")
}

func TestListAllIDs_HugeTotalRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total_records":9000000000000000000,"total_pages":1,"results":[{"uid":"a"}]}`))
	}))
	t.Cleanup(srv.Close)

	var ids []string
	var err error
	assert.NotPanics(t, func() {
		ids, err = swapi.NewClient(srv.URL, time.Second).ListAllIDs(context.Background())
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids)
}
