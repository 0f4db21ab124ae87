package drive

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/frostyfucker/HotelBrendle/internal/notify"
)

type fakeTokenClient struct {
	prompts []string
	err     error
}

func (f *fakeTokenClient) Request(_ context.Context, prompt string) (*oauth2.Token, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return nil, f.err
	}
	return &oauth2.Token{AccessToken: "access-" + prompt}, nil
}

func newTestUploader(url string, client TokenClient, ready bool) (*Uploader, *notify.Notifier) {
	notifier := notify.New(notify.WithScheduler(func(time.Duration, func()) {}))
	u := NewUploader(url, client, notifier, func() bool { return ready })
	return u, notifier
}

func TestSaveUploadsMultipartBody(t *testing.T) {
	var gotBody string
	var gotAuth, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "multipart", r.URL.Query().Get("uploadType"))
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := &fakeTokenClient{}
	u, notifier := newTestUploader(srv.URL, client, true)

	err := u.Save(context.Background(), "report.json", []byte(`{"ok":true}`), "application/json")
	require.NoError(t, err)

	assert.Equal(t, "Bearer access-consent", gotAuth)
	assert.Contains(t, gotContentType, "multipart/related")
	assert.Contains(t, gotContentType, UploadBoundary)
	assert.Contains(t, gotBody, `"name":"report.json"`)
	assert.Contains(t, gotBody, `{"ok":true}`)
	assert.True(t, strings.HasSuffix(gotBody, "\r\n--"+UploadBoundary+"--"))
	require.NotNil(t, notifier.Current())
	assert.Equal(t, `File "report.json" saved to Google Drive!`, notifier.Current().Text)
}

func TestSavePromptsConsentOnlyOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := &fakeTokenClient{}
	u, _ := newTestUploader(srv.URL, client, true)

	require.NoError(t, u.Save(context.Background(), "a.txt", []byte("a"), "text/plain"))
	require.NoError(t, u.Save(context.Background(), "b.txt", []byte("b"), "text/plain"))

	assert.Equal(t, []string{"consent", "none"}, client.prompts)
}

func TestSaveFailsFastWhenNotReady(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := &fakeTokenClient{}
	u, notifier := newTestUploader(srv.URL, client, false)

	err := u.Save(context.Background(), "a.txt", []byte("a"), "text/plain")
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Zero(t, requests.Load())
	assert.Empty(t, client.prompts)
	require.NotNil(t, notifier.Current())
	assert.Equal(t, "Google Drive is not ready yet. Please try again in a moment.", notifier.Current().Text)
}

func TestSaveReportsAccessDenied(t *testing.T) {
	client := &fakeTokenClient{err: errors.New("user dismissed prompt")}
	u, notifier := newTestUploader("http://127.0.0.1:0", client, true)

	err := u.Save(context.Background(), "a.txt", []byte("a"), "text/plain")
	assert.ErrorIs(t, err, ErrAccessDenied)
	require.NotNil(t, notifier.Current())
	assert.Equal(t, "Google Drive access denied.", notifier.Current().Text)
}

func TestSaveSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"The user has not granted the app access"}}`))
	}))
	defer srv.Close()

	u, notifier := newTestUploader(srv.URL, &fakeTokenClient{}, true)

	err := u.Save(context.Background(), "a.txt", []byte("a"), "text/plain")
	require.Error(t, err)
	require.NotNil(t, notifier.Current())
	assert.Equal(t, "Error saving to Drive: The user has not granted the app access", notifier.Current().Text)
}

func TestSaveClearsTokenAfterEveryOutcome(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	u, _ := newTestUploader(srv.URL, &fakeTokenClient{}, true)

	require.Error(t, u.Save(context.Background(), "a.txt", []byte("a"), "text/plain"))
	assert.Nil(t, u.tokens.Get())

	srvOK := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srvOK.Close()
	u2, _ := newTestUploader(srvOK.URL, &fakeTokenClient{}, true)
	require.NoError(t, u2.Save(context.Background(), "a.txt", []byte("a"), "text/plain"))
	assert.Nil(t, u2.tokens.Get())
}
