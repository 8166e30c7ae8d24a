package notifier

import (
	"bytes"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/notifytray/notifytray/internal/assets"
	"github.com/notifytray/notifytray/internal/config"
	"github.com/notifytray/notifytray/internal/surface"
)

// fakeBackend records tray calls for assertions.
type fakeBackend struct {
	mu          sync.Mutex
	addCalls    int
	removeCalls int
	icon        []byte
}

func (f *fakeBackend) Add(icon []byte, tooltip string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls++
	f.icon = icon
	return nil
}

func (f *fakeBackend) SetIcon(icon []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.icon = icon
}

func (f *fakeBackend) Remove() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeCalls++
}

func (f *fakeBackend) counts() (adds, removes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addCalls, f.removeCalls
}

// syncBuffer is a goroutine-safe log sink for the stdout collaborator.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestNotifier(t *testing.T) (*Notifier, *surface.Surface, *fakeBackend, *syncBuffer) {
	t.Helper()

	defaultIcon, err := assets.Resolve("sun")
	if err != nil {
		t.Fatalf("resolve default icon: %v", err)
	}

	backend := &fakeBackend{}
	surf := surface.New(backend, defaultIcon, "test tooltip")
	surf.SetPopup(func(title, body string) error { return nil })

	cfg := &config.Config{Host: "127.0.0.1", Port: 0, Icon: "sun", Sound: ""}
	n := New(cfg, surf, nil)

	out := &syncBuffer{}
	n.out = out
	n.now = func() time.Time {
		return time.Date(2024, 5, 1, 12, 34, 56, 0, time.Local)
	}

	t.Cleanup(n.Stop)
	return n, surf, backend, out
}

func doRequest(n *Notifier, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	n.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandle_UnknownIcon(t *testing.T) {
	n, surf, _, out := newTestNotifier(t)
	before := surf.CurrentIcon()

	rec := doRequest(n, http.MethodGet, "/missing", "")

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty response body, got %q", rec.Body.String())
	}
	if !bytes.Equal(surf.CurrentIcon(), before) {
		t.Error("unknown icon must not mutate surface state")
	}
	if out.String() != "" {
		t.Errorf("unknown icon must not log a notification line, got %q", out.String())
	}
}

func TestHandle_KnownIcon(t *testing.T) {
	n, surf, _, out := newTestNotifier(t)

	rec := doRequest(n, http.MethodPost, "/sun", "hello")

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty response body, got %q", rec.Body.String())
	}

	want := "12:34:56 hello\n"
	if out.String() != want {
		t.Errorf("log line = %q, want %q", out.String(), want)
	}

	sunIcon, _ := assets.Resolve("sun")
	if !bytes.Equal(surf.CurrentIcon(), sunIcon) {
		t.Error("surface icon should be the resolved asset")
	}
}

func TestHandle_AnyMethod(t *testing.T) {
	n, _, _, _ := newTestNotifier(t)

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete} {
		rec := doRequest(n, method, "/moon", "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s /moon: expected 200, got %d", method, rec.Code)
		}
	}
}

func TestHandle_EmptyBodyPlaceholder(t *testing.T) {
	n, _, _, out := newTestNotifier(t)

	rec := doRequest(n, http.MethodGet, "/sun", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	want := "12:34:56 New notification arrived.\n"
	if out.String() != want {
		t.Errorf("log line = %q, want %q", out.String(), want)
	}
}

func TestHandle_MultiLineBody(t *testing.T) {
	n, _, _, out := newTestNotifier(t)

	doRequest(n, http.MethodPost, "/sun", "line one\nline two\nline three")

	want := "12:34:56 line one\nline two\nline three\n"
	if out.String() != want {
		t.Errorf("log output = %q, want %q", out.String(), want)
	}
}

func TestHandle_TrailingNewline(t *testing.T) {
	n, _, _, out := newTestNotifier(t)

	doRequest(n, http.MethodPost, "/sun", "hello\n")

	want := "12:34:56 hello\n"
	if out.String() != want {
		t.Errorf("log output = %q, want %q", out.String(), want)
	}
}

func TestReadMessage(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", emptyBodyMessage},
		{"newline only", "\n", emptyBodyMessage},
		{"single line", "hello", "hello"},
		{"multi line", "a\nb\nc", "a\nb\nc"},
		{"blank line preserved", "a\n\nb", "a\n\nb"},
		{"crlf", "a\r\nb", "a\nb"},
		{"invalid utf8 passthrough", "he\xffllo", "he\xffllo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := readMessage(strings.NewReader(tt.in)); got != tt.want {
				t.Errorf("readMessage(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStartStop(t *testing.T) {
	n, surf, _, _ := newTestNotifier(t)

	if err := n.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if !n.Running() {
		t.Error("notifier should be running")
	}
	if !surf.Attached() {
		t.Error("surface should be attached while serving")
	}

	resp, err := http.Get("http://" + n.Addr() + "/sun")
	if err != nil {
		t.Fatalf("GET /sun over the wire: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 over the wire, got %d", resp.StatusCode)
	}

	n.Stop()
	if n.Running() {
		t.Error("notifier should be stopped")
	}
	if surf.Attached() {
		t.Error("surface should be detached after stop")
	}
}

func TestStop_Idempotent(t *testing.T) {
	n, _, backend, _ := newTestNotifier(t)

	if err := n.Start(); err != nil {
		t.Fatal(err)
	}
	n.Stop()
	n.Stop() // second call is a no-op

	_, removes := backend.counts()
	if removes != 1 {
		t.Errorf("expected 1 Remove call, got %d", removes)
	}
}

func TestStop_WithoutStart(t *testing.T) {
	n, _, backend, _ := newTestNotifier(t)

	n.Stop()

	adds, removes := backend.counts()
	if adds != 0 || removes != 0 {
		t.Errorf("stop before start touched the tray: adds=%d removes=%d", adds, removes)
	}
}

func TestStart_WhileRunningRebinds(t *testing.T) {
	n, surf, backend, _ := newTestNotifier(t)

	if err := n.Start(); err != nil {
		t.Fatal(err)
	}
	if err := n.Start(); err != nil {
		t.Fatalf("restart error: %v", err)
	}

	if !n.Running() {
		t.Error("notifier should be running after restart")
	}
	if !surf.Attached() {
		t.Error("surface should end attached exactly once")
	}
	adds, removes := backend.counts()
	if adds-removes != 1 {
		t.Errorf("attach/detach imbalance after restart: adds=%d removes=%d", adds, removes)
	}

	resp, err := http.Get("http://" + n.Addr() + "/sun")
	if err != nil {
		t.Fatalf("GET after restart: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 after restart, got %d", resp.StatusCode)
	}
}

func TestStart_BindFailure(t *testing.T) {
	n, surf, _, _ := newTestNotifier(t)

	// Occupy a port so the notifier cannot bind it.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	n.cfg.Port = ln.Addr().(*net.TCPAddr).Port

	err = n.Start()
	if err == nil {
		t.Fatal("expected bind failure")
	}
	var bindErr *BindError
	if !errors.As(err, &bindErr) {
		t.Errorf("expected *BindError, got %T", err)
	}
	if n.Running() {
		t.Error("bind failure must leave the notifier stopped")
	}
	if surf.Attached() {
		t.Error("bind failure must leave the surface detached")
	}
}

func TestDoubleClick_Shutdown(t *testing.T) {
	n, surf, _, _ := newTestNotifier(t)

	exitCode := -1
	surf.OnShutdown(func() {
		n.Stop()
		exitCode = 0
	})

	if err := n.Start(); err != nil {
		t.Fatal(err)
	}

	surf.Click(2)

	if n.Running() {
		t.Error("double click should stop the notifier")
	}
	if surf.Attached() {
		t.Error("double click should detach the surface")
	}
	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
}

func TestSingleClick_ResetsAfterNotification(t *testing.T) {
	n, surf, _, _ := newTestNotifier(t)

	doRequest(n, http.MethodPost, "/moon", "going dark")

	moonIcon, _ := assets.Resolve("moon")
	if !bytes.Equal(surf.CurrentIcon(), moonIcon) {
		t.Fatal("notification should have set the moon icon")
	}

	surf.Click(1)

	sunIcon, _ := assets.Resolve("sun")
	if !bytes.Equal(surf.CurrentIcon(), sunIcon) {
		t.Error("single click should restore the default icon")
	}
}

func TestHandle_ConcurrentRequests(t *testing.T) {
	n, surf, _, _ := newTestNotifier(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path := "/sun"
			if i%2 == 0 {
				path = "/moon"
			}
			for j := 0; j < 20; j++ {
				rec := doRequest(n, http.MethodPost, path, "ping")
				if rec.Code != http.StatusOK {
					t.Errorf("expected 200, got %d", rec.Code)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	// Last writer wins: the surface must show one of the two assets.
	sunIcon, _ := assets.Resolve("sun")
	moonIcon, _ := assets.Resolve("moon")
	current := surf.CurrentIcon()
	if !bytes.Equal(current, sunIcon) && !bytes.Equal(current, moonIcon) {
		t.Error("surface shows an image no request set")
	}
}

func TestHandler_StatusEndpoints(t *testing.T) {
	n, _, _, _ := newTestNotifier(t)

	rec := doRequest(n, http.MethodGet, "/ui/icons", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /ui/icons: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"sun"`) {
		t.Errorf("icon listing should include the default icon, got %q", rec.Body.String())
	}

	rec = doRequest(n, http.MethodGet, "/ui/logs", "")
	if rec.Code != http.StatusOK {
		t.Errorf("GET /ui/logs: expected 200, got %d", rec.Code)
	}
}
