package app

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"helloeks/internal/config"
)

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	logger, _ := test.NewNullLogger()
	return New(cfg, logger)
}

func startApp(t *testing.T, a *App) string {
	t.Helper()

	if err := a.Listen(); err != nil {
		t.Fatalf("Listen() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Run() error = %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Error("Run() did not return after cancel")
		}
	})

	return "http://" + a.Addr().String()
}

func TestNew_ListenAddress(t *testing.T) {
	tests := []struct {
		name string
		port int
		want string
	}{
		{name: "default port", port: 8080, want: "0.0.0.0:8080"},
		{name: "custom port", port: 9090, want: "0.0.0.0:9090"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t, &config.Config{EnvLabel: "dev", Host: "0.0.0.0", Port: tt.port})
			if a.server.Addr != tt.want {
				t.Errorf("server.Addr = %v, want %v", a.server.Addr, tt.want)
			}
			if a.Addr() != nil {
				t.Errorf("Addr() before Listen = %v, want nil", a.Addr())
			}
		})
	}
}

func TestApp_ServesGreeting(t *testing.T) {
	a := newTestApp(t, &config.Config{EnvLabel: "staging", Host: "127.0.0.1", Port: 0})
	baseURL := startApp(t, a)

	resp, err := http.Get(baseURL + "/")
	if err != nil {
		t.Fatalf("GET / error = %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if want := "Hello from Flask on EKS via Helm! Env=staging\n"; string(body) != want {
		t.Errorf("body = %q, want %q", body, want)
	}
}

func TestApp_BindsConfiguredPort(t *testing.T) {
	// Reserve a free port, release it, then ask the app for exactly that one.
	probe, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := probe.Addr().(*net.TCPAddr).Port
	probe.Close()

	a := newTestApp(t, &config.Config{EnvLabel: "dev", Host: "127.0.0.1", Port: port})
	startApp(t, a)

	if got := a.Addr().(*net.TCPAddr).Port; got != port {
		t.Fatalf("bound port = %d, want %d", got, port)
	}

	conn, err := net.DialTimeout("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)), time.Second)
	if err != nil {
		t.Fatalf("dial configured port error = %v", err)
	}
	conn.Close()
}

func TestApp_ListenPortInUse(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer busy.Close()
	port := busy.Addr().(*net.TCPAddr).Port

	a := newTestApp(t, &config.Config{EnvLabel: "dev", Host: "127.0.0.1", Port: port})

	err = a.Listen()
	if err == nil {
		t.Fatal("Listen() on busy port error = nil, want error")
	}
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		t.Errorf("Listen() error = %v, want wrapped *net.OpError", err)
	}

	if err := a.Run(context.Background()); err == nil {
		t.Error("Run() on busy port error = nil, want error")
	}
}

func TestApp_ConcurrentRequests(t *testing.T) {
	a := newTestApp(t, &config.Config{EnvLabel: "dev", Host: "127.0.0.1", Port: 0})
	baseURL := startApp(t, a)

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Get(baseURL + "/")
			if err != nil {
				errs <- err
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				errs <- errors.New(resp.Status)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent GET / error = %v", err)
	}
}
