package web_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/ardanlabs/ledger/foundation/web"
)

func Test_Handle(t *testing.T) {
	shutdown := make(chan os.Signal, 1)

	var order []string
	mw := func(name string) web.Middleware {
		return func(handler web.Handler) web.Handler {
			return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
				order = append(order, name)
				return handler(ctx, w, r)
			}
		}
	}

	app := web.NewApp(shutdown, mw("app"))

	var traceID string
	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		v, err := web.GetValues(ctx)
		if err != nil {
			return err
		}
		traceID = v.TraceID

		resp := struct {
			Name string `json:"name"`
		}{
			Name: web.Param(r, "name"),
		}

		return web.Respond(ctx, w, resp, http.StatusOK)
	}
	app.Handle(http.MethodGet, "v1", "/hello/:name", h, mw("route"))

	r := httptest.NewRequest(http.MethodGet, "/v1/hello/bill", nil)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("Should receive a status code of 200: got %d", w.Code)
	}

	if got := strings.TrimSpace(w.Body.String()); got != `{"name":"bill"}` {
		t.Fatalf("Should get back the name parameter: got %s", got)
	}

	if traceID == "" {
		t.Fatalf("Should set a trace id for the request.")
	}

	if len(order) != 2 || order[0] != "app" || order[1] != "route" {
		t.Fatalf("Should run the app middleware first: got %v", order)
	}
}

func Test_Shutdown(t *testing.T) {
	shutdown := make(chan os.Signal, 1)
	app := web.NewApp(shutdown)

	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.NewShutdownError("integrity issue")
	}
	app.Handle(http.MethodGet, "", "/boom", h)

	app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	select {
	case <-shutdown:
	default:
		t.Fatalf("Should signal a shutdown.")
	}

	if web.IsShutdown(errors.New("plain")) {
		t.Fatalf("Should not treat a plain error as a shutdown.")
	}
}

func Test_Decode(t *testing.T) {
	var v struct {
		Sender string `json:"sender"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"sender":"alice"}`))
	if err := web.Decode(r, &v); err != nil || v.Sender != "alice" {
		t.Fatalf("Should be able to decode the document: %v", err)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"sender":"alice","extra":1}`))
	if err := web.Decode(r, &v); err == nil {
		t.Fatalf("Should reject unknown fields.")
	}
}
