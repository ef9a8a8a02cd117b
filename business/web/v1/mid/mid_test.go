package mid_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/ardanlabs/ledger/business/sys/validate"
	v1 "github.com/ardanlabs/ledger/business/web/v1"
	"github.com/ardanlabs/ledger/business/web/v1/mid"
	"github.com/ardanlabs/ledger/foundation/logger"
	"github.com/ardanlabs/ledger/foundation/web"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Errors(t *testing.T) {
	log, err := logger.New("TEST", os.DevNull)
	if err != nil {
		t.Fatalf("Should be able to construct a logger: %s", err)
	}
	defer log.Sync()

	type table struct {
		name   string
		err    error
		status int
		fields bool
	}

	tt := []table{
		{name: "request", err: v1.NewRequestError(errors.New("bad address"), http.StatusBadRequest), status: http.StatusBadRequest},
		{name: "fields", err: validate.FieldErrors{{Field: "sender", Err: "sender is a required field"}}, status: http.StatusBadRequest, fields: true},
		{name: "unknown", err: errors.New("database gone"), status: http.StatusInternalServerError},
		{name: "panic", status: http.StatusInternalServerError},
	}

	t.Log("Given the need to turn handler errors into responses.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				app := web.NewApp(make(chan os.Signal, 1), mid.Logger(log), mid.Errors(log), mid.Metrics(), mid.Panics())

				h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
					if tst.err == nil {
						panic("handler blew up")
					}
					return tst.err
				}
				app.Handle(http.MethodGet, "v1", "/test", h)

				w := httptest.NewRecorder()
				app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/test", nil))

				if w.Code != tst.status {
					t.Fatalf("\t%s\tTest %d:\tShould receive a status code of %d : %d", failed, testID, tst.status, w.Code)
				}
				t.Logf("\t%s\tTest %d:\tShould receive a status code of %d.", success, testID, tst.status)

				var er v1.ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&er); err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to decode the error response : %s", failed, testID, err)
				}

				if tst.fields && er.Fields["sender"] == "" {
					t.Fatalf("\t%s\tTest %d:\tShould get back the field errors : %+v", failed, testID, er)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_Cors(t *testing.T) {
	app := web.NewApp(make(chan os.Signal, 1))

	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
	app.Handle(http.MethodGet, "", "/cors", h, mid.Cors("http://viewer.local"))

	r := httptest.NewRequest(http.MethodGet, "/cors", nil)
	r.Header.Set("Origin", "http://viewer.local")
	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://viewer.local" {
		t.Fatalf("Should allow the listed origin: got %q", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/cors", nil)
	r.Header.Set("Origin", "http://other.local")
	w = httptest.NewRecorder()
	app.ServeHTTP(w, r)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("Should not allow an unlisted origin: got %q", got)
	}
}
