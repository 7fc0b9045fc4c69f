package response

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	ok := OK("payload", "done")
	if !ok.Success || ok.Kind != KindSuccess || *ok.Data != "payload" {
		t.Fatalf("OK = %+v", ok)
	}

	list := OKList([]int{1, 2}, 40, "")
	if list.TotalCount == nil || *list.TotalCount != 40 {
		t.Fatalf("OKList total = %v", list.TotalCount)
	}

	fail := Fail[string](KindConflict, "taken")
	if fail.Success || fail.Data != nil || fail.Message != "taken" {
		t.Fatalf("Fail = %+v", fail)
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := map[NotificationKind]int{
		KindSuccess:    http.StatusOK,
		KindBadRequest: http.StatusBadRequest,
		KindNotFound:   http.StatusNotFound,
		KindConflict:   http.StatusConflict,
	}
	for kind, want := range cases {
		r := Result[any]{Kind: kind}
		if got := r.HTTPStatus(); got != want {
			t.Fatalf("%s -> %d, want %d", kind, got, want)
		}
	}
	if got := (Result[any]{Kind: "Bogus"}).HTTPStatus(); got != http.StatusInternalServerError {
		t.Fatalf("unknown kind -> %d", got)
	}
}

func TestFailureOmitsData(t *testing.T) {
	b, err := json.Marshal(Fail[string](KindNotFound, "missing"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["data"] != nil {
		t.Fatalf("data = %v, want null", m["data"])
	}
	if m["success"] != false || m["notificationKind"] != "NotFound" {
		t.Fatalf("envelope = %v", m)
	}
}
