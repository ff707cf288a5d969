package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	mem "found-pets/internal/adapters/storage/memory"
	"found-pets/internal/domain/pets"
	"found-pets/internal/router"
)

type env struct {
	ts   *httptest.Server
	repo pets.Repository
}

func newEnv(t *testing.T) env {
	t.Helper()
	repo := mem.NewPetRepo()
	ts := httptest.NewServer(router.NewRouter(router.Options{PetRepo: repo}))
	t.Cleanup(ts.Close)
	return env{ts: ts, repo: repo}
}

func (e env) rows(t *testing.T) []pets.Pet {
	t.Helper()
	items, err := e.repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	return items
}

func TestHTTP_Lifecycle(t *testing.T) {
	e := newEnv(t)

	// Scenario A: create ok => 302 a /pets/<id>
	st, loc, _ := doForm(t, e.ts.URL, "POST", "/pets", url.Values{
		"pet[name]":    {"Snoopy"},
		"pet[species]": {"dog"},
	})
	if st != http.StatusFound {
		t.Fatalf("expected 302 create, got %d", st)
	}
	rows := e.rows(t)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	petID := rows[0].ID
	if path := pathOf(t, loc); path != "/pets/"+petID {
		t.Fatalf("expected redirect to /pets/%s, got %s", petID, loc)
	}

	// show (con notice del redirect)
	{
		st, body := doGet(t, e.ts.URL, loc)
		if st != http.StatusOK {
			t.Fatalf("expected 200 show, got %d", st)
		}
		if !strings.Contains(body, "Snoopy") || !strings.Contains(body, "Pet was successfully created.") {
			t.Fatalf("show page missing content: %s", body)
		}
	}

	// list + root alias
	for _, p := range []string{"/", "/pets"} {
		st, body := doGet(t, e.ts.URL, p)
		if st != http.StatusOK || !strings.Contains(body, "Snoopy") {
			t.Fatalf("expected 200 list with Snoopy at %s, got %d", p, st)
		}
	}

	// edit form
	{
		st, body := doGet(t, e.ts.URL, "/pets/"+petID+"/edit")
		if st != http.StatusOK || !strings.Contains(body, `value="Snoopy"`) {
			t.Fatalf("expected 200 edit form prefilled, got %d", st)
		}
	}

	// Scenario D: PATCH species=cat, resto intacto
	st, loc, _ = doForm(t, e.ts.URL, "PATCH", "/pets/"+petID, url.Values{"pet[species]": {"cat"}})
	if st != http.StatusFound || pathOf(t, loc) != "/pets/"+petID {
		t.Fatalf("expected 302 to show on update, got %d %s", st, loc)
	}
	got := e.rows(t)[0]
	if got.Species != pets.SpeciesCat || got.Name != "Snoopy" {
		t.Fatalf("unexpected row after update: %+v", got)
	}

	// PUT se comporta igual
	st, _, _ = doForm(t, e.ts.URL, "PUT", "/pets/"+petID, url.Values{"pet[address]": {"Main St 1"}})
	if st != http.StatusFound {
		t.Fatalf("expected 302 on PUT, got %d", st)
	}
	if got := e.rows(t)[0]; got.Address != "Main St 1" || got.Species != pets.SpeciesCat {
		t.Fatalf("unexpected row after PUT: %+v", got)
	}

	// Scenario E: DELETE => 303 a /pets, después 404
	st, loc, _ = doForm(t, e.ts.URL, "DELETE", "/pets/"+petID, nil)
	if st != http.StatusSeeOther || pathOf(t, loc) != "/pets" {
		t.Fatalf("expected 303 to /pets on delete, got %d %s", st, loc)
	}
	if n := len(e.rows(t)); n != 0 {
		t.Fatalf("expected 0 rows after delete, got %d", n)
	}
	if st, _ := doGet(t, e.ts.URL, "/pets/"+petID); st != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", st)
	}

	// delete repetido => 404, el server sigue vivo
	if st, _, _ := doForm(t, e.ts.URL, "DELETE", "/pets/"+petID, nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", st)
	}
	if st, _ := doGet(t, e.ts.URL, "/pets"); st != http.StatusOK {
		t.Fatalf("expected 200 list after double delete, got %d", st)
	}
}

func TestHTTP_CreateBlankName(t *testing.T) {
	e := newEnv(t)

	// Scenario B
	st, _, body := doForm(t, e.ts.URL, "POST", "/pets", url.Values{
		"pet[name]":    {""},
		"pet[species]": {"dog"},
	})
	if st != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", st)
	}
	if !strings.Contains(body, "Name can&#39;t be blank") {
		t.Fatalf("expected blank name message, body=%s", body)
	}
	if n := len(e.rows(t)); n != 0 {
		t.Fatalf("expected no rows, got %d", n)
	}
}

func TestHTTP_CreateUnknownSpecies(t *testing.T) {
	e := newEnv(t)

	// Scenario C: el form se re-muestra con lo enviado
	st, _, body := doForm(t, e.ts.URL, "POST", "/pets", url.Values{
		"pet[name]":    {"Rex"},
		"pet[species]": {"unicorn"},
	})
	if st != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", st)
	}
	if !strings.Contains(body, "Species is not included in the list") || !strings.Contains(body, `value="Rex"`) {
		t.Fatalf("expected species message and submitted values, body=%s", body)
	}
	if n := len(e.rows(t)); n != 0 {
		t.Fatalf("expected no rows, got %d", n)
	}
}

func TestHTTP_CreateDropsUnpermittedFields(t *testing.T) {
	e := newEnv(t)

	// Scenario F
	st, _, _ := doForm(t, e.ts.URL, "POST", "/pets", url.Values{
		"pet[name]":       {"Snoopy"},
		"pet[species]":    {"dog"},
		"pet[is_admin]":   {"true"},
		"is_admin":        {"true"},
		"pet[id]":         {"chosen-id"},
		"pet[created_at]": {"1999-01-01"},
	})
	if st != http.StatusFound {
		t.Fatalf("expected 302, got %d", st)
	}

	rows := e.rows(t)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].ID == "chosen-id" || rows[0].CreatedAt.Year() == 1999 {
		t.Fatalf("unpermitted field leaked into record: %+v", rows[0])
	}
	if strings.Contains(strings.ToLower(rows[0].Name+rows[0].Address+string(rows[0].Species)), "true") {
		t.Fatalf("is_admin leaked into record: %+v", rows[0])
	}
}

func TestHTTP_UpdateInvalidKeepsRow(t *testing.T) {
	e := newEnv(t)

	doForm(t, e.ts.URL, "POST", "/pets", url.Values{"pet[name]": {"Snoopy"}, "pet[species]": {"dog"}})
	before := e.rows(t)[0]

	st, _, body := doForm(t, e.ts.URL, "PATCH", "/pets/"+before.ID, url.Values{"pet[name]": {"  "}})
	if st != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 on invalid update, got %d", st)
	}
	if !strings.Contains(body, "Editing pet") || !strings.Contains(body, "Name can&#39;t be blank") {
		t.Fatalf("expected edit form with errors, body=%s", body)
	}

	after := e.rows(t)[0]
	if after.Name != before.Name || !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Fatalf("row changed on invalid update: before=%+v after=%+v", before, after)
	}
}

func TestHTTP_MethodOverrideFromForm(t *testing.T) {
	e := newEnv(t)

	doForm(t, e.ts.URL, "POST", "/pets", url.Values{"pet[name]": {"Snoopy"}})
	id := e.rows(t)[0].ID

	// lo que manda el form de edit
	st, _, _ := doForm(t, e.ts.URL, "POST", "/pets/"+id, url.Values{"_method": {"patch"}, "pet[name]": {"Woodstock"}})
	if st != http.StatusFound {
		t.Fatalf("expected 302 on overridden PATCH, got %d", st)
	}
	if got := e.rows(t)[0].Name; got != "Woodstock" {
		t.Fatalf("expected renamed pet, got %q", got)
	}

	// lo que manda el botón Delete
	st, _, _ = doForm(t, e.ts.URL, "POST", "/pets/"+id, url.Values{"_method": {"delete"}})
	if st != http.StatusSeeOther {
		t.Fatalf("expected 303 on overridden DELETE, got %d", st)
	}
}

// Multipart se lee igual con PATCH/PUT que con POST.
func TestHTTP_MultipartForms(t *testing.T) {
	e := newEnv(t)

	st, _, _ := doMultipart(t, e.ts.URL, "POST", "/pets", map[string]string{"pet[name]": "Snoopy", "pet[species]": "dog"})
	if st != http.StatusFound {
		t.Fatalf("expected 302 on multipart create, got %d", st)
	}
	id := e.rows(t)[0].ID

	st, _, body := doMultipart(t, e.ts.URL, "PATCH", "/pets/"+id, map[string]string{"pet[name]": ""})
	if st != http.StatusUnprocessableEntity || !strings.Contains(body, "Name can&#39;t be blank") {
		t.Fatalf("expected 422 on multipart PATCH with blank name, got %d", st)
	}
	if got := e.rows(t)[0].Name; got != "Snoopy" {
		t.Fatalf("row changed on invalid multipart update: %q", got)
	}

	st, _, _ = doMultipart(t, e.ts.URL, "PUT", "/pets/"+id, map[string]string{"pet[species]": "horse"})
	if st != http.StatusFound {
		t.Fatalf("expected 302 on multipart PUT, got %d", st)
	}
	if got := e.rows(t)[0].Species; got != pets.SpeciesHorse {
		t.Fatalf("expected species horse after multipart PUT, got %q", got)
	}
}

func TestHTTP_UnsupportedBody(t *testing.T) {
	e := newEnv(t)

	doForm(t, e.ts.URL, "POST", "/pets", url.Values{"pet[name]": {"Snoopy"}})
	id := e.rows(t)[0].ID

	for _, method := range []string{"POST", "PATCH"} {
		path := "/pets"
		if method == "PATCH" {
			path = "/pets/" + id
		}
		req, err := http.NewRequest(method, e.ts.URL+path, strings.NewReader(`{"pet":{"name":""}}`))
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")
		res, err := noRedirect.Do(req)
		if err != nil {
			t.Fatalf("do request: %v", err)
		}
		res.Body.Close()
		if res.StatusCode != http.StatusUnsupportedMediaType {
			t.Fatalf("expected 415 for %s json body, got %d", method, res.StatusCode)
		}
	}
	if n := len(e.rows(t)); n != 1 || e.rows(t)[0].Name != "Snoopy" {
		t.Fatalf("unsupported body changed the store: %+v", e.rows(t))
	}
}

func TestHTTP_NotFound(t *testing.T) {
	e := newEnv(t)

	for _, p := range []string{"/pets/missing", "/pets/missing/edit", "/nope"} {
		if st, _ := doGet(t, e.ts.URL, p); st != http.StatusNotFound {
			t.Fatalf("expected 404 for %s, got %d", p, st)
		}
	}
	if st, _, _ := doForm(t, e.ts.URL, "PATCH", "/pets/missing", url.Values{"pet[name]": {"x"}}); st != http.StatusNotFound {
		t.Fatalf("expected 404 updating missing pet, got %d", st)
	}
}

func TestHTTP_NewForm(t *testing.T) {
	e := newEnv(t)

	st, body := doGet(t, e.ts.URL, "/pets/new")
	if st != http.StatusOK {
		t.Fatalf("expected 200 new form, got %d", st)
	}
	for _, want := range []string{`name="pet[name]"`, `value="horse"`, `action="/pets"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("new form missing %s", want)
		}
	}
}

func TestHTTP_Health(t *testing.T) {
	e := newEnv(t)

	st, body := doGet(t, e.ts.URL, "/health")
	if st != http.StatusOK {
		t.Fatalf("expected 200 health, got %d", st)
	}
	var resp router.HealthResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if resp.Status != "ok" || resp.Store != "memory" {
		t.Fatalf("unexpected health: %+v", resp)
	}
}

func TestHTTP_SwaggerDoc(t *testing.T) {
	e := newEnv(t)

	st, body := doGet(t, e.ts.URL, "/swagger/doc.json")
	if st != http.StatusOK || !strings.Contains(body, `"/pets/{petID}"`) {
		t.Fatalf("expected swagger doc, got %d", st)
	}
}

var noRedirect = &http.Client{
	CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
}

func doGet(t *testing.T, baseURL, path string) (int, string) {
	t.Helper()
	st, _, body := do(t, baseURL, "GET", path, nil)
	return st, body
}

func doForm(t *testing.T, baseURL, method, path string, form url.Values) (int, string, string) {
	t.Helper()
	return do(t, baseURL, method, path, form)
}

func do(t *testing.T, baseURL, method, path string, form url.Values) (int, string, string) {
	t.Helper()

	if !strings.HasPrefix(path, "http") {
		path = baseURL + path
	}

	var rdr io.Reader
	if form != nil {
		rdr = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	res, err := noRedirect.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, res.Header.Get("Location"), string(b)
}

func doMultipart(t *testing.T, baseURL, method, path string, fields map[string]string) (int, string, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req, err := http.NewRequest(method, baseURL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := noRedirect.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, res.Header.Get("Location"), string(b)
}

func pathOf(t *testing.T, loc string) string {
	t.Helper()
	u, err := url.Parse(loc)
	if err != nil {
		t.Fatalf("parse location %q: %v", loc, err)
	}
	return u.Path
}
