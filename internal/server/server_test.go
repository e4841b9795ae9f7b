package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/legisverde/legisverde/internal/resolver"
	"github.com/legisverde/legisverde/internal/stats"
)

type fakeResolver struct {
	resp *resolver.Response
	last string
}

func (f *fakeResolver) Resolve(_ context.Context, question string) *resolver.Response {
	f.last = question
	return f.resp
}

type fakeStats struct {
	snap *stats.Snapshot
	err  error
}

func (f *fakeStats) Snapshot(context.Context) (*stats.Snapshot, error) { return f.snap, f.err }

func newTestServer(res *fakeResolver, st *fakeStats) *Server {
	if st == nil {
		st = &fakeStats{snap: &stats.Snapshot{}}
	}
	return New(Config{Port: 0, MaxInflight: 2}, res, st)
}

func TestConsultar(t *testing.T) {
	res := &fakeResolver{resp: &resolver.Response{
		Answer: "Lei nº 3.519:\n\nresposta",
		RelatedLaws: []resolver.RelatedLaw{
			{Title: "LEI Nº 3.519, DE 2019", Identifier: "3.519", Origin: "legislação"},
		},
	}}
	s := newTestServer(res, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/consultar", strings.NewReader(`{"pergunta":"o que diz a lei 3.519?"}`))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if res.last != "o que diz a lei 3.519?" {
		t.Errorf("resolver saw %q", res.last)
	}

	var body struct {
		Resposta string `json:"resposta"`
		Leis     []struct {
			Titulo string `json:"titulo"`
			Numero string `json:"numero"`
		} `json:"leis_relacionadas"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !strings.HasPrefix(body.Resposta, "Lei nº 3.519") {
		t.Errorf("resposta = %q", body.Resposta)
	}
	if len(body.Leis) != 1 || body.Leis[0].Numero != "3.519" {
		t.Errorf("leis_relacionadas = %+v", body.Leis)
	}
}

func TestConsultarAlwaysOKOnResolverDegradation(t *testing.T) {
	// A degraded answer is still a 200: the failure travels in the body.
	res := &fakeResolver{resp: &resolver.Response{
		Answer:      "Desculpe, ocorreu um erro ao processar sua consulta.",
		RelatedLaws: []resolver.RelatedLaw{},
	}}
	s := newTestServer(res, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/consultar", strings.NewReader(`{"pergunta":"qualquer coisa"}`))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("degraded answers must still be 200, got %d", rec.Code)
	}
}

func TestConsultarRejectsBadBody(t *testing.T) {
	s := newTestServer(&fakeResolver{resp: &resolver.Response{}}, nil)

	for _, body := range []string{`{`, `{}`, `{"pergunta":"  "}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/consultar", strings.NewReader(body))
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestEstatisticas(t *testing.T) {
	st := &fakeStats{snap: &stats.Snapshot{
		Instruments: 42,
		Chunks:      812,
		YearMin:     1990,
		YearMax:     2024,
		ByType:      map[string]int{"lei": 30},
	}}
	s := newTestServer(&fakeResolver{resp: &resolver.Response{}}, st)

	req := httptest.NewRequest(http.MethodGet, "/api/estatisticas", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["instrumentos"].(float64) != 42 || body["trechos"].(float64) != 812 {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(&fakeResolver{resp: &resolver.Response{}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
