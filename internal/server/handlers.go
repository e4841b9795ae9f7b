package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

type consultarRequest struct {
	Pergunta string `json:"pergunta"`
}

// handleConsultar resolves one question. The resolver owns all failure
// handling, so this endpoint answers 200 with a diagnostic payload even
// when retrieval or synthesis failed; only a malformed request body
// earns a 400.
func (s *Server) handleConsultar(w http.ResponseWriter, r *http.Request) {
	var req consultarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "corpo da requisição inválido: esperado {\"pergunta\": \"...\"}")
		return
	}
	if strings.TrimSpace(req.Pergunta) == "" {
		writeError(w, http.StatusBadRequest, "o campo \"pergunta\" é obrigatório")
		return
	}

	resp := s.resolver.Resolve(r.Context(), req.Pergunta)
	writeJSON(w, http.StatusOK, resp)
}

// handleEstatisticas reports corpus statistics.
func (s *Server) handleEstatisticas(w http.ResponseWriter, r *http.Request) {
	snap, err := s.stats.Snapshot(r.Context())
	if err != nil {
		log.Printf("server: estatísticas indisponíveis: %v", err)
		writeError(w, http.StatusInternalServerError, "estatísticas indisponíveis")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"instrumentos": snap.Instruments,
		"trechos":      snap.Chunks,
		"ano_inicial":  snap.YearMin,
		"ano_final":    snap.YearMax,
		"por_tipo":     snap.ByType,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: falha ao serializar resposta: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"erro": message})
}
