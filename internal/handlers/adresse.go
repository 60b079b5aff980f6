package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/diewo77/bougeotte/internal/httpx"
)

// AdresseHandler proxies the BAN geocoder (api-adresse.data.gouv.fr) so the
// browser never talks to it cross-origin. Lookups are best-effort: any
// upstream problem comes back as an empty feature list.
type AdresseHandler struct {
	baseURL string
	client  *http.Client
}

func NewAdresseHandler(baseURL string) *AdresseHandler {
	return &AdresseHandler{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 3 * time.Second},
	}
}

type adresseFeature struct {
	Properties struct {
		Label    string `json:"label"`
		City     string `json:"city"`
		Postcode string `json:"postcode"`
	} `json:"properties"`
}

type adresseResponse struct {
	Features []adresseFeature `json:"features"`
}

// Search: GET /api/adresse?q= – address suggestions for the form inputs.
// Queries under 3 characters are not forwarded upstream.
func (h *AdresseHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if len([]rune(q)) < 3 {
		httpx.JSON(w, http.StatusOK, adresseResponse{Features: []adresseFeature{}})
		return
	}

	u := h.baseURL + "?q=" + url.QueryEscape(q) + "&limit=5"
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, u, nil)
	if err != nil {
		httpx.JSON(w, http.StatusOK, adresseResponse{Features: []adresseFeature{}})
		return
	}
	resp, err := h.client.Do(req)
	if err != nil {
		log.Printf("adresse lookup failed: %v", err)
		httpx.JSON(w, http.StatusOK, adresseResponse{Features: []adresseFeature{}})
		return
	}
	defer resp.Body.Close()

	var out adresseResponse
	if resp.StatusCode != http.StatusOK || json.NewDecoder(resp.Body).Decode(&out) != nil {
		out = adresseResponse{}
	}
	if out.Features == nil {
		out.Features = []adresseFeature{}
	}
	httpx.JSON(w, http.StatusOK, out)
}
