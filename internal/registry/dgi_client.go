// Package registry talks to the DGI taxpayer registry gateway.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bancoriental/unipersonal-backend/config"
	"github.com/bancoriental/unipersonal-backend/pkg/logger"
	"github.com/bancoriental/unipersonal-backend/pkg/util"
)

// BusinessInformation is the registry's view of a taxpayer.
type BusinessInformation struct {
	Name                  string    `json:"name"`
	RUT                   string    `json:"rut"`
	CertificateExpiration time.Time `json:"certificate_expiration"`
	LegalAddress          string    `json:"legal_address"`
}

// Client fetches taxpayer data from the national registry.
type Client interface {
	GetBusinessInformation(ctx context.Context, rut string) (*BusinessInformation, error)
}

// HTTPClient is the gateway-backed implementation of Client.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a registry client from configuration.
func NewHTTPClient(cfg *config.DGIConfig) *HTTPClient {
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// taxpayerResponse mirrors the gateway payload. Dates arrive as yyyyMMdd.
type taxpayerResponse struct {
	RazonSocial            string `json:"razonSocial"`
	RUT                    string `json:"rut"`
	VencimientoCertificado string `json:"vencimientoCertificado"`
	DomicilioFiscal        string `json:"domicilioFiscal"`
}

// GetBusinessInformation fetches the taxpayer record for a RUT.
func (c *HTTPClient) GetBusinessInformation(ctx context.Context, rut string) (*BusinessInformation, error) {
	url := fmt.Sprintf("%s/contribuyentes/%s", c.baseURL, rut)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Error("DGI registry request failed", err, map[string]interface{}{
			"rut": rut,
		})
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("DGI registry returned status %d for rut %s", resp.StatusCode, rut)
	}

	var payload taxpayerResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode DGI registry response: %w", err)
	}

	expiration, err := util.ParseCompactDate(payload.VencimientoCertificado)
	if err != nil {
		return nil, fmt.Errorf("invalid certificate expiration %q: %w", payload.VencimientoCertificado, err)
	}

	return &BusinessInformation{
		Name:                  payload.RazonSocial,
		RUT:                   payload.RUT,
		CertificateExpiration: expiration,
		LegalAddress:          payload.DomicilioFiscal,
	}, nil
}
