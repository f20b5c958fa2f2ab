package erp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsync/backend/internal/domain/integration"
)

// ---------------------------------------------------------------------------
// Config Tests
// ---------------------------------------------------------------------------

func TestVerialConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *VerialConfig
		wantErr error
	}{
		{
			name: "valid config",
			config: &VerialConfig{
				Host:    "erp.example.com",
				Session: 18,
			},
			wantErr: nil,
		},
		{
			name: "missing host",
			config: &VerialConfig{
				Session: 18,
			},
			wantErr: ErrVerialConfigMissingHost,
		},
		{
			name: "missing session",
			config: &VerialConfig{
				Host: "erp.example.com",
			},
			wantErr: ErrVerialConfigMissingSession,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				// Check defaults are set
				assert.True(t, tt.config.TimeoutSeconds > 0)
				assert.Equal(t, tt.config.Session, tt.config.OnlineSession)
			}
		})
	}
}

func TestVerialConfig_IsConfigured(t *testing.T) {
	assert.False(t, (*VerialConfig)(nil).IsConfigured())
	assert.False(t, (&VerialConfig{Host: "erp.example.com"}).IsConfigured())
	assert.False(t, (&VerialConfig{Session: 18}).IsConfigured())
	assert.True(t, (&VerialConfig{Host: "erp.example.com", Session: 18}).IsConfigured())
}

func TestNewVerialConfig(t *testing.T) {
	config := NewVerialConfig("erp.example.com", 18, 27)
	assert.Equal(t, "erp.example.com", config.Host)
	assert.Equal(t, int64(18), config.Session)
	assert.Equal(t, int64(27), config.OnlineSession)
	assert.Equal(t, 30, config.TimeoutSeconds)
}

// ---------------------------------------------------------------------------
// Client Tests
// ---------------------------------------------------------------------------

func TestVerialClient_NotConfigured(t *testing.T) {
	client := NewVerialClient(&VerialConfig{})

	err := client.TestConnection(context.Background())
	assert.ErrorIs(t, err, integration.ErrERPNotConfigured)

	_, err = client.ListStock(context.Background())
	assert.ErrorIs(t, err, integration.ErrERPNotConfigured)

	_, err = client.CreateOrder(context.Background(), &integration.OrderDocument{})
	assert.ErrorIs(t, err, integration.ErrERPNotConfigured)
}

func TestVerialClient_CreateCustomer(t *testing.T) {
	t.Run("successful create", func(t *testing.T) {
		var gotPath string
		var gotBody verialNewCustomerRequest
		server := createMockVerialServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			json.NewEncoder(w).Encode(verialCustomersResponse{
				Clientes: []verialCustomer{{ID: 4410, NIF: "12345678Z"}},
			})
		})
		defer server.Close()

		client := createTestVerialClient(t, server.URL)

		id, err := client.CreateCustomer(context.Background(), &integration.CustomerProfile{
			Type:      integration.CustomerTypeIndividual,
			TaxID:     "12345678Z",
			FirstName: "María",
			Surname1:  "García",
			Surname2:  "López",
			Email:     "maria@example.com",
			Phone:     "600111222",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(4410), id)

		assert.Equal(t, "/WcfServiceLibraryVerial/NuevoClienteWS", gotPath)
		assert.Equal(t, int64(18), gotBody.Sesionwcf)
		assert.Equal(t, 1, gotBody.Tipo)
		assert.Equal(t, "María", gotBody.Nombre)
		assert.Equal(t, "García", gotBody.Apellido1)
		assert.Equal(t, "López", gotBody.Apellido2)
		assert.Equal(t, 1, gotBody.IDPais) // Spain by default
		assert.Equal(t, "maria@example.com", gotBody.WebUser)
	})

	t.Run("no customer ID in response", func(t *testing.T) {
		server := createMockVerialServer(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(verialCustomersResponse{})
		})
		defer server.Close()

		client := createTestVerialClient(t, server.URL)

		_, err := client.CreateCustomer(context.Background(), &integration.CustomerProfile{
			Type:      integration.CustomerTypeIndividual,
			FirstName: "María",
		})
		assert.ErrorIs(t, err, integration.ErrERPCustomerIDMissing)
	})

	t.Run("rejection", func(t *testing.T) {
		server := createMockVerialServer(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(verialCustomersResponse{
				verialBaseResponse: verialBaseResponse{
					InfoError: verialInfoError{Codigo: 12, Descripcion: "NIF no válido"},
				},
			})
		})
		defer server.Close()

		client := createTestVerialClient(t, server.URL)

		_, err := client.CreateCustomer(context.Background(), &integration.CustomerProfile{
			Type:  integration.CustomerTypeIndividual,
			TaxID: "bogus",
		})
		var rejection *integration.RejectionError
		require.ErrorAs(t, err, &rejection)
		assert.Equal(t, 12, rejection.Code)
		assert.Contains(t, rejection.Description, "NIF no válido")
	})
}

func TestVerialClient_FindCustomerByTaxID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		var gotQuery string
		server := createMockVerialServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			json.NewEncoder(w).Encode(verialCustomersResponse{
				Clientes: []verialCustomer{{ID: 7001, NIF: "12345678Z"}},
			})
		})
		defer server.Close()

		client := createTestVerialClient(t, server.URL)

		id, err := client.FindCustomerByTaxID(context.Background(), "12345678Z")
		require.NoError(t, err)
		assert.Equal(t, int64(7001), id)
		assert.Contains(t, gotQuery, "x=18")
		assert.Contains(t, gotQuery, "nif=12345678Z")
	})

	t.Run("not found", func(t *testing.T) {
		server := createMockVerialServer(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(verialCustomersResponse{})
		})
		defer server.Close()

		client := createTestVerialClient(t, server.URL)

		_, err := client.FindCustomerByTaxID(context.Background(), "99999999R")
		assert.ErrorIs(t, err, integration.ErrCustomerNotInERP)
	})

	t.Run("empty tax ID skips the call", func(t *testing.T) {
		client := createTestVerialClient(t, "http://127.0.0.1:1")
		_, err := client.FindCustomerByTaxID(context.Background(), "")
		assert.ErrorIs(t, err, integration.ErrCustomerNotInERP)
	})
}

func TestVerialClient_CreateOrder(t *testing.T) {
	doc := &integration.OrderDocument{
		Reference:         "S6543210987",
		Date:              time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		CustomerID:        4410,
		PricesTaxIncluded: true,
		TaxBase:           decimal.NewFromFloat(49.57),
		Total:             decimal.NewFromFloat(59.98),
		Comment:           "Pedido web #1001",
		Lines: []integration.DocumentLine{
			{
				ArticleID:   301,
				Units:       2,
				Price:       decimal.NewFromFloat(29.99),
				DiscountPct: decimal.Zero,
				VATRate:     decimal.NewFromInt(21),
			},
		},
		Payments: []integration.DocumentPayment{
			{MethodID: 1, Date: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC), Amount: decimal.NewFromFloat(59.98)},
		},
	}

	t.Run("successful create", func(t *testing.T) {
		var gotBody verialNewDocumentRequest
		server := createMockVerialServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			json.NewEncoder(w).Encode(verialNewDocumentResponse{
				ID:         90210,
				Referencia: "S6543210987",
				Numero:     "P-2026-0412",
			})
		})
		defer server.Close()

		client := createTestVerialClient(t, server.URL)

		receipt, err := client.CreateOrder(context.Background(), doc)
		require.NoError(t, err)
		assert.Equal(t, int64(90210), receipt.ID)
		assert.Equal(t, "S6543210987", receipt.Reference)
		assert.Equal(t, "P-2026-0412", receipt.Number)

		// The online session is used for order creation
		assert.Equal(t, int64(27), gotBody.Sesionwcf)
		assert.Equal(t, orderDocumentType, gotBody.Tipo)
		assert.Equal(t, "2026-03-14", gotBody.Fecha)
		assert.True(t, gotBody.PreciosImpIncluidos)
		assert.InDelta(t, 49.57, gotBody.BaseImponible, 0.001)
		assert.InDelta(t, 59.98, gotBody.TotalImporte, 0.001)
		require.Len(t, gotBody.Contenido, 1)
		assert.Equal(t, lineTypeArticle, gotBody.Contenido[0].TipoRegistro)
		assert.Equal(t, int64(301), gotBody.Contenido[0].IDArticulo)
		assert.Equal(t, 2, gotBody.Contenido[0].Uds)
		assert.InDelta(t, 29.99, gotBody.Contenido[0].Precio, 0.001)
		assert.InDelta(t, 21, gotBody.Contenido[0].PorcentajeIVA, 0.001)
		require.Len(t, gotBody.Pagos, 1)
		assert.InDelta(t, 59.98, gotBody.Pagos[0].Importe, 0.001)
	})

	t.Run("duplicate reference rejection", func(t *testing.T) {
		server := createMockVerialServer(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(verialNewDocumentResponse{
				verialBaseResponse: verialBaseResponse{
					InfoError: verialInfoError{
						Codigo:      8,
						Descripcion: "Ya existe un documento con la misma referencia",
					},
				},
			})
		})
		defer server.Close()

		client := createTestVerialClient(t, server.URL)

		receipt, err := client.CreateOrder(context.Background(), doc)
		assert.Nil(t, receipt)
		var rejection *integration.RejectionError
		require.ErrorAs(t, err, &rejection)
		assert.Contains(t, strings.ToLower(rejection.Description), "misma referencia")
	})
}

func TestVerialClient_GetOrderStatuses(t *testing.T) {
	t.Run("successful lookup", func(t *testing.T) {
		var gotBody verialOrderStatusRequest
		server := createMockVerialServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			json.NewEncoder(w).Encode(verialOrderStatusResponse{
				Pedidos: []verialOrderStatus{
					{ID: 90210, Estado: 1},
					{ID: 90211, Estado: 4},
				},
			})
		})
		defer server.Close()

		client := createTestVerialClient(t, server.URL)

		statuses, err := client.GetOrderStatuses(context.Background(), []int64{90210, 90211})
		require.NoError(t, err)
		assert.Len(t, gotBody.Pedidos, 2)
		assert.Equal(t, integration.ERPOrderStatusReceived, statuses[90210])
		assert.Equal(t, integration.ERPOrderStatusShipped, statuses[90211])
	})

	t.Run("batch too large", func(t *testing.T) {
		client := createTestVerialClient(t, "http://127.0.0.1:1")

		ids := make([]int64, integration.StatusBatchLimit+1)
		_, err := client.GetOrderStatuses(context.Background(), ids)
		assert.ErrorIs(t, err, integration.ErrERPRequestFailed)
	})
}

func TestVerialClient_ListArticles(t *testing.T) {
	server := createMockVerialServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(verialArticlesResponse{
			Articulos: []verialArticle{
				{ID: 301, Nombre: "Camiseta básica", Barras: "8412345678901"},
				{ID: 302, Nombre: "Sudadera", Barras: ""},
			},
		})
	})
	defer server.Close()

	client := createTestVerialClient(t, server.URL)

	articles, err := client.ListArticles(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, int64(301), articles[0].ID)
	assert.Equal(t, "Camiseta básica", articles[0].Name)
	assert.Equal(t, "8412345678901", articles[0].Barcode)
	assert.Empty(t, articles[1].Barcode)
}

func TestVerialClient_ListStock(t *testing.T) {
	server := createMockVerialServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(verialStockResponse{
			Stock: []verialStockEntry{
				{IDArticulo: 301, Stock: 14},
				{IDArticulo: 302, Stock: 0},
				{IDArticulo: 0, Stock: 7}, // malformed entry, skipped
			},
		})
	})
	defer server.Close()

	client := createTestVerialClient(t, server.URL)

	stock, err := client.ListStock(context.Background())
	require.NoError(t, err)
	assert.Len(t, stock, 2)
	assert.Equal(t, 14, stock[301])
	assert.Equal(t, 0, stock[302])
}

func TestVerialClient_ListOrderDocuments(t *testing.T) {
	server := createMockVerialServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req verialFindDocumentsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, orderDocumentType, req.Tipo)
		assert.Equal(t, "2026-03-01", req.FechaDesde)
		assert.Equal(t, "2026-03-14", req.FechaHasta)
		json.NewEncoder(w).Encode(verialFindDocumentsResponse{
			Documentos: []verialDocumentSummary{
				{ID: 90210, Referencia: "S6543210987", Numero: "P-2026-0412", Fecha: "2026-03-14", Total: 59.98},
			},
		})
	})
	defer server.Close()

	client := createTestVerialClient(t, server.URL)

	docs, err := client.ListOrderDocuments(
		context.Background(),
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "S6543210987", docs[0].Reference)
	assert.Equal(t, 14, docs[0].Date.Day())
	assert.True(t, docs[0].Total.Equal(decimal.NewFromFloat(59.98)))
}

// ---------------------------------------------------------------------------
// Error Classification Tests
// ---------------------------------------------------------------------------

func TestVerialClient_ErrorClassification(t *testing.T) {
	t.Run("HTTP error", func(t *testing.T) {
		server := createMockVerialServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		defer server.Close()

		client := createTestVerialClient(t, server.URL)
		err := client.TestConnection(context.Background())
		assert.ErrorIs(t, err, integration.ErrERPRequestFailed)
	})

	t.Run("non-JSON body", func(t *testing.T) {
		server := createMockVerialServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>gateway timeout</html>"))
		})
		defer server.Close()

		client := createTestVerialClient(t, server.URL)
		err := client.TestConnection(context.Background())
		assert.ErrorIs(t, err, integration.ErrERPInvalidResponse)
	})

	t.Run("unreachable host", func(t *testing.T) {
		client := createTestVerialClient(t, "http://127.0.0.1:1")
		err := client.TestConnection(context.Background())
		assert.ErrorIs(t, err, integration.ErrERPUnavailable)
	})
}

// ---------------------------------------------------------------------------
// Helper Functions
// ---------------------------------------------------------------------------

func createTestVerialClient(t *testing.T, serverURL string) *VerialClient {
	config := &VerialConfig{
		Host:           strings.TrimPrefix(serverURL, "http://"),
		Session:        18,
		OnlineSession:  27,
		TimeoutSeconds: 5,
	}
	require.NoError(t, config.Validate())
	return NewVerialClient(config)
}

func createMockVerialServer(_ *testing.T, handler http.HandlerFunc) *httptest.Server {
	return httptest.NewServer(handler)
}
