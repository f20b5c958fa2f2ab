package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopsync/backend/internal/domain/integration"
)

// Constants for the Verial webservice
const (
	// maxVerialResponseSize limits the response body size; the article
	// catalog is the largest payload and stays well under this.
	maxVerialResponseSize = 10 * 1024 * 1024 // 10MB max response

	// verialServicePath is the fixed path of the WCF service
	verialServicePath = "/WcfServiceLibraryVerial"

	// verialDateLayout is the date format the service expects
	verialDateLayout = "2006-01-02"

	// orderDocumentType is the non-fiscal order document type. Creating
	// an invoice type instead would consume fiscal numbering.
	orderDocumentType = 5

	// lineTypeArticle marks a document line as an article line
	lineTypeArticle = 1
)

// VerialClient talks to the Verial ERP webservice. It implements
// integration.ERPGateway. Failures are classified, never retried; retry
// policy belongs to the callers.
type VerialClient struct {
	config     *VerialConfig
	httpClient *http.Client
}

// NewVerialClient creates a client. An incomplete configuration is
// accepted; calls against it fail with ErrERPNotConfigured so the
// connector can run with the ERP leg disabled.
func NewVerialClient(config *VerialConfig) *VerialClient {
	timeout := 30
	if config != nil && config.TimeoutSeconds > 0 {
		timeout = config.TimeoutSeconds
	}
	return &VerialClient{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}
}

// IsConfigured reports whether credentials are present
func (c *VerialClient) IsConfigured() bool {
	return c.config.IsConfigured()
}

// TestConnection performs a country listing to verify connectivity
func (c *VerialClient) TestConnection(ctx context.Context) error {
	var resp verialCountriesResponse
	return c.doGet(ctx, "GetPaisesWS", "", &resp)
}

// ---------------------------------------------------------------------------
// Customers
// ---------------------------------------------------------------------------

// CreateCustomer creates a customer and returns its Verial ID
func (c *VerialClient) CreateCustomer(ctx context.Context, profile *integration.CustomerProfile) (int64, error) {
	countryID := profile.CountryID
	if countryID == 0 {
		countryID = 1 // Spain
	}
	req := verialNewCustomerRequest{
		Tipo:        int(profile.Type),
		NIF:         profile.TaxID,
		Nombre:      profile.FirstName,
		Apellido1:   profile.Surname1,
		Apellido2:   profile.Surname2,
		RazonSocial: profile.Company,
		IDPais:      countryID,
		Provincia:   profile.Province,
		Localidad:   profile.City,
		CPostal:     profile.PostalCode,
		Direccion:   profile.Address,
		Telefono:    profile.Phone,
		Email:       profile.Email,
		WebUser:     profile.Email,
	}

	var resp verialCustomersResponse
	if err := c.doPost(ctx, "NuevoClienteWS", &req, &req.Sesionwcf, c.config.Session, &resp); err != nil {
		return 0, err
	}
	if len(resp.Clientes) == 0 || resp.Clientes[0].ID == 0 {
		return 0, integration.ErrERPCustomerIDMissing
	}
	return resp.Clientes[0].ID, nil
}

// FindCustomerByTaxID looks a customer up by fiscal identifier
func (c *VerialClient) FindCustomerByTaxID(ctx context.Context, taxID string) (int64, error) {
	if taxID == "" {
		return 0, integration.ErrCustomerNotInERP
	}
	params := "&id_cliente=0&nif=" + url.QueryEscape(taxID)
	var resp verialCustomersResponse
	if err := c.doGet(ctx, "GetClientesWS", params, &resp); err != nil {
		return 0, err
	}
	if len(resp.Clientes) == 0 || resp.Clientes[0].ID == 0 {
		return 0, integration.ErrCustomerNotInERP
	}
	return resp.Clientes[0].ID, nil
}

// ---------------------------------------------------------------------------
// Order documents
// ---------------------------------------------------------------------------

// CreateOrder submits an order document. Web-shop orders use the online
// store session instead of the regular one.
func (c *VerialClient) CreateOrder(ctx context.Context, doc *integration.OrderDocument) (*integration.DocumentReceipt, error) {
	docType := doc.DocumentType
	if docType == 0 {
		docType = orderDocumentType
	}
	req := verialNewDocumentRequest{
		Tipo:                docType,
		Referencia:          doc.Reference,
		Fecha:               doc.Date.Format(verialDateLayout),
		IDCliente:           doc.CustomerID,
		PreciosImpIncluidos: doc.PricesTaxIncluded,
		BaseImponible:       doc.TaxBase.InexactFloat64(),
		TotalImporte:        doc.Total.InexactFloat64(),
		Comentario:          doc.Comment,
		Contenido:           make([]verialDocumentLine, 0, len(doc.Lines)),
	}
	for _, line := range doc.Lines {
		req.Contenido = append(req.Contenido, verialDocumentLine{
			TipoRegistro:  lineTypeArticle,
			IDArticulo:    line.ArticleID,
			Uds:           line.Units,
			Precio:        line.Price.InexactFloat64(),
			Dto:           line.DiscountPct.InexactFloat64(),
			PorcentajeIVA: line.VATRate.InexactFloat64(),
		})
	}
	for _, payment := range doc.Payments {
		req.Pagos = append(req.Pagos, verialDocumentPayment{
			IDMetodoPago: payment.MethodID,
			Fecha:        payment.Date.Format(verialDateLayout),
			Importe:      payment.Amount.InexactFloat64(),
		})
	}

	var resp verialNewDocumentResponse
	if err := c.doPost(ctx, "NuevoDocClienteWS", &req, &req.Sesionwcf, c.config.OnlineSession, &resp); err != nil {
		return nil, err
	}
	return &integration.DocumentReceipt{
		ID:        resp.ID,
		Reference: resp.Referencia,
		Number:    resp.Numero,
	}, nil
}

// ListOrderDocuments returns order documents created in a date range
func (c *VerialClient) ListOrderDocuments(ctx context.Context, from, to time.Time) ([]integration.DocumentSummary, error) {
	req := verialFindDocumentsRequest{
		Tipo:       orderDocumentType,
		FechaDesde: from.Format(verialDateLayout),
		FechaHasta: to.Format(verialDateLayout),
	}
	var resp verialFindDocumentsResponse
	if err := c.doPost(ctx, "BuscarDocClienteWS", &req, &req.Sesionwcf, c.config.Session, &resp); err != nil {
		return nil, err
	}
	docs := make([]integration.DocumentSummary, 0, len(resp.Documentos))
	for _, d := range resp.Documentos {
		date, _ := time.Parse(verialDateLayout, d.Fecha)
		docs = append(docs, integration.DocumentSummary{
			ID:        d.ID,
			Reference: d.Referencia,
			Number:    d.Numero,
			Date:      date,
			Total:     decimal.NewFromFloat(d.Total),
		})
	}
	return docs, nil
}

// ---------------------------------------------------------------------------
// Order status
// ---------------------------------------------------------------------------

// GetOrderStatuses looks up statuses for a batch of order IDs. Callers
// chunk at integration.StatusBatchLimit; larger batches are rejected.
func (c *VerialClient) GetOrderStatuses(ctx context.Context, orderIDs []int64) (map[int64]integration.ERPOrderStatus, error) {
	if len(orderIDs) > integration.StatusBatchLimit {
		return nil, fmt.Errorf("%w: status batch exceeds %d orders", integration.ErrERPRequestFailed, integration.StatusBatchLimit)
	}
	req := verialOrderStatusRequest{
		Pedidos: make([]verialOrderRef, 0, len(orderIDs)),
	}
	for _, id := range orderIDs {
		req.Pedidos = append(req.Pedidos, verialOrderRef{ID: id})
	}
	var resp verialOrderStatusResponse
	if err := c.doPost(ctx, "EstadoPedidosWS", &req, &req.Sesionwcf, c.config.Session, &resp); err != nil {
		return nil, err
	}
	statuses := make(map[int64]integration.ERPOrderStatus, len(resp.Pedidos))
	for _, p := range resp.Pedidos {
		statuses[p.ID] = integration.ERPOrderStatus(p.Estado)
	}
	return statuses, nil
}

// ---------------------------------------------------------------------------
// Catalog and stock
// ---------------------------------------------------------------------------

// ListArticles returns the full article catalog
func (c *VerialClient) ListArticles(ctx context.Context) ([]integration.Article, error) {
	var resp verialArticlesResponse
	if err := c.doGet(ctx, "GetArticulosWS", "", &resp); err != nil {
		return nil, err
	}
	articles := make([]integration.Article, 0, len(resp.Articulos))
	for _, a := range resp.Articulos {
		articles = append(articles, integration.Article{
			ID:      a.ID,
			Name:    a.Nombre,
			Barcode: a.Barras,
		})
	}
	return articles, nil
}

// ListStock returns current stock per article ID
func (c *VerialClient) ListStock(ctx context.Context) (map[int64]int, error) {
	var resp verialStockResponse
	if err := c.doGet(ctx, "GetStockArticulosWS", "&id_articulo=0", &resp); err != nil {
		return nil, err
	}
	stock := make(map[int64]int, len(resp.Stock))
	for _, s := range resp.Stock {
		if s.IDArticulo != 0 {
			stock[s.IDArticulo] = int(s.Stock)
		}
	}
	return stock, nil
}

// ---------------------------------------------------------------------------
// Transport
// ---------------------------------------------------------------------------

// endpointURL builds the service URL for an endpoint
func (c *VerialClient) endpointURL(endpoint string) string {
	return "http://" + c.config.Host + verialServicePath + "/" + endpoint
}

// doPost executes a POST call. The session token travels inside the JSON
// body; sessionField points at the request struct's Sesionwcf field so
// the caller can choose between the regular and the online session.
func (c *VerialClient) doPost(ctx context.Context, endpoint string, reqBody any, sessionField *int64, session int64, respDest any) error {
	if !c.IsConfigured() {
		return integration.ErrERPNotConfigured
	}
	*sessionField = session

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("verial: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL(endpoint), bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("verial: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.execute(req, respDest)
}

// doGet executes a GET call. The session token travels in the query
// string; extraParams must be empty or start with "&".
func (c *VerialClient) doGet(ctx context.Context, endpoint, extraParams string, respDest any) error {
	if !c.IsConfigured() {
		return integration.ErrERPNotConfigured
	}

	requestURL := c.endpointURL(endpoint) + "?x=" + strconv.FormatInt(c.config.Session, 10) + extraParams
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("verial: failed to create request: %w", err)
	}

	return c.execute(req, respDest)
}

// execute sends the request and classifies the outcome
func (c *VerialClient) execute(req *http.Request, respDest any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", integration.ErrERPUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxVerialResponseSize))
	if err != nil {
		return fmt.Errorf("verial: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: HTTP %d %s", integration.ErrERPRequestFailed, resp.StatusCode, resp.Status)
	}

	if err := json.Unmarshal(body, respDest); err != nil {
		return fmt.Errorf("%w: %v", integration.ErrERPInvalidResponse, err)
	}

	return checkInfoError(respDest)
}

// infoErrorCarrier is implemented by all typed responses
type infoErrorCarrier interface {
	infoError() verialInfoError
}

// infoError exposes the embedded error block
func (r verialBaseResponse) infoError() verialInfoError {
	return r.InfoError
}

// checkInfoError converts a non-zero embedded error code into a
// RejectionError carrying the remote description.
func checkInfoError(respDest any) error {
	carrier, ok := respDest.(infoErrorCarrier)
	if !ok {
		return nil
	}
	info := carrier.infoError()
	if info.Codigo == 0 {
		return nil
	}
	return integration.NewRejectionError(info.Codigo, info.Descripcion)
}

// Ensure VerialClient implements the gateway port
var _ integration.ERPGateway = (*VerialClient)(nil)
