package erp

// Wire types for the Verial webservice. Field names follow the remote
// schema exactly; the service rejects unknown casing.

// verialInfoError is the error block embedded in every response.
// Codigo 0 means success; anything else carries a description.
type verialInfoError struct {
	Codigo      int    `json:"Codigo"`
	Descripcion string `json:"Descripcion"`
}

// verialBaseResponse is embedded in all typed responses
type verialBaseResponse struct {
	InfoError verialInfoError `json:"InfoError"`
}

// ---------------------------------------------------------------------------
// Customers
// ---------------------------------------------------------------------------

// verialNewCustomerRequest creates or updates a customer (NuevoClienteWS)
type verialNewCustomerRequest struct {
	Sesionwcf   int64  `json:"sesionwcf"`
	Tipo        int    `json:"Tipo"`
	NIF         string `json:"NIF"`
	Nombre      string `json:"Nombre"`
	Apellido1   string `json:"Apellido1"`
	Apellido2   string `json:"Apellido2"`
	RazonSocial string `json:"RazonSocial"`
	IDPais      int    `json:"ID_Pais"`
	Provincia   string `json:"Provincia"`
	Localidad   string `json:"Localidad"`
	CPostal     string `json:"CPostal"`
	Direccion   string `json:"Direccion"`
	Telefono    string `json:"Telefono"`
	Email       string `json:"Email"`
	WebUser     string `json:"WebUser"`
}

// verialCustomer is a customer record in list responses
type verialCustomer struct {
	ID  int64  `json:"Id"`
	NIF string `json:"NIF"`
}

// verialCustomersResponse is the response of NuevoClienteWS and GetClientesWS
type verialCustomersResponse struct {
	verialBaseResponse
	Clientes []verialCustomer `json:"Clientes"`
}

// ---------------------------------------------------------------------------
// Order documents
// ---------------------------------------------------------------------------

// verialDocumentLine is one line of a customer document
type verialDocumentLine struct {
	TipoRegistro  int     `json:"TipoRegistro"`
	IDArticulo    int64   `json:"ID_Articulo"`
	Uds           int     `json:"Uds"`
	Precio        float64 `json:"Precio"`
	Dto           float64 `json:"Dto"`
	PorcentajeIVA float64 `json:"PorcentajeIVA"`
}

// verialDocumentPayment is one payment attached to a document
type verialDocumentPayment struct {
	IDMetodoPago int     `json:"ID_MetodoPago"`
	Fecha        string  `json:"Fecha"`
	Importe      float64 `json:"Importe"`
}

// verialNewDocumentRequest creates a customer document (NuevoDocClienteWS)
type verialNewDocumentRequest struct {
	Sesionwcf           int64                   `json:"sesionwcf"`
	Tipo                int                     `json:"Tipo"`
	Referencia          string                  `json:"Referencia"`
	Fecha               string                  `json:"Fecha"`
	IDCliente           int64                   `json:"ID_Cliente"`
	PreciosImpIncluidos bool                    `json:"PreciosImpIncluidos"`
	BaseImponible       float64                 `json:"BaseImponible"`
	TotalImporte        float64                 `json:"TotalImporte"`
	Comentario          string                  `json:"Comentario"`
	Contenido           []verialDocumentLine    `json:"Contenido"`
	Pagos               []verialDocumentPayment `json:"Pagos,omitempty"`
}

// verialNewDocumentResponse is the response of NuevoDocClienteWS
type verialNewDocumentResponse struct {
	verialBaseResponse
	ID         int64  `json:"Id"`
	Referencia string `json:"Referencia"`
	Numero     string `json:"Numero"`
}

// verialFindDocumentsRequest lists documents in a date range (BuscarDocClienteWS)
type verialFindDocumentsRequest struct {
	Sesionwcf  int64  `json:"sesionwcf"`
	Tipo       int    `json:"Tipo"`
	FechaDesde string `json:"FechaDesde"`
	FechaHasta string `json:"FechaHasta"`
}

// verialDocumentSummary is a document in list responses
type verialDocumentSummary struct {
	ID         int64   `json:"Id"`
	Referencia string  `json:"Referencia"`
	Numero     string  `json:"Numero"`
	Fecha      string  `json:"Fecha"`
	Total      float64 `json:"TotalImporte"`
}

// verialFindDocumentsResponse is the response of BuscarDocClienteWS
type verialFindDocumentsResponse struct {
	verialBaseResponse
	Documentos []verialDocumentSummary `json:"Documentos"`
}

// ---------------------------------------------------------------------------
// Order status
// ---------------------------------------------------------------------------

// verialOrderRef identifies one order in a status lookup
type verialOrderRef struct {
	ID int64 `json:"Id"`
}

// verialOrderStatusRequest queries statuses for a batch of orders (EstadoPedidosWS)
type verialOrderStatusRequest struct {
	Sesionwcf int64            `json:"sesionwcf"`
	Pedidos   []verialOrderRef `json:"Pedidos"`
}

// verialOrderStatus is one entry of a status response
type verialOrderStatus struct {
	ID     int64 `json:"Id"`
	Estado int   `json:"Estado"`
}

// verialOrderStatusResponse is the response of EstadoPedidosWS
type verialOrderStatusResponse struct {
	verialBaseResponse
	Pedidos []verialOrderStatus `json:"Pedidos"`
}

// ---------------------------------------------------------------------------
// Catalog and stock
// ---------------------------------------------------------------------------

// verialArticle is an article of the catalog (GetArticulosWS)
type verialArticle struct {
	ID     int64  `json:"Id"`
	Nombre string `json:"Nombre"`
	Barras string `json:"Barras"`
}

// verialArticlesResponse is the response of GetArticulosWS
type verialArticlesResponse struct {
	verialBaseResponse
	Articulos []verialArticle `json:"Articulos"`
}

// verialStockEntry is a stock level of one article (GetStockArticulosWS)
type verialStockEntry struct {
	IDArticulo int64   `json:"ID_Articulo"`
	Stock      float64 `json:"Stock"`
}

// verialStockResponse is the response of GetStockArticulosWS
type verialStockResponse struct {
	verialBaseResponse
	Stock []verialStockEntry `json:"Stock"`
}

// verialCountriesResponse is the response of GetPaisesWS, used only to
// verify connectivity.
type verialCountriesResponse struct {
	verialBaseResponse
	Paises []struct {
		ID     int64  `json:"Id"`
		Nombre string `json:"Nombre"`
	} `json:"Paises"`
}
