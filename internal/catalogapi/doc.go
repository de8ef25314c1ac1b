// Package catalogapi provides an HTTP client for the product catalog service.
//
// # Overview
//
// The catalog service aggregates electronics products scraped from several retail
// stores. shelfscan never scrapes anything itself: it reads the aggregated catalog
// and asks the service to re-scrape when the user requests a refresh.
//
// # Architecture
//
//   - client.go: HTTP client, request execution and error wrapping
//   - types.go: Product and scrape status payloads
//   - errors.go: NetworkError, the single error kind returned by the client
//
// # Client Usage
//
//	client, err := catalogapi.NewClient("127.0.0.1:8000", 10*time.Second)
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	products, err := client.FetchProducts(ctx)
//	if err != nil {
//		log.Printf("catalog fetch failed: %v", err)
//	}
//
// # API Endpoints
//
//   - GET /api/products: the full catalog as a JSON array of products
//   - POST /api/scrape: starts a background scrape; any 2xx is an acknowledgement
//   - GET /api/scrape/status: {status, message, products_count} of the scrape job
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json and User-Agent: shelfscan/<version>
//   - Carry X-Request-ID when the caller supplies a run id (scrape requests)
//
// # Error Handling
//
// Every failure (transport, non-2xx status, undecodable body) is returned as a
// *NetworkError carrying the operation, the request path and the HTTP status when
// one was received. Callers that only care about success can treat the error as
// opaque; the refresh workflow uses IsNotFound to detect services without a status
// endpoint.
//
// Example error messages:
//   - "fetch products: execute request: dial tcp: connection refused"
//   - "trigger scrape: api /api/scrape returned status 500"
//   - "fetch products: decode response: unexpected EOF"
//
// # URL Construction
//
//   - "127.0.0.1:8000" → http://127.0.0.1:8000
//   - "http://catalog.lan:8080/ignored" → http://catalog.lan:8080
//
// # Thread Safety
//
// Client is safe for concurrent use.
package catalogapi
