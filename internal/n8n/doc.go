// Package n8n is a minimal client for the n8n public REST API.
//
// Only the two read endpoints needed for export are implemented:
//
//	GET /api/v1/workflows?limit=100[&cursor=...]
//	GET /api/v1/workflows/{id}
//
// Every request carries the X-N8N-API-KEY header. Non-2xx responses are
// returned as *errors.HTTPStatusError; transport failures are wrapped with
// the request path. Responses are parsed into record.Value so workflow key
// order survives the export.
//
// The HTTP client comes from github.com/hashicorp/go-cleanhttp, which avoids
// the shared http.DefaultTransport.
package n8n
