// Package api serves the layout engine over HTTP.
//
// Every endpoint takes and returns JSON. The stateless endpoints carry the
// whole family snapshot in the request body; the family endpoints read it
// from the runner's [store.Store].
//
//	POST /v1/layout                  {rootId, people, marriages, orientation, geometry, scope}
//	POST /v1/lineage                 {personId, people, marriages}
//	POST /v1/filter                  {rootId, people, marriages}
//	POST /v1/ancestor                {personId, marriages}
//	POST /v1/hidden                  {people, marriages}
//	GET  /v1/families                list stored family ids
//	GET  /v1/families/{id}/layout    ?root=&orientation=&scope=&format=
//	GET  /healthz
//
// Errors are written as {"code": "...", "message": "..."} with the status
// derived from the error code: INVALID_* maps to 400, the NOT_FOUND codes
// to 404, UNSUPPORTED to 501 and everything else to 500.
package api
