// Package api serves the askdocs HTTP API with echo.
//
// Routes:
//   - POST   /api/upload                  upload a file or add a URL
//   - GET    /api/upload/documents        list documents
//   - DELETE /api/upload/documents/:id    delete a document
//   - POST   /api/query                   ask a question
//   - GET    /api/history                 answered questions and stats
//   - DELETE /api/history                 clear the history
//   - GET    /health                      liveness and corpus size
//   - GET    /metrics                     Prometheus metrics
//
// Errors are returned as {"error": "..."}.
package api
