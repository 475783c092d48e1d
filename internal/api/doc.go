// Package api serves the catalogue over HTTP. The route table in routes.go
// names every endpoint and the middleware group it runs behind; Mount wires
// it onto a chi router. Resource handlers answer browser and Inertia clients
// with page components and redirects, and JSON clients with JSON.
package api
