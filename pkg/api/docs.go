// Package api provides the REST surface of MercuryBridge
// @title MercuryBridge API
// @version 1.0
// @description REST API for managing Mercury indexer subscriptions and reading account history
// @contact.name API Support
// @contact.url https://github.com/goran-ethernal/MercuryBridge
// @license.name Apache 2.0
// @license.url https://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @basePath /api/v1
// @schemes http https
package api
