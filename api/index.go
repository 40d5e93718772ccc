// Package handler is the serverless entry point. The container starts once per
// cold boot, so the dependency graph is built on the first request and reused.
package handler

import (
	"farmstay/config"
	"farmstay/di"
	"farmstay/shared/logger"
	"farmstay/transport/http"
	nethttp "net/http"
	"sync"
)

var (
	once   sync.Once
	server *http.HTTP
)

func boot() {
	logger.InitLogger()
	logger.SetLogLevel(config.Get())

	server = di.InitializeService()
}

func Handler(w nethttp.ResponseWriter, r *nethttp.Request) {
	once.Do(boot)

	r.RequestURI = r.URL.String()
	server.ServeHTTP(w, r)
}
