package api

import (
	"apidocs/internal/apidoc"
	"apidocs/internal/config"
	"apidocs/internal/metrics"
)

type server struct {
	cfg     config.Config
	doc     *apidoc.Document
	metrics *metrics.Metrics
}
