// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"errors"

	"github.com/velodrive/platform-api/internal/logging"
)

var errNoEndpoint = errors.New("no otel exporter endpoint configured")

type Config struct {
	OtelHTTPEndpoint string
	OtelGRPCEndpoint string
	Logger           logging.LoggerInterface

	Enabled bool
}

func NewConfig(enabled bool, otelGRPCEndpoint, otelHTTPEndpoint string, logger logging.LoggerInterface) *Config {
	c := new(Config)

	c.OtelGRPCEndpoint = otelGRPCEndpoint
	c.OtelHTTPEndpoint = otelHTTPEndpoint
	c.Logger = logger
	c.Enabled = enabled

	return c
}

func NewNoopConfig() *Config {
	c := new(Config)
	c.Enabled = false
	return c
}
