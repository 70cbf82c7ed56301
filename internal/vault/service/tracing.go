package service

import "github.com/aussiebroadwan/accountvault/pkg/otelx"

var tracer = otelx.Tracer("github.com/aussiebroadwan/accountvault/internal/vault/service")
