// Package sfcore provides a client for the Salesforce Platform REST API
// (the "core" CRM API, as opposed to the Marketing Cloud surfaces).
//
// The client covers the narrow surface a CRM terminal needs: a one-time
// token exchange producing a Session, SOQL queries, and record
// create/update/delete on the supported sObject types (Account, Contact,
// Lead, Opportunity).
package sfcore

import (
	"github.com/natserract/sfcli/pkg/config"
	httpclient "github.com/natserract/sfcli/pkg/http"
	"go.uber.org/zap"
)

// Salesforce is the main client for interacting with the Salesforce REST API
type Salesforce struct {
	config     *config.Config
	httpClient *httpclient.Client
	auth       Authenticator
	session    *Session
	logger     *zap.Logger
}

// NewSalesforce creates a new Salesforce client with default production logger
func NewSalesforce(cfg *config.Config, auth Authenticator) *Salesforce {
	logger, _ := zap.NewProduction()
	return NewSalesforceWithLogger(cfg, auth, logger)
}

// NewSalesforceWithLogger creates a new Salesforce client with a custom logger
func NewSalesforceWithLogger(cfg *config.Config, auth Authenticator, logger *zap.Logger) *Salesforce {
	return &Salesforce{
		config:     cfg,
		httpClient: httpclient.NewClientWithLogger(logger),
		auth:       auth,
		logger:     logger,
	}
}

// Session returns the current session, or nil before Authenticate.
func (s *Salesforce) Session() *Session {
	return s.session
}
