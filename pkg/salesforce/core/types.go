package sfcore

import "encoding/json"

// Session is the product of a successful token exchange. It is created once
// per run and read-only afterwards.
type Session struct {
	AccessToken string
	InstanceURL string
}

// AuthResponse represents the OAuth token response
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	InstanceURL string `json:"instance_url"`
	ID          string `json:"id"`
	TokenType   string `json:"token_type"`
	IssuedAt    string `json:"issued_at"`
	Signature   string `json:"signature"`
}

// oauthErrorBody is the token endpoint's error envelope.
type oauthErrorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Record is one row returned by the query endpoint: field name to scalar
// value. The Salesforce "attributes" envelope key is stripped during parsing.
type Record map[string]interface{}

// QueryResponse represents the query endpoint result envelope
type QueryResponse struct {
	TotalSize int               `json:"totalSize"`
	Done      bool              `json:"done"`
	Records   []json.RawMessage `json:"records"`
}

// SaveResult is the response to a successful sobject create
type SaveResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}

// restError is one element of the REST API error array
// [{"message": "...", "errorCode": "NOT_FOUND"}].
type restError struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
}
