package sfcore

import (
	"context"
	"encoding/json"
	"fmt"

	httpclient "github.com/natserract/sfcli/pkg/http"
	"go.uber.org/zap"
)

// Authenticate performs the one-time token exchange and pins the resulting
// session on the client. The session is read-only for the rest of the run.
func (s *Salesforce) Authenticate(ctx context.Context) (*Session, error) {
	session, err := s.auth.Authenticate(ctx)
	if err != nil {
		return nil, err
	}
	s.session = session
	return session, nil
}

// requireSession enforces the gateway invariant: no record API call without
// an established session.
func (s *Salesforce) requireSession() error {
	if s.session == nil {
		return &APIError{Kind: KindUnknown, Message: "not authenticated: call Authenticate first"}
	}
	return nil
}

func (s *Salesforce) authHeaders() map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", s.session.AccessToken),
	}
}

func (s *Salesforce) sobjectPath(objectType ObjectType, id string) string {
	path := fmt.Sprintf("/services/data/%s/sobjects/%s", s.config.APIVersion, objectType)
	if id != "" {
		path += "/" + id
	}
	return path
}

// Query runs a SOQL SELECT built from the field list and limit and returns
// the parsed rows. An empty result is an empty slice, not an error.
func (s *Salesforce) Query(ctx context.Context, objectType ObjectType, fields []string, limit int) ([]Record, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}

	soql := BuildQuery(objectType, fields, limit)
	s.logger.Info("Executing query",
		zap.String("object", objectType.String()),
		zap.String("soql", soql))

	endpoint, err := httpclient.BuildURL(
		s.session.InstanceURL,
		fmt.Sprintf("/services/data/%s/query", s.config.APIVersion),
		map[string]string{"q": soql},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build query URL: %w", err)
	}

	resp, err := s.httpClient.Get(ctx, endpoint, s.authHeaders())
	if err != nil {
		return nil, fmt.Errorf("query request failed: %w", err)
	}

	if resp.StatusCode != 200 {
		s.logger.Error("Query failed",
			zap.Int("status_code", resp.StatusCode),
			zap.String("object", objectType.String()))
		return nil, apiErrorFromResponse(resp.StatusCode, resp.Body)
	}

	var queryResp QueryResponse
	if err := json.Unmarshal(resp.Body, &queryResp); err != nil {
		return nil, fmt.Errorf("failed to parse query response: %w", err)
	}

	records := make([]Record, 0, len(queryResp.Records))
	for _, raw := range queryResp.Records {
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("failed to parse query record: %w", err)
		}
		delete(rec, "attributes")
		records = append(records, rec)
	}

	s.logger.Info("Query completed",
		zap.String("object", objectType.String()),
		zap.Int("total_size", queryResp.TotalSize),
		zap.Int("records", len(records)))

	return records, nil
}

// Create posts the field map and returns the new record ID.
func (s *Salesforce) Create(ctx context.Context, objectType ObjectType, fields map[string]string) (string, error) {
	if err := s.requireSession(); err != nil {
		return "", err
	}
	if len(fields) == 0 {
		return "", &APIError{Kind: KindValidation, Message: "no fields to create"}
	}

	endpoint, err := httpclient.JoinURL(s.session.InstanceURL, s.sobjectPath(objectType, ""))
	if err != nil {
		return "", fmt.Errorf("failed to build create URL: %w", err)
	}

	s.logger.Info("Creating record", zap.String("object", objectType.String()))

	resp, err := s.httpClient.Post(ctx, endpoint, s.authHeaders(), fields)
	if err != nil {
		return "", fmt.Errorf("create request failed: %w", err)
	}

	if resp.StatusCode != 201 {
		s.logger.Error("Create failed",
			zap.Int("status_code", resp.StatusCode),
			zap.String("object", objectType.String()))
		return "", apiErrorFromResponse(resp.StatusCode, resp.Body)
	}

	var result SaveResult
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return "", fmt.Errorf("failed to parse create response: %w", err)
	}

	s.logger.Info("Record created",
		zap.String("object", objectType.String()),
		zap.String("id", result.ID))

	return result.ID, nil
}

// Update patches the given record. Callers filter out blank fields before
// calling; an empty update is rejected locally.
func (s *Salesforce) Update(ctx context.Context, objectType ObjectType, id string, fields map[string]string) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	if id == "" {
		return &APIError{Kind: KindValidation, Message: "record id is required for update"}
	}
	if len(fields) == 0 {
		return &APIError{Kind: KindValidation, Message: "no fields to update"}
	}

	endpoint, err := httpclient.JoinURL(s.session.InstanceURL, s.sobjectPath(objectType, id))
	if err != nil {
		return fmt.Errorf("failed to build update URL: %w", err)
	}

	s.logger.Info("Updating record",
		zap.String("object", objectType.String()),
		zap.String("id", id))

	resp, err := s.httpClient.Patch(ctx, endpoint, s.authHeaders(), fields)
	if err != nil {
		return fmt.Errorf("update request failed: %w", err)
	}

	if resp.StatusCode != 204 && resp.StatusCode != 200 {
		s.logger.Error("Update failed",
			zap.Int("status_code", resp.StatusCode),
			zap.String("object", objectType.String()),
			zap.String("id", id))
		return apiErrorFromResponse(resp.StatusCode, resp.Body)
	}

	s.logger.Info("Record updated",
		zap.String("object", objectType.String()),
		zap.String("id", id))

	return nil
}

// Delete removes the given record. Deleting an already-deleted record
// reports a NotFound APIError rather than failing unexpectedly.
func (s *Salesforce) Delete(ctx context.Context, objectType ObjectType, id string) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	if id == "" {
		return &APIError{Kind: KindValidation, Message: "record id is required for delete"}
	}

	endpoint, err := httpclient.JoinURL(s.session.InstanceURL, s.sobjectPath(objectType, id))
	if err != nil {
		return fmt.Errorf("failed to build delete URL: %w", err)
	}

	s.logger.Info("Deleting record",
		zap.String("object", objectType.String()),
		zap.String("id", id))

	resp, err := s.httpClient.Delete(ctx, endpoint, s.authHeaders())
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}

	if resp.StatusCode != 204 && resp.StatusCode != 200 {
		s.logger.Error("Delete failed",
			zap.Int("status_code", resp.StatusCode),
			zap.String("object", objectType.String()),
			zap.String("id", id))
		return apiErrorFromResponse(resp.StatusCode, resp.Body)
	}

	s.logger.Info("Record deleted",
		zap.String("object", objectType.String()),
		zap.String("id", id))

	return nil
}
