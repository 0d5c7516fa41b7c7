package reflection

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ubloom/engine/internal/config"
)

var (
	ErrServiceUnavailable = errors.New("reflection service unavailable")
	ErrInvalidReflection  = errors.New("reflection service returned an invalid payload")
)

// Provider is the client of the external AI reflection service. A failed
// call never touches engine state; callers surface it as an advisory.
type Provider interface {
	Reflect(ctx context.Context, journalText string) (*Reflection, error)
}

type httpProvider struct {
	url    string
	client *http.Client
}

func NewHTTPProvider(url string, timeout time.Duration) Provider {
	return &httpProvider{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *httpProvider) Reflect(ctx context.Context, journalText string) (*Reflection, error) {
	log := config.WithContext(ctx)

	body, err := json.Marshal(map[string]string{"journal_text": journalText})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		log.WithError(err).Error("Reflection service request failed")
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		log.WithField("status", resp.StatusCode).Error("Reflection service returned an error")
		if apiErr.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrServiceUnavailable, apiErr.Error)
		}
		return nil, fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode)
	}

	var r Reflection
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		log.WithError(err).Error("Failed to decode reflection payload")
		return nil, fmt.Errorf("%w: %v", ErrInvalidReflection, err)
	}

	if r.Insight == "" || r.GrowthPath == "" {
		log.Error("Reflection payload missing insight or growth path")
		return nil, ErrInvalidReflection
	}

	return &r, nil
}
