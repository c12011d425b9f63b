package probe

import (
	"fmt"
	"time"

	"github.com/concave-dev/dsenv/internal/config"
	"github.com/concave-dev/dsenv/internal/logging"
	"github.com/concave-dev/dsenv/internal/validate"
	"github.com/concave-dev/dsenv/internal/version"
	"github.com/go-resty/resty/v2"
)

// MetadataProbe infers the dataset ID from the instance metadata server that
// certain cloud hosts expose at a link-local address.
//
// The probe issues exactly one HTTP GET with a short timeout and no retries:
// on hosts without the metadata service the request fails fast (connection
// refused or timeout) and the probe reports absence without stalling the
// caller for more than the timeout. Only a 200 response counts; the body is
// taken verbatim as the identifier. The underlying response body is fully
// read and closed by the client on every path.
type MetadataProbe struct {
	client   *resty.Client
	endpoint string
}

// NewMetadataProbe creates a probe against the well-known link-local metadata
// endpoint with the default timeout.
func NewMetadataProbe() *MetadataProbe {
	p, err := NewMetadataProbeAt(config.MetadataEndpoint(), config.MetadataTimeout)
	if err != nil {
		// Unreachable: the built-in endpoint and timeout always validate
		panic(fmt.Sprintf("default metadata probe misconfigured: %v", err))
	}
	return p
}

// NewMetadataProbeAt creates a probe against a custom endpoint, used for
// local-testing setups that point at a fake metadata server. The endpoint
// and timeout are validated before any client is constructed.
func NewMetadataProbeAt(endpoint string, timeout time.Duration) (*MetadataProbe, error) {
	if err := validate.ValidateEndpointURL(endpoint); err != nil {
		return nil, err
	}
	if err := validate.ValidatePositiveTimeout(timeout, "metadata probe timeout"); err != nil {
		return nil, err
	}

	client := resty.New()

	// Route the client's internal logging through structured logging
	client.SetLogger(logging.RestyLogger{})

	// One bounded request, no retries: a missing metadata service must cost
	// the caller at most the timeout
	client.
		SetTimeout(timeout).
		SetBaseURL(endpoint).
		SetRetryCount(0).
		SetHeader(config.MetadataFlavorHeader, config.MetadataFlavorValue).
		SetHeader("User-Agent", fmt.Sprintf("dsenv/%s", version.Version))

	return &MetadataProbe{
		client:   client,
		endpoint: endpoint,
	}, nil
}

// Endpoint returns the base URL this probe queries.
func (p *MetadataProbe) Endpoint() string {
	return p.endpoint
}

// Name returns the probe's name for resolution traces.
func (p *MetadataProbe) Name() string {
	return "metadata-server"
}

// Infer queries the metadata server for the project ID. Connection errors,
// timeouts, and non-200 responses all downgrade to absence; they are the
// expected outcome off-cloud and never surface to the caller.
func (p *MetadataProbe) Infer() (string, bool) {
	resp, err := p.client.R().Get(config.MetadataProjectPath)
	if err != nil {
		logging.Debug("metadata-server probe: request failed: %v", err)
		return "", false
	}

	if resp.StatusCode() != 200 {
		logging.Debug("metadata-server probe: unexpected status %d", resp.StatusCode())
		return "", false
	}

	id := resp.String()
	if id == "" {
		logging.Debug("metadata-server probe: empty response body")
		return "", false
	}

	logging.Debug("metadata-server probe: inferred dataset ID from %s", p.endpoint)
	return id, true
}
