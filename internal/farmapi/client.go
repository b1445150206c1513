package farmapi

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"farm-records/internal/platform/httpclient"
)

// successMarker: algunas revisiones del backend responden un string suelto
// ("Deleted Successfully", etc.) en vez de JSON. Si el body no parsea pero
// contiene el marcador con status 2xx, se sintetiza éxito.
const successMarker = "success"

// Client es el cliente tipado del backend REST de la granja.
// Adjunta el bearer token por operación y normaliza toda respuesta
// (JSON, string suelto o body de error) a resultado o *Error.
type Client struct {
	http *httpclient.Client
	log  *logrus.Logger
}

func New(baseURL string, timeout time.Duration, log *logrus.Logger) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc, log: log}, nil
}

// NewWithTransport permite inyectar un RoundTripper (para tests).
func NewWithTransport(baseURL string, tr http.RoundTripper, log *logrus.Logger) (*Client, error) {
	hc, err := httpclient.NewWithTransport(baseURL, httpclient.DefaultTimeout, tr)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc, log: log}, nil
}

// doRaw ejecuta el request, adjunta el token y mapea fallas a *Error.
// Devuelve la respuesta cruda solo si fue 2xx.
func (c *Client) doRaw(ctx context.Context, method, path, token string, in any) (*httpclient.Response, error) {
	var headers map[string]string
	if token != "" {
		headers = map[string]string{"Authorization": "Bearer " + token}
	}

	resp, err := c.http.Do(ctx, method, path, headers, in)
	if err != nil {
		c.log.WithError(err).WithField("path", path).Warn("farm api request failed")
		return nil, &Error{Kind: KindNetwork, Message: "Could not reach the server", cause: err}
	}

	if !resp.OK() {
		apiErr := errorFromResponse(resp)
		c.log.WithFields(logrus.Fields{
			"path":   path,
			"status": resp.StatusCode,
			"kind":   apiErr.Kind,
		}).Warn("farm api returned error")
		return nil, apiErr
	}

	return resp, nil
}

// do ejecuta y decodifica JSON en out (si out != nil).
// Body 2xx no-JSON con successMarker => éxito sintetizado (out queda en cero).
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	resp, err := c.doRaw(ctx, method, path, token, in)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := resp.Decode(out); err != nil {
		if containsSuccessMarker(resp.Body) {
			return nil
		}
		return &Error{
			Kind:    KindParse,
			Status:  resp.StatusCode,
			Message: "Unexpected server response: " + resp.Text(),
			cause:   err,
		}
	}
	return nil
}

func containsSuccessMarker(body []byte) bool {
	return bytes.Contains(bytes.ToLower(body), []byte(successMarker))
}
