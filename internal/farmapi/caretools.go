package farmapi

import (
	"context"
	"fmt"
	"net/http"

	"farm-records/internal/domain/caretools"
)

// Operaciones sobre el recurso CareTools. Mismo contrato de transporte que
// Animals, bajo su propio prefijo de paths.

func (c *Client) ListCareTools(ctx context.Context, token string) ([]caretools.Tool, error) {
	resp, err := c.doRaw(ctx, http.MethodGet, "/CareTools/GetAllTools", token, nil)
	if err != nil {
		return nil, err
	}
	list, err := caretools.DecodeList(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindParse, Status: resp.StatusCode, Message: "Unexpected care tools response", cause: err}
	}
	return list, nil
}

func (c *Client) GetCareTool(ctx context.Context, token string, id int) (caretools.Tool, error) {
	resp, err := c.doRaw(ctx, http.MethodGet, fmt.Sprintf("/CareTools/GetToolById/%d", id), token, nil)
	if err != nil {
		return caretools.Tool{}, err
	}
	t, err := caretools.Decode(resp.Body)
	if err != nil {
		return caretools.Tool{}, &Error{Kind: KindParse, Status: resp.StatusCode, Message: "Unexpected care tool response", cause: err}
	}
	return t, nil
}

func (c *Client) AddCareTool(ctx context.Context, token string, t caretools.Tool) (caretools.Tool, error) {
	resp, err := c.doRaw(ctx, http.MethodPost, "/CareTools/AddTool", token, caretools.EncodePayload(t, false))
	if err != nil {
		return caretools.Tool{}, err
	}
	created, err := caretools.Decode(resp.Body)
	if err != nil {
		if containsSuccessMarker(resp.Body) {
			return t, nil
		}
		return caretools.Tool{}, &Error{Kind: KindParse, Status: resp.StatusCode, Message: "Unexpected care tool response", cause: err}
	}
	return created, nil
}

func (c *Client) EditCareTool(ctx context.Context, token string, t caretools.Tool) (caretools.Tool, error) {
	resp, err := c.doRaw(ctx, http.MethodPut, fmt.Sprintf("/CareTools/EditTool/%d", t.ID), token, caretools.EncodePayload(t, true))
	if err != nil {
		return caretools.Tool{}, err
	}
	updated, err := caretools.Decode(resp.Body)
	if err != nil {
		if containsSuccessMarker(resp.Body) {
			return t, nil
		}
		return caretools.Tool{}, &Error{Kind: KindParse, Status: resp.StatusCode, Message: "Unexpected care tool response", cause: err}
	}
	return updated, nil
}

func (c *Client) DeleteCareTool(ctx context.Context, token string, id int) error {
	// ojo: el path de delete viene en minúscula en el backend real
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/CareTools/deleteTool/%d", id), token, nil, nil)
}
