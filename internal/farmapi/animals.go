package farmapi

import (
	"context"
	"fmt"
	"net/http"

	"farm-records/internal/domain/animals"
)

// Operaciones sobre el recurso Animals. Los payloads y la normalización de
// buyorsale/id viven en internal/domain/animals; acá solo va el transporte.

func (c *Client) ListAnimals(ctx context.Context, token string) ([]animals.Animal, error) {
	resp, err := c.doRaw(ctx, http.MethodGet, "/Animals/GetAllAnimals", token, nil)
	if err != nil {
		return nil, err
	}
	list, err := animals.DecodeList(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindParse, Status: resp.StatusCode, Message: "Unexpected animals response", cause: err}
	}
	return list, nil
}

func (c *Client) GetAnimal(ctx context.Context, token string, id int) (animals.Animal, error) {
	resp, err := c.doRaw(ctx, http.MethodGet, fmt.Sprintf("/Animals/getAnimalById/%d", id), token, nil)
	if err != nil {
		return animals.Animal{}, err
	}
	a, err := animals.Decode(resp.Body)
	if err != nil {
		return animals.Animal{}, &Error{Kind: KindParse, Status: resp.StatusCode, Message: "Unexpected animal response", cause: err}
	}
	return a, nil
}

// AddAnimal crea el registro. Si el backend responde un string suelto de
// éxito en vez del registro creado, devuelve lo enviado.
func (c *Client) AddAnimal(ctx context.Context, token string, a animals.Animal) (animals.Animal, error) {
	resp, err := c.doRaw(ctx, http.MethodPost, "/Animals/AddAnimal", token, animals.EncodePayload(a, false))
	if err != nil {
		return animals.Animal{}, err
	}
	created, err := animals.Decode(resp.Body)
	if err != nil {
		if containsSuccessMarker(resp.Body) {
			return a, nil
		}
		return animals.Animal{}, &Error{Kind: KindParse, Status: resp.StatusCode, Message: "Unexpected animal response", cause: err}
	}
	return created, nil
}

// EditAnimal reemplaza el registro completo (PUT con id incluido).
func (c *Client) EditAnimal(ctx context.Context, token string, a animals.Animal) (animals.Animal, error) {
	resp, err := c.doRaw(ctx, http.MethodPut, fmt.Sprintf("/Animals/EditAnimal/%d", a.ID), token, animals.EncodePayload(a, true))
	if err != nil {
		return animals.Animal{}, err
	}
	updated, err := animals.Decode(resp.Body)
	if err != nil {
		if containsSuccessMarker(resp.Body) {
			return a, nil
		}
		return animals.Animal{}, &Error{Kind: KindParse, Status: resp.StatusCode, Message: "Unexpected animal response", cause: err}
	}
	return updated, nil
}

func (c *Client) DeleteAnimal(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/Animals/DeleteAnimal/%d", id), token, nil, nil)
}
