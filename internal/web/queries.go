package web

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"farm-records/internal/domain/animals"
	"farm-records/internal/domain/caretools"
	"farm-records/internal/farmapi"
	"farm-records/internal/session"
)

// Capa de queries cacheadas. Keys por tipo de recurso (colección) y por
// tipo+id (registro), scopeadas por sesión porque los datos son por usuario.
// Toda mutación invalida la colección y, en update/delete, el registro.

func animalsKey(s session.Session) string {
	return "animals:" + s.ID
}

func animalKey(s session.Session, id int) string {
	return fmt.Sprintf("animal:%s:%d", s.ID, id)
}

func toolsKey(s session.Session) string {
	return "careTools:" + s.ID
}

func toolKey(s session.Session, id int) string {
	return fmt.Sprintf("careTool:%s:%d", s.ID, id)
}

func (app *App) cachedAnimals(ctx context.Context, s session.Session) ([]animals.Animal, error) {
	v, err := app.cache.GetOrFetch(ctx, animalsKey(s), func(ctx context.Context) (any, error) {
		return app.api.ListAnimals(ctx, s.Token)
	})
	if err != nil {
		return nil, err
	}
	list, _ := v.([]animals.Animal)
	return list, nil
}

func (app *App) cachedAnimal(ctx context.Context, s session.Session, id int) (animals.Animal, error) {
	v, err := app.cache.GetOrFetch(ctx, animalKey(s, id), func(ctx context.Context) (any, error) {
		return app.api.GetAnimal(ctx, s.Token, id)
	})
	if err != nil {
		return animals.Animal{}, err
	}
	a, _ := v.(animals.Animal)
	return a, nil
}

func (app *App) cachedTools(ctx context.Context, s session.Session) ([]caretools.Tool, error) {
	v, err := app.cache.GetOrFetch(ctx, toolsKey(s), func(ctx context.Context) (any, error) {
		return app.api.ListCareTools(ctx, s.Token)
	})
	if err != nil {
		return nil, err
	}
	list, _ := v.([]caretools.Tool)
	return list, nil
}

func (app *App) cachedTool(ctx context.Context, s session.Session, id int) (caretools.Tool, error) {
	v, err := app.cache.GetOrFetch(ctx, toolKey(s, id), func(ctx context.Context) (any, error) {
		return app.api.GetCareTool(ctx, s.Token, id)
	})
	if err != nil {
		return caretools.Tool{}, err
	}
	t, _ := v.(caretools.Tool)
	return t, nil
}

// userMessageOr: mensaje del backend si vino, si no el fallback de la
// operación.
func userMessageOr(err error, fallback string) string {
	var e *farmapi.Error
	if errors.As(err, &e) && strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	return fallback
}

// matchesSearch aplica el filtro de texto de las vistas de listado.
func matchesSearch(q string, fields ...string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
