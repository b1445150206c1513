package web

import (
	"net/http"

	"farm-records/internal/domain/animals"
	"farm-records/internal/domain/caretools"
	"farm-records/internal/middleware"
)

type dashboardData struct {
	AnimalCount   int
	BuyingCount   int
	SellingCount  int
	ToolCount     int
	RecentAnimals []animals.Animal
	RecentTools   []caretools.Tool
	AnimalsError  string
	ToolsError    string
}

// dashboardHandler arma el resumen con las mismas consultas cacheadas
// que los listados; un fallo en una sección no tumba la otra.
func dashboardHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := middleware.GetSession(r.Context())

		var data dashboardData

		al, err := app.cachedAnimals(r.Context(), s)
		if err != nil {
			if app.failAPI(w, r, err) {
				return
			}
			data.AnimalsError = "Error loading animals"
		} else {
			data.AnimalCount = len(al)
			for _, a := range al {
				if a.IsBuying() {
					data.BuyingCount++
				} else {
					data.SellingCount++
				}
			}
			data.RecentAnimals = lastN(al, 5)
		}

		tl, err := app.cachedTools(r.Context(), s)
		if err != nil {
			if app.failAPI(w, r, err) {
				return
			}
			data.ToolsError = "Error loading care tools"
		} else {
			data.ToolCount = len(tl)
			data.RecentTools = lastN(tl, 5)
		}

		app.render(w, r, http.StatusOK, "dashboard", "Dashboard", data)
	}
}

type reportsData struct {
	BuyingCount    int
	SellingCount   int
	AnimalUnits    int
	AnimalValue    float64
	ToolUnits      int
	ToolValue      float64
	InventoryValue float64
	Error          string
}

func reportsHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := middleware.GetSession(r.Context())

		al, aerr := app.cachedAnimals(r.Context(), s)
		if aerr != nil && app.failAPI(w, r, aerr) {
			return
		}
		tl, terr := app.cachedTools(r.Context(), s)
		if terr != nil && app.failAPI(w, r, terr) {
			return
		}
		if aerr != nil || terr != nil {
			app.render(w, r, http.StatusOK, "reports", "Reports", reportsData{Error: "Error loading report data"})
			return
		}

		var data reportsData
		for _, a := range al {
			if a.IsBuying() {
				data.BuyingCount++
			} else {
				data.SellingCount++
			}
			data.AnimalUnits += a.Count
			data.AnimalValue += a.TotalValue()
		}
		for _, t := range tl {
			data.ToolUnits += t.Count
			data.ToolValue += t.Price * float64(t.Count)
		}
		data.InventoryValue = data.AnimalValue + data.ToolValue

		app.render(w, r, http.StatusOK, "reports", "Reports", data)
	}
}

// lastN devuelve los últimos n elementos sin mutar el slice original.
func lastN[T any](xs []T, n int) []T {
	if len(xs) <= n {
		return xs
	}
	return xs[len(xs)-n:]
}
