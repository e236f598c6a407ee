package store

import "society-app/internal/model"

// defaultVenues is the venue catalog shipped with the application. The
// memory and file stores seed it on startup; the SQL backends seed the
// same rows through their migrations.
func defaultVenues() []model.Venue {
	return []model.Venue{
		{ID: 1, Name: "Arena Society Central", Address: "Rua das Palmeiras, 120 - Centro", Format: "Society 7x7", SurfaceType: "Grama sintética", Dimensions: "50x30m", PlayersPerSide: 7},
		{ID: 2, Name: "Campo do Parque", Address: "Av. do Parque, 455 - Jardim América", Format: "Society 6x6", SurfaceType: "Grama sintética", Dimensions: "45x25m", PlayersPerSide: 6},
		{ID: 3, Name: "Quadra Vila União", Address: "Rua Sete de Setembro, 88 - Vila União", Format: "Futsal 5x5", SurfaceType: "Quadra coberta", Dimensions: "40x20m", PlayersPerSide: 5},
		{ID: 4, Name: "Society Beira Rio", Address: "Estrada Beira Rio, 1020", Format: "Society 7x7", SurfaceType: "Grama natural", Dimensions: "55x35m", PlayersPerSide: 7},
	}
}
