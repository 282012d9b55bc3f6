package main

import (
	"math"
	"math/rand"
)

type Station struct {
	X, Y float64
}

func (s Station) XY() (float64, float64) { return s.X, s.Y }

// generateRandStations scatters n stations with integer coordinates over
// the area; coincident ones are possible and left in.
func generateRandStations(rng *rand.Rand, n int, width, height int) []Station {
	stations := make([]Station, n)
	for i := 0; i < n; i++ {
		stations[i] = Station{
			X: float64(rng.Intn(width)),
			Y: float64(rng.Intn(height)),
		}
	}
	return stations
}

// generateFixStations lays n stations out on a grid, cell centres first row
// first.
func generateFixStations(n int, width, height int) []Station {
	stations := make([]Station, 0, n)

	rows := int(math.Sqrt(float64(n)))
	if rows < 1 {
		rows = 1
	}
	cols := (n + rows - 1) / rows

	xStep := float64(width) / float64(cols)
	yStep := float64(height) / float64(rows)

	// клеток может быть больше, чем станций (на 5 станций сетка 2x3), лишние не заполняем
	for i := 0; i < rows && len(stations) < n; i++ {
		for j := 0; j < cols && len(stations) < n; j++ {
			x := xStep/2 + float64(j)*xStep
			y := yStep/2 + float64(i)*yStep
			stations = append(stations, Station{X: x, Y: y})
		}
	}

	return stations
}
