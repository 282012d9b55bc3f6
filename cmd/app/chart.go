package main

import (
	"math"

	"github.com/0x0FACED/go-voronoi/pkg/voronoi"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// prepareScatter styles the chart; the axes show view.
func prepareScatter(scatter *charts.Scatter, view voronoi.BoundingBox) {
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Height: "580px",
			Width:  "1020px",
		}),
		charts.WithLegendOpts(opts.Legend{
			TextStyle: &opts.TextStyle{
				Color: "white",
			},
			Right: "10%",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:                "Voronoi diagram (Fortune)",
			TitleBackgroundColor: "white",
			Left:                 "10%",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "Width",
			Min:  math.Floor(view.Xl),
			Max:  math.Ceil(view.Xr),
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "Height",
			Min:  math.Floor(view.Yt),
			Max:  math.Ceil(view.Yb),
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "horizontal",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "vertical",
		}),
	)
}

func overlayPolyline(scatter *charts.Scatter, series string, pts []voronoi.Vertex, style opts.LineStyle) {
	data := make([]opts.LineData, len(pts))
	for i, p := range pts {
		data[i] = opts.LineData{Value: []float64{p.X, p.Y}}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(true)}),
	)
	line.AddSeries(series, data).
		SetSeriesOptions(charts.WithLineStyleOpts(style))

	scatter.Overlap(line)
}

// voronoiToEcharts draws the stations, the Voronoi edges clipped to bbox
// and, optionally, the Delaunay triangles.
func voronoiToEcharts(stations []Station, res *voronoi.Result, bbox voronoi.BoundingBox, delaunay bool) *charts.Scatter {
	scatter := charts.NewScatter()
	prepareScatter(scatter, bbox.Grow(0.02*math.Max(bbox.Dx(), bbox.Dy())))

	points := make([]opts.ScatterData, 0, len(stations))
	for _, station := range stations {
		points = append(points, opts.ScatterData{
			Value: []float64{station.X, station.Y},
		})
	}
	scatter.AddSeries("Stations", points).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: "lightgreen",
			}),
		)

	vertices := make([]opts.ScatterData, 0, len(res.Diagram.Vertices))
	for _, v := range res.Diagram.Vertices {
		if bbox.Contains(v) {
			vertices = append(vertices, opts.ScatterData{Value: []float64{v.X, v.Y}, SymbolSize: 4})
		}
	}
	scatter.AddSeries("Vertices", vertices).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: "gray",
			}),
		)

	for _, seg := range res.Diagram.Segments(bbox) {
		overlayPolyline(scatter, "Edges", []voronoi.Vertex{seg.Va, seg.Vb}, opts.LineStyle{Width: 2})
	}

	if delaunay {
		for _, t := range res.Triangles {
			a, b, c := stations[t[0]], stations[t[1]], stations[t[2]]
			overlayPolyline(scatter, "Delaunay", []voronoi.Vertex{
				{X: a.X, Y: a.Y}, {X: b.X, Y: b.Y}, {X: c.X, Y: c.Y}, {X: a.X, Y: a.Y},
			}, opts.LineStyle{Width: 1, Type: "dashed", Color: "orange"})
		}
	}

	return scatter
}
