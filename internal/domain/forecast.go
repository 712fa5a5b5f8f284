package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Trend classifies the fitted slope.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// ForecastHorizon is how many months ahead a forecast projects.
const ForecastHorizon = 3

// Forecast is a fitted linear trend over a monthly total series plus its
// projection. Predictions are clamped at zero; spending cannot go
// negative.
type Forecast struct {
	Historical []decimal.Decimal                `json:"historical"`
	Predicted  [ForecastHorizon]decimal.Decimal `json:"predicted"`
	Slope      float64                          `json:"slope"`
	Intercept  float64                          `json:"intercept"`
	Trend      Trend                            `json:"trend"`
}

// FitTrend fits an ordinary least-squares line over the series (oldest
// first, x = 1..n) and projects the next three months.
//
// A series shorter than two points, or one with a degenerate x variance,
// has no defined regression; that is reported as ErrInsufficientData
// rather than letting NaN or Inf leak into the forecast.
func FitTrend(history []decimal.Decimal) (*Forecast, error) {
	n := len(history)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 months, have %d", ErrInsufficientData, n)
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, v := range history {
		x := float64(i + 1)
		y := v.InexactFloat64()
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return nil, fmt.Errorf("%w: zero variance in sample positions", ErrInsufficientData)
	}

	slope := (fn*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / fn

	fc := &Forecast{
		Historical: append([]decimal.Decimal(nil), history...),
		Slope:      slope,
		Intercept:  intercept,
		Trend:      classify(slope),
	}
	for k := 1; k <= ForecastHorizon; k++ {
		predicted := intercept + slope*float64(n+k)
		if predicted < 0 {
			predicted = 0
		}
		fc.Predicted[k-1] = decimal.NewFromFloat(predicted).Round(2)
	}

	return fc, nil
}

func classify(slope float64) Trend {
	switch {
	case slope > 0:
		return TrendIncreasing
	case slope < 0:
		return TrendDecreasing
	default:
		return TrendStable
	}
}
