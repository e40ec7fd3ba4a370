package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/theirongolddev/selforge/internal/burn"
	"github.com/theirongolddev/selforge/internal/model"
	"github.com/theirongolddev/selforge/internal/nutrition"
)

func BenchmarkEnrichFood(b *testing.B) {
	p := New(nutrition.NewResolver(nutrition.Options{}), burn.NewEstimator(burn.Options{}))
	entry, err := model.NewParsedFood([]model.ParsedFoodItem{
		{Name: "maggi", QuantityGrams: 140},
		{Name: "cheese", QuantityGrams: 40},
		{Name: "mayonnaise", QuantityGrams: 10},
	})
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.Enrich(ctx, entry)
	}
}

func BenchmarkSummarizeDays(b *testing.B) {
	s := model.NewAppState(3)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	for i := 0; i < 365; i++ {
		d := sampleDay()
		d.Date = start.AddDate(0, 0, i).Format(model.DateLayout)
		s.DailyData[d.Date] = d
	}
	until := start.AddDate(0, 0, 364)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		days := SummarizeDays(s, start, until)
		if len(days) != 365 {
			b.Fatalf("got %d days", len(days))
		}
	}
}
