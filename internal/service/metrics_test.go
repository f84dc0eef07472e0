package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Cha17/gowra-sub000/internal/domain"
	"github.com/Cha17/gowra-sub000/internal/dto"
)

// setupMetricReader installs a manual-reader meter provider as the global
// provider so instruments created by service constructors are collectable.
func setupMetricReader(t *testing.T) *sdkmetric.ManualReader {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	prev := otel.GetMeterProvider()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	t.Cleanup(func() { otel.SetMeterProvider(prev) })
	return reader
}

func findMetric(rm metricdata.ResourceMetrics, name string) (metricdata.Metrics, bool) {
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}
	return metricdata.Metrics{}, false
}

func counterValue(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	m, ok := findMetric(rm, name)
	require.True(t, ok, "metric %s not collected", name)
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", name)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestRegistrationService_Register_CountsCreated(t *testing.T) {
	reader := setupMetricReader(t)
	svc, eventRepo, _ := setupRegistrationService(t)
	event := seedEvent(t, eventRepo, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "user-1", &dto.CreateRegistrationRequest{EventID: event.ID})
	require.NoError(t, err)
	_, err = svc.Register(ctx, "user-2", &dto.CreateRegistrationRequest{EventID: event.ID})
	require.NoError(t, err)

	// rejected registrations must not count
	_, err = svc.Register(ctx, "user-1", &dto.CreateRegistrationRequest{EventID: event.ID})
	require.ErrorIs(t, err, ErrAlreadyRegistered)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	assert.Equal(t, int64(2), counterValue(t, rm, "registrations_created_total"))
}

func TestPaymentService_Process_CountsProcessed(t *testing.T) {
	reader := setupMetricReader(t)
	paySvc, regSvc, eventRepo, _, _ := setupPaymentService(t)
	ctx := context.Background()

	reg := registerForEvent(t, regSvc, eventRepo, "user-1")
	resp, err := paySvc.Process(ctx, "user-1", &dto.ProcessPaymentRequest{
		RegistrationID: reg.ID,
		PaymentMethod:  domain.PaymentMethodCard,
	})
	require.NoError(t, err)

	// a second attempt is rejected and must not count
	_, err = paySvc.Process(ctx, "user-1", &dto.ProcessPaymentRequest{
		RegistrationID: reg.ID,
		PaymentMethod:  domain.PaymentMethodCard,
	})
	require.ErrorIs(t, err, ErrAlreadyPaid)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	assert.Equal(t, int64(1), counterValue(t, rm, "payments_processed_total"))

	m, ok := findMetric(rm, "payment_amount")
	require.True(t, ok, "payment_amount histogram not collected")
	hist, ok := m.Data.(metricdata.Histogram[float64])
	require.True(t, ok, "payment_amount is not a float64 histogram")
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(1), hist.DataPoints[0].Count)
	assert.Equal(t, resp.Payment.Amount, hist.DataPoints[0].Sum)
}
