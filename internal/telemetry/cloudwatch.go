package telemetry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// putTimeout bounds each PutMetricData call.
const putTimeout = 5 * time.Second

// CloudWatchClient abstracts the CloudWatch PutMetricData operation for testability.
type CloudWatchClient interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// CloudWatchCollector publishes metrics to AWS CloudWatch.
//
// Metrics emitted:
//   - RequestCount, RequestLatency: Dims {Method, Route, Status}
//   - UpstreamCallCount, UpstreamCallLatency: Dims {Call, Outcome}
//
// Each record is published in the background so request handling never
// waits on CloudWatch. Close waits for in-flight publishes.
type CloudWatchCollector struct {
	client    CloudWatchClient
	namespace string
	logger    *slog.Logger
	wg        sync.WaitGroup
}

var _ Collector = (*CloudWatchCollector)(nil)

// NewCloudWatchCollector creates a collector that publishes to namespace.
func NewCloudWatchCollector(client CloudWatchClient, namespace string, logger *slog.Logger) *CloudWatchCollector {
	if logger == nil {
		logger = slog.Default()
	}
	return &CloudWatchCollector{
		client:    client,
		namespace: namespace,
		logger:    logger,
	}
}

// RecordRequest emits a count and a latency datum for one inbound request.
func (m *CloudWatchCollector) RecordRequest(method, route, status string, duration time.Duration) {
	dims := []cwtypes.Dimension{
		dimension(DimMethod, method),
		dimension(DimRoute, route),
		dimension(DimStatus, status),
	}
	m.publish(countAndLatency(MetricRequestCount, MetricRequestLatency, dims, duration), "route", route)
}

// RecordUpstream emits a count and a latency datum for one provider call.
func (m *CloudWatchCollector) RecordUpstream(call, outcome string, duration time.Duration) {
	dims := []cwtypes.Dimension{
		dimension(DimCall, call),
		dimension(DimOutcome, outcome),
	}
	m.publish(countAndLatency(MetricUpstreamCount, MetricUpstreamLatency, dims, duration), "call", call)
}

// Close waits for pending publishes or until ctx is done.
func (m *CloudWatchCollector) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *CloudWatchCollector) publish(data []cwtypes.MetricDatum, logKey, logValue string) {
	input := &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: data,
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), putTimeout)
		defer cancel()

		if _, err := m.client.PutMetricData(ctx, input); err != nil {
			m.logger.Error("failed to publish metric",
				"error", err.Error(),
				logKey, logValue,
			)
		}
	}()
}

func countAndLatency(countName, latencyName string, dims []cwtypes.Dimension, d time.Duration) []cwtypes.MetricDatum {
	return []cwtypes.MetricDatum{
		{
			MetricName: aws.String(countName),
			Value:      aws.Float64(1),
			Unit:       cwtypes.StandardUnitCount,
			Dimensions: dims,
		},
		{
			MetricName: aws.String(latencyName),
			Value:      aws.Float64(float64(d.Milliseconds())),
			Unit:       cwtypes.StandardUnitMilliseconds,
			Dimensions: dims,
		},
	}
}

func dimension(name, value string) cwtypes.Dimension {
	return cwtypes.Dimension{
		Name:  aws.String(name),
		Value: aws.String(value),
	}
}
