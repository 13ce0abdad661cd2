// ABOUTME: MCP tool implementations for metric logging and analytics.
// ABOUTME: Each tool wraps one store or engine operation.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openvital/vital/internal/analytics"
	"github.com/openvital/vital/internal/models"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_metric",
		Description: "Record a health metric (weight, water, pain, sleep_hours, etc.)",
	}, s.handleLogMetric)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "query_metrics",
		Description: "Query recent metrics by type or date",
	}, s.handleQueryMetrics)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "compute_trend",
		Description: "Analyze a metric's trend with a fitted rate and 30-day projection",
	}, s.handleComputeTrend)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "detect_anomalies",
		Description: "Compare today's entries against trailing baselines and flag outliers",
	}, s.handleDetectAnomalies)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "correlate_metrics",
		Description: "Compute the Pearson correlation between two metrics' daily averages",
	}, s.handleCorrelateMetrics)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "medication_status",
		Description: "Get medication adherence: today's compliance, streaks, windowed ratios",
	}, s.handleMedicationStatus)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "goal_status",
		Description: "Evaluate active goals against their targets",
	}, s.handleGoalStatus)
}

// Tool input/output types

type logMetricInput struct {
	MetricType string  `json:"metric_type" jsonschema:"Type of metric (weight, water, pain, sleep_hours, steps, mood, ...)"`
	Value      float64 `json:"value" jsonschema:"The metric value in metric units"`
	Timestamp  string  `json:"timestamp,omitempty" jsonschema:"Timestamp (ISO 8601), defaults to now"`
	Note       string  `json:"note,omitempty" jsonschema:"Optional note"`
}

type metricOutput struct {
	ID         string  `json:"id"`
	MetricType string  `json:"metric_type"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	Message    string  `json:"message"`
}

type queryMetricsInput struct {
	MetricType string `json:"metric_type,omitempty" jsonschema:"Filter by metric type"`
	Date       string `json:"date,omitempty" jsonschema:"Single date (YYYY-MM-DD); overrides metric_type"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type computeTrendInput struct {
	MetricType string `json:"metric_type" jsonschema:"Metric type to analyze"`
	Period     string `json:"period,omitempty" jsonschema:"Bucket period: daily, weekly, or monthly (default weekly)"`
	Last       int    `json:"last,omitempty" jsonschema:"Number of trailing buckets (default 12)"`
}

type detectAnomaliesInput struct {
	MetricType string `json:"metric_type,omitempty" jsonschema:"Restrict the scan to one metric type"`
	Days       int    `json:"days,omitempty" jsonschema:"Baseline window in days (default 14)"`
	Threshold  string `json:"threshold,omitempty" jsonschema:"Sensitivity: relaxed, moderate, or strict (default moderate)"`
}

type correlateInput struct {
	MetricA  string `json:"metric_a" jsonschema:"First metric type"`
	MetricB  string `json:"metric_b" jsonschema:"Second metric type"`
	LastDays int    `json:"last_days,omitempty" jsonschema:"Restrict pairs to this trailing window"`
}

type medicationStatusInput struct {
	Name     string `json:"name,omitempty" jsonschema:"Medication name; empty for all active medications"`
	LastDays int    `json:"last_days,omitempty" jsonschema:"History window in days for a single medication (default 7)"`
}

type goalStatusInput struct {
	MetricType string `json:"metric_type,omitempty" jsonschema:"Restrict to one metric type's goal"`
}

// Tool handlers

func (s *Server) handleLogMetric(ctx context.Context, req *mcp.CallToolRequest, input logMetricInput) (*mcp.CallToolResult, metricOutput, error) {
	resolved := s.cfg.ResolveAlias(input.MetricType)
	m := models.NewMetric(resolved, input.Value)

	if input.Timestamp != "" {
		t, err := time.Parse(time.RFC3339, input.Timestamp)
		if err != nil {
			t, err = time.Parse("2006-01-02 15:04", input.Timestamp)
		}
		if err == nil {
			m.WithTimestamp(t)
		}
	}
	if input.Note != "" {
		m.WithNote(input.Note)
	}

	if err := s.store.InsertMetric(m); err != nil {
		return nil, metricOutput{}, fmt.Errorf("log metric: %w", err)
	}

	return nil, metricOutput{
		ID:         m.ID[:8],
		MetricType: m.MetricType,
		Value:      m.Value,
		Unit:       m.Unit,
		Message:    fmt.Sprintf("Logged %s: %g %s (ID: %s)", m.MetricType, m.Value, m.Unit, m.ID[:8]),
	}, nil
}

func (s *Server) handleQueryMetrics(ctx context.Context, req *mcp.CallToolRequest, input queryMetricsInput) (*mcp.CallToolResult, any, error) {
	if input.Date != "" {
		day, err := time.ParseInLocation("2006-01-02", input.Date, time.UTC)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid date: %s (expected YYYY-MM-DD)", input.Date)
		}
		entries, err := s.store.QueryByDate(day)
		if err != nil {
			return nil, nil, err
		}
		return nil, entries, nil
	}

	if input.MetricType == "" {
		return nil, nil, fmt.Errorf("either metric_type or date is required")
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	entries, err := s.store.QueryByType(s.cfg.ResolveAlias(input.MetricType), limit)
	if err != nil {
		return nil, nil, err
	}
	if len(entries) == 0 {
		return nil, map[string]any{"message": "No metrics found."}, nil
	}
	return nil, entries, nil
}

func (s *Server) handleComputeTrend(ctx context.Context, req *mcp.CallToolRequest, input computeTrendInput) (*mcp.CallToolResult, any, error) {
	periodStr := input.Period
	if periodStr == "" {
		periodStr = "weekly"
	}
	period, err := analytics.ParsePeriod(periodStr)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.engine.ComputeTrend(s.cfg.ResolveAlias(input.MetricType), period, input.Last)
	if err != nil {
		return nil, nil, err
	}
	return nil, result, nil
}

func (s *Server) handleDetectAnomalies(ctx context.Context, req *mcp.CallToolRequest, input detectAnomaliesInput) (*mcp.CallToolResult, any, error) {
	thresholdStr := input.Threshold
	if thresholdStr == "" {
		thresholdStr = "moderate"
	}
	threshold, err := models.ParseThreshold(thresholdStr)
	if err != nil {
		return nil, nil, err
	}

	days := input.Days
	if days <= 0 {
		days = 14
	}

	metricType := ""
	if input.MetricType != "" {
		metricType = s.cfg.ResolveAlias(input.MetricType)
	}

	result, err := s.engine.DetectAnomalies(metricType, days, threshold)
	if err != nil {
		return nil, nil, err
	}
	return nil, result, nil
}

func (s *Server) handleCorrelateMetrics(ctx context.Context, req *mcp.CallToolRequest, input correlateInput) (*mcp.CallToolResult, any, error) {
	result, err := s.engine.Correlate(
		s.cfg.ResolveAlias(input.MetricA),
		s.cfg.ResolveAlias(input.MetricB),
		input.LastDays,
	)
	if err != nil {
		return nil, nil, err
	}
	return nil, result, nil
}

func (s *Server) handleMedicationStatus(ctx context.Context, req *mcp.CallToolRequest, input medicationStatusInput) (*mcp.CallToolResult, any, error) {
	lastDays := input.LastDays
	if lastDays <= 0 {
		lastDays = 7
	}

	name := ""
	if input.Name != "" {
		name = s.cfg.ResolveAlias(input.Name)
	}

	statuses, err := s.engine.AdherenceStatus(name, lastDays)
	if err != nil {
		return nil, nil, err
	}
	return nil, map[string]any{"medications": statuses}, nil
}

func (s *Server) handleGoalStatus(ctx context.Context, req *mcp.CallToolRequest, input goalStatusInput) (*mcp.CallToolResult, any, error) {
	metricType := ""
	if input.MetricType != "" {
		metricType = s.cfg.ResolveAlias(input.MetricType)
	}

	statuses, err := s.engine.GoalStatus(metricType)
	if err != nil {
		return nil, nil, err
	}
	return nil, map[string]any{"goals": statuses}, nil
}
