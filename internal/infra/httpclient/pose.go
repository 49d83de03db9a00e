package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/rehablink-io/Rehablink/internal/config"
	"github.com/rehablink-io/Rehablink/internal/modules/model"
)

// PoseClient is the HTTP client for the pose analysis service
type PoseClient struct {
	BaseURL    string
	MaxRetries int
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewPoseClient creates a new PoseClient with OpenTelemetry instrumentation
func NewPoseClient(cfg *config.Config, log *zap.Logger) *PoseClient {
	return &PoseClient{
		BaseURL:    cfg.Pose.BaseURL,
		MaxRetries: cfg.Pose.MaxRetries,
		HTTPClient: &http.Client{
			Timeout:   cfg.Pose.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		Logger: log,
	}
}

// InferRequest carries one frame of landmarks to the analysis service
type InferRequest struct {
	ExerciseName string           `json:"exercise_name"`
	Landmarks    []model.Landmark `json:"landmarks"`
}

// InferResult is the per-frame verdict from the analysis service. Degraded
// reports that the result came from the local fallback instead of the
// service; degraded results never complete a rep.
type InferResult struct {
	Accuracy      float64            `json:"accuracy"`
	IsCorrectForm bool               `json:"is_correct_form"`
	IsRepComplete bool               `json:"is_rep_complete"`
	DerivedAngles map[string]float64 `json:"derived_angles,omitempty"`
	Feedback      []string           `json:"feedback,omitempty"`
	Degraded      bool               `json:"degraded,omitempty"`
}

// Infer scores a frame of landmarks. When the service is unreachable after
// retries it falls back to a local symmetry heuristic so ingestion keeps
// accepting frames.
func (c *PoseClient) Infer(ctx context.Context, req InferRequest) (*InferResult, error) {
	if c.BaseURL == "" {
		return c.localInfer(req.Landmarks), nil
	}

	body, err := sonic.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/v1/pose/infer", c.BaseURL)
	var lastErr error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		result, err := c.doInfer(ctx, endpoint, body)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	c.Logger.Warn("pose service unreachable, using local heuristic",
		zap.Int("attempts", c.MaxRetries+1),
		zap.Error(lastErr))
	return c.localInfer(req.Landmarks), nil
}

func (c *PoseClient) doInfer(ctx context.Context, endpoint string, body []byte) (*InferResult, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var result InferResult
	if err := sonic.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &result, nil
}

// Landmark indices follow the MediaPipe pose topology.
const (
	lmLeftShoulder  = 11
	lmRightShoulder = 12
	lmLeftHip       = 23
	lmRightHip      = 24
)

// localInfer scores shoulder and hip symmetry from raw landmark heights. It
// is a coarse stand-in for the real model and deliberately never signals a
// completed rep.
func (c *PoseClient) localInfer(landmarks []model.Landmark) *InferResult {
	if len(landmarks) <= lmRightHip {
		return &InferResult{
			Accuracy:      0,
			IsCorrectForm: false,
			Feedback:      []string{"Not enough landmarks detected"},
			Degraded:      true,
		}
	}

	shoulderDiff := math.Abs(landmarks[lmLeftShoulder].Y - landmarks[lmRightShoulder].Y)
	hipDiff := math.Abs(landmarks[lmLeftHip].Y - landmarks[lmRightHip].Y)

	accuracy := 100 - (shoulderDiff+hipDiff)*200
	if accuracy < 0 {
		accuracy = 0
	}
	if accuracy > 100 {
		accuracy = 100
	}

	feedback := []string{}
	if shoulderDiff > 0.1 {
		feedback = append(feedback, "Keep your shoulders level")
	}
	if hipDiff > 0.1 {
		feedback = append(feedback, "Keep your hips aligned")
	}
	if len(feedback) == 0 {
		feedback = append(feedback, "Good form, keep going")
	}

	return &InferResult{
		Accuracy:      accuracy,
		IsCorrectForm: accuracy >= 70,
		DerivedAngles: map[string]float64{
			"shoulder_tilt": shoulderDiff * 180,
			"hip_tilt":      hipDiff * 180,
		},
		Feedback: feedback,
		Degraded: true,
	}
}
