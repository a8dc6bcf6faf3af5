package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path"
	"strconv"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/de-tools/fleet-atlas/pkg/models/domain"
	"github.com/de-tools/fleet-atlas/pkg/services/score"
)

// Uploader is the subset of the S3 client used for exports.
type Uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var csvHeader = []string{"id", "user_id", "goal", "score", "delta", "recorded_at"}

// WriteCSV writes the history in the order given, newest first for a ScoreHistory.
func WriteCSV(w io.Writer, history domain.ScoreHistory) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, s := range history {
		row := []string{
			strconv.FormatInt(s.ID, 10),
			strconv.FormatInt(s.UserID, 10),
			string(s.GoalType),
			strconv.FormatFloat(s.Score, 'f', -1, 64),
			strconv.FormatFloat(s.Delta, 'f', -1, 64),
			s.RecordedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", s.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

type Request struct {
	UserID int64
	Goal   domain.GoalType
	Limit  int
}

type Exporter struct {
	scores   score.Aggregator
	uploader Uploader
	prefix   string
	now      func() time.Time
}

// NewExporter builds an exporter; uploader may be nil when only local output is used.
func NewExporter(scores score.Aggregator, uploader Uploader, prefix string) (*Exporter, error) {
	if scores == nil {
		return nil, fmt.Errorf("score aggregator is nil")
	}
	return &Exporter{
		scores:   scores,
		uploader: uploader,
		prefix:   prefix,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

func (e *Exporter) Write(ctx context.Context, w io.Writer, req Request) (int, error) {
	history, err := e.scores.History(ctx, req.UserID, req.Goal, req.Limit)
	if err != nil {
		return 0, err
	}
	if err := WriteCSV(w, history); err != nil {
		return 0, err
	}
	return len(history), nil
}

// Upload stores the CSV under bucket/key and returns the key used. An empty key
// is derived from the prefix, the user, the goal and the current time.
func (e *Exporter) Upload(ctx context.Context, bucket, key string, req Request) (string, error) {
	if e.uploader == nil {
		return "", fmt.Errorf("no uploader configured")
	}
	if bucket == "" {
		return "", domain.NewValidationError("bucket", "is required")
	}
	if key == "" {
		key = e.DefaultKey(req)
	}

	var buf bytes.Buffer
	n, err := e.Write(ctx, &buf, req)
	if err != nil {
		return "", err
	}

	_, err = e.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      awssdk.String(bucket),
		Key:         awssdk.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: awssdk.String("text/csv"),
	})
	if err != nil {
		return "", &domain.TransportError{Op: "upload score export", Err: err}
	}

	zerolog.Ctx(ctx).Info().
		Str("bucket", bucket).
		Str("key", key).
		Int("records", n).
		Msg("score history exported")
	return key, nil
}

func (e *Exporter) DefaultKey(req Request) string {
	name := fmt.Sprintf("user-%d-%s-%s.csv", req.UserID, req.Goal, e.now().Format("20060102T150405Z"))
	return path.Join(e.prefix, name)
}

var _ Uploader = (*s3.Client)(nil)
