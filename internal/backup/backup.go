// Package backup exports a user's weight entries as CSV to an S3-compatible
// bucket.
package backup

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/weighttracker/internal/awsx"
	"github.com/dmitrijs2005/weighttracker/internal/common"
	"github.com/dmitrijs2005/weighttracker/internal/models"
)

// ErrBackupDisabled is returned by Export when no bucket is configured.
var ErrBackupDisabled = errors.New("backup is not configured")

const keySuffixSize = 4

var csvHeader = []string{"date", "weight", "goal_diff"}

// PutObjectAPI is the part of *s3.Client used here.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Exporter struct {
	client PutObjectAPI
	bucket string
	prefix string
	now    func() time.Time
}

func NewExporter(client PutObjectAPI, bucket, prefix string) *Exporter {
	return &Exporter{client: client, bucket: bucket, prefix: prefix, now: time.Now}
}

// NewExporterFromConfig builds an S3 client from o. With an empty bucket the
// exporter is created disabled and no AWS configuration is loaded.
func NewExporterFromConfig(ctx context.Context, o awsx.Options, bucket, prefix string) (*Exporter, error) {
	if bucket == "" {
		return NewExporter(nil, "", prefix), nil
	}

	cfg, err := awsx.LoadConfig(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(opts *s3.Options) {
		opts.BaseEndpoint = o.BaseEndpoint()
		// MinIO and other emulators expect path-style addressing.
		opts.UsePathStyle = o.Endpoint != ""
	})
	return NewExporter(client, bucket, prefix), nil
}

// Enabled reports whether a bucket is configured.
func (e *Exporter) Enabled() bool {
	return e != nil && e.bucket != "" && e.client != nil
}

// Export uploads entries for username and returns the object URI.
func (e *Exporter) Export(ctx context.Context, username string, entries []models.EntryView) (string, error) {
	if !e.Enabled() {
		return "", ErrBackupDisabled
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, entries); err != nil {
		return "", err
	}

	key, err := e.objectKey(username)
	if err != nil {
		return "", err
	}
	_, err = e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return fmt.Sprintf("s3://%s/%s", e.bucket, key), nil
}

// objectKey is <prefix>/<user>/<UTC timestamp>-<random hex>.csv. The suffix
// keeps two exports within the same second apart.
func (e *Exporter) objectKey(username string) (string, error) {
	suffix, err := common.MakeRandHexString(keySuffixSize)
	if err != nil {
		return "", fmt.Errorf("object key: %w", err)
	}
	name := e.now().UTC().Format("20060102T150405Z") + "-" + suffix + ".csv"
	return path.Join(e.prefix, username, name), nil
}

// WriteCSV renders entries as date,weight,goal_diff rows with a header.
func WriteCSV(w io.Writer, entries []models.EntryView) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	for _, v := range entries {
		row := []string{v.DisplayDate(), strconv.Itoa(v.Weight), v.GoalDiff}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
