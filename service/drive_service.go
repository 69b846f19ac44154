package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"storefront/models"
)

// DriveProductSource reads the product feed from a JSON file stored in Google Drive
type DriveProductSource struct {
	client *drive.Service
	fileID string
	logger *zap.Logger
}

// Ensure DriveProductSource implements ProductSourceInterface
var _ ProductSourceInterface = (*DriveProductSource)(nil)

// NewDriveProductSource creates a new DriveProductSource.
// credentialsPath should be the path to the Service Account JSON file.
func NewDriveProductSource(ctx context.Context, credentialsPath, fileID string, logger *zap.Logger) (*DriveProductSource, error) {
	if fileID == "" {
		return nil, fmt.Errorf("drive products file id is required")
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []option.ClientOption{option.WithScopes(drive.DriveReadonlyScope)}
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveProductSource{
		client: client,
		fileID: fileID,
		logger: logger,
	}, nil
}

// FetchProducts downloads the feed file and decodes its product records
func (s *DriveProductSource) FetchProducts(ctx context.Context) ([]models.RawProductRecord, error) {
	resp, err := s.client.Files.Get(s.fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download products file %s: %w", s.fileID, err)
	}
	defer resp.Body.Close()

	records, err := decodeProductRecords(resp.Body)
	if err != nil {
		return nil, err
	}

	s.logger.Info("fetched product records from drive",
		zap.String("file_id", s.fileID),
		zap.Int("count", len(records)))
	return records, nil
}
