package storage

import (
	"context"
	"fmt"

	"github.com/tallyhq/tally/internal/docpattern"
)

// SaveUpload records one document upload event.
func (s *SQLiteStorage) SaveUpload(ctx context.Context, upload docpattern.UploadRecord) error {
	if upload.DocumentType == "" || upload.Source == "" {
		return fmt.Errorf("document type and source are required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO document_uploads (id, document_type, source, uploaded_at)
		VALUES (?, ?, ?, ?)
	`, upload.ID, upload.DocumentType, upload.Source, upload.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to insert upload: %w", err)
	}
	return nil
}

// GetUploads returns every recorded upload event, oldest first.
func (s *SQLiteStorage) GetUploads(ctx context.Context) ([]docpattern.UploadRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_type, source, uploaded_at
		FROM document_uploads
		ORDER BY uploaded_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query uploads: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var uploads []docpattern.UploadRecord
	for rows.Next() {
		var upload docpattern.UploadRecord
		if err := rows.Scan(&upload.ID, &upload.DocumentType, &upload.Source, &upload.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan upload: %w", err)
		}
		uploads = append(uploads, upload)
	}
	return uploads, rows.Err()
}
