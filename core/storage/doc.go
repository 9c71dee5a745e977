// Package storage defines the object storage contract used for avatars and
// general uploads. The production backend is S3-compatible and lives in
// integration/storage/s3.
package storage
