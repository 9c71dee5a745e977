// Package s3 implements the storage contract for Amazon S3 and
// S3-compatible services such as Cloudflare R2 and MinIO. It supports
// public URL generation for CDN-fronted buckets and presigned PUT URLs for
// direct client uploads.
package s3
