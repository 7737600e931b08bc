package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

type Bucket string

const (
	BucketProfilePhotos Bucket = "profile-photos"
	BucketProjectImages Bucket = "project-images"
	BucketResumes       Bucket = "resumes"
)

// Buckets is the allow-list of storage buckets accepted for uploads
var Buckets = []Bucket{BucketProfilePhotos, BucketProjectImages, BucketResumes}

func ParseBucket(s string) (Bucket, error) {
	for _, b := range Buckets {
		if string(b) == s {
			return b, nil
		}
	}
	return "", ErrInvalidBucket
}

var (
	unsafeFilenameRe = regexp.MustCompile(`[^a-zA-Z0-9.-]`)
	objectPathRe     = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
)

// SanitizeFilename replaces every character outside [a-zA-Z0-9.-] with an underscore.
func SanitizeFilename(name string) string {
	return unsafeFilenameRe.ReplaceAllString(name, "_")
}

// ObjectPath builds the storage key "{unix_ms}-{sanitized filename}".
func ObjectPath(filename string, now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), SanitizeFilename(filename))
}

// ValidObjectPath rejects keys that could escape the bucket root or that were not sanitized.
func ValidObjectPath(path string) bool {
	if path == "" || strings.HasPrefix(path, ".") {
		return false
	}
	return objectPathRe.MatchString(path)
}
