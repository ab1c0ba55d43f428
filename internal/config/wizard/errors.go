package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errStackNameRequired = errors.New("stack name is required")
	errStackNameInvalid  = errors.New("stack name must start with a letter and contain only letters, digits or hyphens (max 128)")
	errBucketRequired    = errors.New("bucket name is required when uploading templates")
	errBucketInvalid     = errors.New("bucket name must be 3-63 lowercase letters, digits, dots or hyphens")
	errTagInvalid        = errors.New("tags must be comma-separated key=value pairs")
	errDirRequired       = errors.New("path is required")
)
