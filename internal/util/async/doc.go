// Package async runs independent AWS reads concurrently.
package async
