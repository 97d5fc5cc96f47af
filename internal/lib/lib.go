// Package lib holds code that does not belong to a single layer.
//
// Its subpackages provide the asynq label ingest jobs and small shared
// utilities.
package lib
