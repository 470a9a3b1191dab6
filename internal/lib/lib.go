// Package lib groups clients for external systems that do not belong to a
// single layer.
//
// It contains the PropMix listing API client, the Google Sheets client,
// background jobs on Redis/Asynq and the Resend email client.
package lib
