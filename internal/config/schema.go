// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package config

var settingsSchema = `
{
  "type": "object",
  "properties": {
    "httpAddr": {
      "description": "Address the read endpoint listens on, e.g. ':8090'.",
      "type": "string"
    },
    "stalenessThresholdMinutes": {
      "description": "Staleness age, in minutes. Validated on load; the daemon takes its staleness thresholds from monitoring.DefaultThreshold, not from this value.",
      "type": "integer",
      "minimum": 1
    },
    "pollTickSeconds": {
      "description": "Poll cadence, in seconds. Validated on load; the daemon's poll tick is a fixed 15 minutes.",
      "type": "integer",
      "minimum": 1
    },
    "providerRateLimitMs": {
      "description": "Provider call spacing, in milliseconds. Validated on load; each provider Transport spaces calls by a fixed 2 seconds.",
      "type": "integer",
      "minimum": 1
    },
    "fanoutLimit": {
      "description": "Maximum number of concurrent in-flight fetches across all providers.",
      "type": "integer",
      "minimum": 1
    },
    "analyzer": {
      "description": "Parameters for the historical flood-event analyzer.",
      "type": "object",
      "properties": {
        "precursorLookbackDays": {
          "type": "integer",
          "minimum": 1
        },
        "riseRateThresholdFtPerHour": {
          "type": "number",
          "exclusiveMinimum": 0
        },
        "minEventDurationHours": {
          "type": "integer",
          "minimum": 1
        }
      },
      "required": ["precursorLookbackDays", "riseRateThresholdFtPerHour", "minEventDurationHours"]
    },
    "reportKind": {
      "description": "Flood-report archive backend: \"file\" or \"s3\".",
      "type": "string",
      "enum": ["file", "s3"]
    },
    "reportDir": {
      "description": "Local directory for archived flood reports, used when reportKind is \"file\" or unset.",
      "type": "string"
    },
    "reportS3Bucket": {
      "description": "S3 bucket name for archived flood reports, used when reportKind is \"s3\".",
      "type": "string"
    }
  },
  "required": ["httpAddr", "stalenessThresholdMinutes", "pollTickSeconds", "providerRateLimitMs", "fanoutLimit", "analyzer"]
}
`
