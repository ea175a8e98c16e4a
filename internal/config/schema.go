// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

// schema is the JSON Schema an application config document must satisfy:
// transport connection details plus one section per optional subsystem.
const schema = `{
    "type": "object",
    "description": "Configuration for a VSD distributor process.",
    "required": ["specification"],
    "properties": {
        "specification": {
            "description": "Path to the VSS CSV file describing the signal tree.",
            "type": "string"
        },
        "nats": {
            "description": "Connection details for the NATS transport adapter.",
            "type": "object",
            "required": ["address"],
            "properties": {
                "address": {
                    "description": "Address of the NATS server, e.g. nats://localhost:4222.",
                    "type": "string"
                },
                "username": {
                    "description": "Optional: if configured with username/password auth.",
                    "type": "string"
                },
                "password": {
                    "description": "Optional: if configured with username/password auth.",
                    "type": "string"
                },
                "creds-file-path": {
                    "description": "Optional: path to a NATS credentials file.",
                    "type": "string"
                },
                "subject": {
                    "description": "Base subject for the line-protocol bridge, which subscribes on <subject>.lp. Codec payloads always use the vsd.<tag> subjects.",
                    "type": "string"
                },
                "publish-rate-per-second": {
                    "description": "Maximum publishes per second the rate limiter allows; 0 means unlimited.",
                    "type": "number"
                }
            }
        },
        "line-protocol-bridge": {
            "description": "Optional legacy ingestion bridge accepting InfluxDB line protocol.",
            "type": "object",
            "properties": {
                "enabled": {
                    "type": "boolean"
                },
                "precision": {
                    "description": "Timestamp precision of incoming batches: ns, us, ms or s. The bridge does not read this setting; it parses every timestamp as nanoseconds and discards it.",
                    "type": "string"
                }
            }
        },
        "http-debug-api": {
            "description": "Optional read-only HTTP inspection API.",
            "type": "object",
            "properties": {
                "enabled": {
                    "type": "boolean"
                },
                "address": {
                    "type": "string"
                }
            }
        },
        "metrics": {
            "description": "Optional Prometheus exposition endpoint.",
            "type": "object",
            "properties": {
                "enabled": {
                    "type": "boolean"
                },
                "address": {
                    "type": "string"
                }
            }
        },
        "heartbeat": {
            "description": "Optional periodic republish scheduler (internal/taskmanager).",
            "type": "object",
            "properties": {
                "enabled": {
                    "type": "boolean"
                },
                "interval": {
                    "description": "Go duration string, e.g. \"5s\" or \"1m\".",
                    "type": "string"
                },
                "roots": {
                    "description": "Dotted paths republished every interval.",
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "loglevel": {
            "type": "string"
        }
    }
}`
