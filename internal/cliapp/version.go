package cliapp

// Version, ProtocolVersion, and ContractVersion identify this build for
// Snapshot stamping and replay comparison. They are ordinary constants, not
// environment-derived, so a build's identity is reproducible.
const (
	Version         = "0.1.0"
	ProtocolVersion = "1"
	ContractVersion = "1"
)
